package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// JobService coordinates job postings and the public listing queries.
type JobService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	tx           repository.Transactor
	listing      config.ListingConfig
	events       publisher
	logger       *zap.Logger
}

// JobDependencies bundles collaborators for JobService.
type JobDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Transactor      repository.Transactor
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// CreateJobInput describes a new posting. Admin, when set, overrides the
// PostedBy fields of the payload.
type CreateJobInput struct {
	Title           string
	Company         string
	JobType         string
	ExperienceLevel string
	Location        string
	WorkMode        string
	Salary          string
	Description     string
	Requirements    []string
	Skills          []string
	Status          string
	PostedBy        string
	PostedByID      string
	Admin           *domain.Admin
}

// UpdateJobInput is a partial update; nil fields are left untouched.
type UpdateJobInput struct {
	Title           *string
	Company         *string
	JobType         *string
	ExperienceLevel *string
	Location        *string
	WorkMode        *string
	Salary          *string
	Description     *string
	Requirements    *[]string
	Skills          *[]string
	Status          *string
}

// JobQuery holds the public listing filters. Blank fields are ignored.
type JobQuery struct {
	Search          string
	JobType         string
	ExperienceLevel string
	Location        string
}

// NewJobService constructs the service.
func NewJobService(cfg config.Config, deps JobDependencies) *JobService {
	logger := loggerOrNop(deps.Logger)
	return &JobService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		tx:           deps.Transactor,
		listing:      cfg.Listing,
		events:       publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:       logger,
	}
}

// Create validates and stores a posting. Status defaults to Active.
func (s *JobService) Create(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	title := strings.TrimSpace(input.Title)
	company := strings.TrimSpace(input.Company)
	if missing := missingFields(map[string]string{"title": title, "company": company}, "title", "company"); len(missing) > 0 {
		return nil, apperrors.NewValidationError("Missing required fields", missing)
	}

	jobType, err := parseJobType(input.JobType)
	if err != nil {
		return nil, err
	}
	level, err := parseExperienceLevel(input.ExperienceLevel)
	if err != nil {
		return nil, err
	}
	status := domain.JobStatusActive
	if raw := strings.TrimSpace(input.Status); raw != "" {
		if status, err = parseJobStatus(raw); err != nil {
			return nil, err
		}
	}

	job := &domain.Job{
		Title:           title,
		Company:         company,
		JobType:         jobType,
		ExperienceLevel: level,
		Location:        strings.TrimSpace(input.Location),
		WorkMode:        strings.TrimSpace(input.WorkMode),
		Salary:          strings.TrimSpace(input.Salary),
		Description:     strings.TrimSpace(input.Description),
		Requirements:    trimAll(input.Requirements),
		Skills:          trimAll(input.Skills),
		Status:          status,
		PostedBy:        strings.TrimSpace(input.PostedBy),
		PostedByID:      strings.TrimSpace(input.PostedByID),
	}
	if input.Admin != nil {
		job.PostedBy = input.Admin.Name
		job.PostedByID = input.Admin.ID
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:  events.EventJobCreated,
		JobID: job.ID,
		Actor: adminActor(job.PostedByID),
		Payload: events.JobCreatedPayload{
			Title:      job.Title,
			Company:    job.Company,
			Status:     job.Status,
			PostedByID: job.PostedByID,
		},
	})
	return job, nil
}

// Get returns a job and records one view. Every call counts.
func (s *JobService) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, "Job")
	}
	views, err := s.jobs.IncrementViews(ctx, job.ID)
	if err != nil {
		return nil, notFoundOr(err, "Job")
	}
	job.Views = views
	return job, nil
}

// Update applies the supplied fields and refreshes UpdatedDate.
func (s *JobService) Update(ctx context.Context, jobID string, input UpdateJobInput) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOr(err, "Job")
	}

	var changed []string
	setString := func(field string, dst *string, src *string) {
		if src == nil {
			return
		}
		*dst = strings.TrimSpace(*src)
		changed = append(changed, field)
	}
	setString("title", &job.Title, input.Title)
	setString("company", &job.Company, input.Company)
	setString("location", &job.Location, input.Location)
	setString("workMode", &job.WorkMode, input.WorkMode)
	setString("salary", &job.Salary, input.Salary)
	setString("description", &job.Description, input.Description)

	if job.Title == "" || job.Company == "" {
		return nil, apperrors.NewInvalidArgument("title and company cannot be empty")
	}
	if input.JobType != nil {
		if job.JobType, err = parseJobType(*input.JobType); err != nil {
			return nil, err
		}
		changed = append(changed, "jobType")
	}
	if input.ExperienceLevel != nil {
		if job.ExperienceLevel, err = parseExperienceLevel(*input.ExperienceLevel); err != nil {
			return nil, err
		}
		changed = append(changed, "experienceLevel")
	}
	if input.Status != nil {
		if job.Status, err = parseJobStatus(*input.Status); err != nil {
			return nil, err
		}
		changed = append(changed, "status")
	}
	if input.Requirements != nil {
		job.Requirements = trimAll(*input.Requirements)
		changed = append(changed, "requirements")
	}
	if input.Skills != nil {
		job.Skills = trimAll(*input.Skills)
		changed = append(changed, "skills")
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, notFoundOr(err, "Job")
	}

	s.events.publish(ctx, events.Event{
		Type:    events.EventJobUpdated,
		JobID:   job.ID,
		Actor:   adminActor(job.PostedByID),
		Payload: events.JobUpdatedPayload{Fields: changed},
	})
	return job, nil
}

// Delete removes a job and every application made to it, applications
// first. It returns the deleted job and how many applications went with it.
func (s *JobService) Delete(ctx context.Context, jobID string) (*domain.Job, int64, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, 0, notFoundOr(err, "Job")
	}

	var removed int64
	err = s.withinTx(ctx, func(ctx context.Context) error {
		n, err := s.applications.DeleteByJob(ctx, job.ID)
		if err != nil {
			return err
		}
		removed = n
		return s.jobs.Delete(ctx, job.ID)
	})
	if err != nil {
		return nil, 0, notFoundOr(err, "Job")
	}

	s.logger.Info("job deleted",
		zap.String("job_id", job.ID),
		zap.Int64("applications_removed", removed))
	s.events.publish(ctx, events.Event{
		Type:  events.EventJobDeleted,
		JobID: job.ID,
		Actor: adminActor(job.PostedByID),
		Payload: events.JobDeletedPayload{
			Title:               job.Title,
			ApplicationsRemoved: removed,
		},
	})
	return job, removed, nil
}

// ListJobs returns open jobs matching every supplied filter, newest first,
// truncated at the configured cap.
func (s *JobService) ListJobs(ctx context.Context, query JobQuery) ([]domain.Job, error) {
	return s.jobs.List(ctx, repository.JobFilter{
		Search:          strings.TrimSpace(query.Search),
		JobType:         strings.TrimSpace(query.JobType),
		ExperienceLevel: strings.TrimSpace(query.ExperienceLevel),
		Location:        strings.TrimSpace(query.Location),
		Statuses:        domain.OpenJobStatuses,
		Limit:           s.listing.MaxJobs,
	})
}

// ListActiveJobs is the unfiltered shortcut view with the smaller cap.
func (s *JobService) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.List(ctx, repository.JobFilter{
		Statuses: domain.OpenJobStatuses,
		Limit:    s.listing.ActiveJobs,
	})
}

// ListByAdmin returns every job an admin posted regardless of status.
func (s *JobService) ListByAdmin(ctx context.Context, adminID string) ([]domain.Job, error) {
	return s.jobs.List(ctx, repository.JobFilter{PostedByID: adminID})
}

func (s *JobService) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTx(ctx, fn)
}

func parseJobType(raw string) (domain.JobType, error) {
	jobType, ok := domain.ParseJobType(strings.TrimSpace(raw))
	if !ok {
		return "", apperrors.NewInvalidArgument("Invalid job type. Must be one of: " + joinValues(domain.JobTypes))
	}
	return jobType, nil
}

func parseExperienceLevel(raw string) (domain.ExperienceLevel, error) {
	level, ok := domain.ParseExperienceLevel(strings.TrimSpace(raw))
	if !ok {
		return "", apperrors.NewInvalidArgument("Invalid experience level. Must be one of: " + joinValues(domain.ExperienceLevels))
	}
	return level, nil
}

func parseJobStatus(raw string) (domain.JobStatus, error) {
	status, ok := domain.ParseJobStatus(strings.TrimSpace(raw))
	if !ok {
		return "", apperrors.NewInvalidArgument("Invalid status. Must be one of: " + joinValues(domain.JobStatuses))
	}
	return status, nil
}
