package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

var errAlreadyApplied = apperrors.NewConflict("You have already applied for this job", nil)

// ApplicationService owns the application workflow: one application per
// (user, job) pair, status changes and the job's application counter.
type ApplicationService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	users        repository.UserRepository
	tx           repository.Transactor
	events       publisher
	logger       *zap.Logger
}

// ApplicationDependencies bundles collaborators for ApplicationService.
type ApplicationDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	UserRepo        repository.UserRepository
	Transactor      repository.Transactor
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// SubmitApplicationInput carries an applicant's submission.
type SubmitApplicationInput struct {
	JobID       string
	UserID      string
	UserName    string
	UserEmail   string
	UserPhone   string
	Resume      string
	CoverLetter string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	logger := loggerOrNop(deps.Logger)
	return &ApplicationService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		users:        deps.UserRepo,
		tx:           deps.Transactor,
		events:       publisher{dispatcher: deps.Dispatcher, logger: logger},
		logger:       logger,
	}
}

// Submit records a new application in Pending status and bumps the job's
// application counter.
func (s *ApplicationService) Submit(ctx context.Context, input SubmitApplicationInput) (*domain.Application, error) {
	input = input.trimmed()
	if missing := missingFields(map[string]string{"userId": input.UserID, "resume": input.Resume}, "userId", "resume"); len(missing) > 0 {
		return nil, apperrors.NewValidationError("Missing required fields", missing)
	}

	input = s.enrichApplicant(ctx, input)
	if missing := missingFields(map[string]string{"userName": input.UserName, "userEmail": input.UserEmail}, "userName", "userEmail"); len(missing) > 0 {
		return nil, apperrors.NewValidationError("Missing required fields", missing)
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, notFoundOr(err, "Job")
	}
	if !job.Status.AcceptsApplications() {
		return nil, apperrors.NewInvalidState("This job is no longer accepting applications")
	}

	// The unique index is authoritative; this only spares a failed insert.
	if _, err := s.applications.GetByUserAndJob(ctx, input.UserID, job.ID); err == nil {
		return nil, errAlreadyApplied
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	app := &domain.Application{
		JobID:  job.ID,
		UserID: input.UserID,
		Applicant: domain.ApplicantSnapshot{
			Name:  input.UserName,
			Email: input.UserEmail,
			Phone: input.UserPhone,
		},
		Job:         job.Snapshot(),
		Resume:      input.Resume,
		CoverLetter: input.CoverLetter,
		Status:      domain.ApplicationStatusPending,
	}

	var count int64
	err = s.withinTx(ctx, func(ctx context.Context) error {
		if err := s.applications.Create(ctx, app); err != nil {
			return err
		}
		var incErr error
		count, incErr = s.jobs.IncrementApplications(ctx, job.ID)
		return incErr
	})
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, errAlreadyApplied
	case err != nil:
		s.logger.Error("application submission failed",
			zap.String("job_id", job.ID),
			zap.String("user_id", input.UserID),
			zap.Error(err))
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:  events.EventApplicationSubmitted,
		JobID: job.ID,
		Actor: userActor(input.UserID),
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID:     app.ID,
			JobTitle:          job.Title,
			ApplicantEmail:    app.Applicant.Email,
			ApplicationsCount: count,
		},
	})
	return app, nil
}

// UpdateStatus moves an application to any of the known statuses. A non-nil
// notes replaces the stored notes.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, rawStatus string, notes *string) (*domain.Application, error) {
	status, ok := domain.ParseApplicationStatus(strings.TrimSpace(rawStatus))
	if !ok {
		return nil, apperrors.NewInvalidArgument("Invalid status. Must be one of: " + joinValues(domain.ApplicationStatuses))
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOr(err, "Application")
	}
	previous := app.Status
	app.Status = status
	if notes != nil {
		app.Notes = strings.TrimSpace(*notes)
	}
	if err := s.applications.UpdateStatus(ctx, app); err != nil {
		return nil, notFoundOr(err, "Application")
	}

	if previous != status {
		s.events.publish(ctx, events.Event{
			Type:  events.EventApplicationStatusChanged,
			JobID: app.JobID,
			Payload: events.ApplicationStatusChangedPayload{
				ApplicationID: app.ID,
				OldStatus:     previous,
				NewStatus:     status,
			},
		})
	}
	return app, nil
}

// HasApplied reports whether userID already applied to jobID and returns the
// application when it exists.
func (s *ApplicationService) HasApplied(ctx context.Context, userID, jobID string) (bool, *domain.Application, error) {
	app, err := s.applications.GetByUserAndJob(ctx, userID, jobID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, app, nil
}

// Get fetches a single application.
func (s *ApplicationService) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOr(err, "Application")
	}
	return app, nil
}

// ListForUser returns a user's applications, newest first.
func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.fillJobSnapshots(ctx, apps, nil)
	return apps, nil
}

// ListForJob returns the job and its applications, newest first.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID string) (*domain.Job, []domain.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, notFoundOr(err, "Job")
	}
	apps, err := s.applications.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, nil, err
	}
	s.fillJobSnapshots(ctx, apps, job)
	return job, apps, nil
}

// Delete removes an application. The job's application counter is left as is.
func (s *ApplicationService) Delete(ctx context.Context, applicationID string) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, notFoundOr(err, "Application")
	}
	if err := s.applications.Delete(ctx, app.ID); err != nil {
		return nil, notFoundOr(err, "Application")
	}
	s.events.publish(ctx, events.Event{
		Type:    events.EventApplicationDeleted,
		JobID:   app.JobID,
		Payload: events.ApplicationDeletedPayload{ApplicationID: app.ID},
	})
	return app, nil
}

func (s *ApplicationService) withinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTx(ctx, fn)
}

// enrichApplicant fills blank contact fields from the user record. Supplied
// values always win and lookup failures are ignored.
func (s *ApplicationService) enrichApplicant(ctx context.Context, input SubmitApplicationInput) SubmitApplicationInput {
	if s.users == nil || (input.UserName != "" && input.UserEmail != "" && input.UserPhone != "") {
		return input
	}
	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("applicant lookup failed", zap.String("user_id", input.UserID), zap.Error(err))
		}
		return input
	}
	if input.UserName == "" {
		input.UserName = user.Name
	}
	if input.UserEmail == "" {
		input.UserEmail = user.Email
	}
	if input.UserPhone == "" {
		input.UserPhone = user.Phone
	}
	return input
}

// fillJobSnapshots patches applications stored without a job snapshot using
// the job's current fields. known, when set, is used for its own id.
func (s *ApplicationService) fillJobSnapshots(ctx context.Context, apps []domain.Application, known *domain.Job) {
	cache := map[string]*domain.Job{}
	if known != nil {
		cache[known.ID] = known
	}
	for i := range apps {
		if !apps[i].Job.IsZero() {
			continue
		}
		job, seen := cache[apps[i].JobID]
		if !seen {
			fetched, err := s.jobs.GetByID(ctx, apps[i].JobID)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				s.logger.Warn("job lookup failed", zap.String("job_id", apps[i].JobID), zap.Error(err))
			}
			job = fetched
			cache[apps[i].JobID] = job
		}
		if job != nil {
			apps[i].Job = job.Snapshot()
		}
	}
}

func (in SubmitApplicationInput) trimmed() SubmitApplicationInput {
	return SubmitApplicationInput{
		JobID:       strings.TrimSpace(in.JobID),
		UserID:      strings.TrimSpace(in.UserID),
		UserName:    strings.TrimSpace(in.UserName),
		UserEmail:   normalizeEmail(in.UserEmail),
		UserPhone:   strings.TrimSpace(in.UserPhone),
		Resume:      strings.TrimSpace(in.Resume),
		CoverLetter: strings.TrimSpace(in.CoverLetter),
	}
}

// missingFields lists the blank entries of values in the given order.
func missingFields(values map[string]string, order ...string) []string {
	var missing []string
	for _, name := range order {
		if values[name] == "" {
			missing = append(missing, name+" is required")
		}
	}
	return missing
}
