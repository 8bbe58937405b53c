package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// CreateJobRequest payload for POST /jobs.
type CreateJobRequest struct {
	Title           string   `json:"title" validate:"notblank,max=200"`
	Company         string   `json:"company" validate:"notblank,max=200"`
	JobType         string   `json:"jobType" validate:"required,jobtype"`
	ExperienceLevel string   `json:"experienceLevel" validate:"required,experiencelevel"`
	Location        string   `json:"location"`
	WorkMode        string   `json:"workMode"`
	Salary          string   `json:"salary"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Skills          []string `json:"skills"`
	Status          string   `json:"status" validate:"omitempty,jobstatus"`
	PostedBy        string   `json:"postedBy"`
	PostedByID      string   `json:"postedById"`
}

// UpdateJobRequest payload for PUT /jobs/:id. Absent fields are unchanged.
type UpdateJobRequest struct {
	Title           *string   `json:"title" validate:"omitempty,notblank,max=200"`
	Company         *string   `json:"company" validate:"omitempty,notblank,max=200"`
	JobType         *string   `json:"jobType" validate:"omitempty,jobtype"`
	ExperienceLevel *string   `json:"experienceLevel" validate:"omitempty,experiencelevel"`
	Location        *string   `json:"location"`
	WorkMode        *string   `json:"workMode"`
	Salary          *string   `json:"salary"`
	Description     *string   `json:"description"`
	Requirements    *[]string `json:"requirements"`
	Skills          *[]string `json:"skills"`
	Status          *string   `json:"status" validate:"omitempty,jobstatus"`
}

// JobListQuery captures GET /jobs filters.
type JobListQuery struct {
	Search          string `query:"search"`
	JobType         string `query:"jobType"`
	ExperienceLevel string `query:"experienceLevel"`
	Location        string `query:"location"`
}

// JobResponse is the public representation of a posting.
type JobResponse struct {
	ID                string                 `json:"id"`
	Title             string                 `json:"title"`
	Company           string                 `json:"company"`
	JobType           domain.JobType         `json:"jobType"`
	ExperienceLevel   domain.ExperienceLevel `json:"experienceLevel"`
	Location          string                 `json:"location"`
	WorkMode          string                 `json:"workMode"`
	Salary            string                 `json:"salary"`
	Description       string                 `json:"description"`
	Requirements      []string               `json:"requirements"`
	Skills            []string               `json:"skills"`
	Status            domain.JobStatus       `json:"status"`
	Views             int64                  `json:"views"`
	ApplicationsCount int64                  `json:"applicationsCount"`
	PostedBy          string                 `json:"postedBy"`
	PostedByID        string                 `json:"postedById"`
	PostedDate        time.Time              `json:"postedDate"`
	UpdatedDate       time.Time              `json:"updatedDate"`
}

// NewJobResponse maps a domain job.
func NewJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:                job.ID,
		Title:             job.Title,
		Company:           job.Company,
		JobType:           job.JobType,
		ExperienceLevel:   job.ExperienceLevel,
		Location:          job.Location,
		WorkMode:          job.WorkMode,
		Salary:            job.Salary,
		Description:       job.Description,
		Requirements:      emptyIfNil(job.Requirements),
		Skills:            emptyIfNil(job.Skills),
		Status:            job.Status,
		Views:             job.Views,
		ApplicationsCount: job.ApplicationsCount,
		PostedBy:          job.PostedBy,
		PostedByID:        job.PostedByID,
		PostedDate:        job.PostedDate,
		UpdatedDate:       job.UpdatedDate,
	}
}

// NewJobResponses maps a slice of jobs.
func NewJobResponses(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobResponse(&jobs[i]))
	}
	return out
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
