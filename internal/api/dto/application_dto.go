package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// ApplyRequest payload for POST /jobs/:id/apply. Blank contact fields are
// filled from the user's account when one exists.
type ApplyRequest struct {
	UserID      string `json:"userId" validate:"notblank"`
	UserName    string `json:"userName"`
	UserEmail   string `json:"userEmail" validate:"omitempty,email"`
	UserPhone   string `json:"userPhone"`
	Resume      string `json:"resume" validate:"notblank"`
	CoverLetter string `json:"coverLetter"`
}

// UpdateApplicationStatusRequest payload for PUT /jobs/applications/:applicationId.
type UpdateApplicationStatusRequest struct {
	Status string  `json:"status" validate:"notblank"`
	Notes  *string `json:"notes"`
}

// ApplicationResponse flattens the application and its snapshots.
type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"jobId"`
	UserID      string                   `json:"userId"`
	UserName    string                   `json:"userName"`
	UserEmail   string                   `json:"userEmail"`
	UserPhone   string                   `json:"userPhone"`
	JobTitle    string                   `json:"jobTitle"`
	CompanyName string                   `json:"companyName"`
	Location    string                   `json:"location"`
	Resume      string                   `json:"resume"`
	CoverLetter string                   `json:"coverLetter"`
	Status      domain.ApplicationStatus `json:"status"`
	Notes       string                   `json:"notes"`
	AppliedDate time.Time                `json:"appliedDate"`
	UpdatedDate time.Time                `json:"updatedDate"`
}

// NewApplicationResponse maps a domain application.
func NewApplicationResponse(app *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		UserID:      app.UserID,
		UserName:    app.Applicant.Name,
		UserEmail:   app.Applicant.Email,
		UserPhone:   app.Applicant.Phone,
		JobTitle:    app.Job.Title,
		CompanyName: app.Job.Company,
		Location:    app.Job.Location,
		Resume:      app.Resume,
		CoverLetter: app.CoverLetter,
		Status:      app.Status,
		Notes:       app.Notes,
		AppliedDate: app.AppliedDate,
		UpdatedDate: app.UpdatedDate,
	}
}

// NewApplicationResponses maps a slice of applications.
func NewApplicationResponses(apps []domain.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}
