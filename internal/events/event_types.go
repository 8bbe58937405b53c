package events

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated               EventType = "job_created"
	EventJobUpdated               EventType = "job_updated"
	EventJobDeleted               EventType = "job_deleted"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventApplicationDeleted       EventType = "application_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    domain.SubjectType `json:"type,omitempty"`
	UserID  *string            `json:"userId,omitempty"`
	AdminID *string            `json:"adminId,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	JobID     string      `json:"jobId"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	Title      string           `json:"title"`
	Company    string           `json:"company"`
	Status     domain.JobStatus `json:"status"`
	PostedByID string           `json:"postedById,omitempty"`
}

// JobUpdatedPayload payload.
type JobUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// JobDeletedPayload payload.
type JobDeletedPayload struct {
	Title               string `json:"title"`
	ApplicationsRemoved int64  `json:"applicationsRemoved"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID     string `json:"applicationId"`
	JobTitle          string `json:"jobTitle"`
	ApplicantEmail    string `json:"applicantEmail"`
	ApplicationsCount int64  `json:"applicationsCount"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicationID string                   `json:"applicationId"`
	OldStatus     domain.ApplicationStatus `json:"oldStatus"`
	NewStatus     domain.ApplicationStatus `json:"newStatus"`
}

// ApplicationDeletedPayload payload.
type ApplicationDeletedPayload struct {
	ApplicationID string `json:"applicationId"`
}
