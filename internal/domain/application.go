package domain

import "time"

// ApplicationStatus enumerates review states. Any status may follow any other.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "Pending"
	ApplicationStatusReviewed    ApplicationStatus = "Reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "Shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "Rejected"
	ApplicationStatusAccepted    ApplicationStatus = "Accepted"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
	ApplicationStatusAccepted,
}

// ParseApplicationStatus validates raw input against the enum.
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	for _, s := range ApplicationStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// ApplicantSnapshot is the applicant contact info as submitted.
type ApplicantSnapshot struct {
	Name  string
	Email string
	Phone string
}

// JobSnapshot is the job as it looked when the application was made.
type JobSnapshot struct {
	Title    string
	Company  string
	Location string
}

// IsZero reports whether no job fields were captured.
func (s JobSnapshot) IsZero() bool {
	return s.Title == "" && s.Company == "" && s.Location == ""
}

// Application links one User to one Job; (UserID, JobID) is unique.
type Application struct {
	ID          string
	JobID       string
	UserID      string
	Applicant   ApplicantSnapshot
	Job         JobSnapshot
	Resume      string
	CoverLetter string
	Status      ApplicationStatus
	Notes       string
	AppliedDate time.Time
	UpdatedDate time.Time
}
