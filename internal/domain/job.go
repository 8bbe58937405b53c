package domain

import "time"

// JobType enumerates employment types.
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeTemporary  JobType = "Temporary"
	JobTypeInternship JobType = "Internship"
	JobTypeRemote     JobType = "Remote"
)

// ExperienceLevel enumerates seniority bands.
type ExperienceLevel string

const (
	ExperienceFresher    ExperienceLevel = "Fresher"
	ExperienceEntry      ExperienceLevel = "Entry Level"
	ExperienceMid        ExperienceLevel = "Mid Level"
	ExperienceSenior     ExperienceLevel = "Senior Level"
	ExperienceExecutive  ExperienceLevel = "Executive"
	ExperienceInternship ExperienceLevel = "Internship"
)

// JobStatus enumerates posting lifecycle states.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "Draft"
	JobStatusActive    JobStatus = "Active"
	JobStatusPublished JobStatus = "Published"
	JobStatusClosed    JobStatus = "Closed"
	JobStatusExpired   JobStatus = "Expired"
)

var (
	JobTypes         = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeTemporary, JobTypeInternship, JobTypeRemote}
	ExperienceLevels = []ExperienceLevel{ExperienceFresher, ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive, ExperienceInternship}
	JobStatuses      = []JobStatus{JobStatusDraft, JobStatusActive, JobStatusPublished, JobStatusClosed, JobStatusExpired}

	// OpenJobStatuses may receive applications and appear in public listings.
	OpenJobStatuses = []JobStatus{JobStatusActive, JobStatusPublished}
)

// ParseJobType validates raw input against the enum.
func ParseJobType(raw string) (JobType, bool) {
	for _, t := range JobTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// ParseExperienceLevel validates raw input against the enum.
func ParseExperienceLevel(raw string) (ExperienceLevel, bool) {
	for _, l := range ExperienceLevels {
		if string(l) == raw {
			return l, true
		}
	}
	return "", false
}

// ParseJobStatus validates raw input against the enum.
func ParseJobStatus(raw string) (JobStatus, bool) {
	for _, s := range JobStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

// AcceptsApplications reports whether the status is open to applicants.
func (s JobStatus) AcceptsApplications() bool {
	for _, open := range OpenJobStatuses {
		if s == open {
			return true
		}
	}
	return false
}

// Job is a posting owned by one Admin. PostedByID is a lookup key only.
type Job struct {
	ID                string
	Title             string
	Company           string
	JobType           JobType
	ExperienceLevel   ExperienceLevel
	Location          string
	WorkMode          string
	Salary            string
	Description       string
	Requirements      []string
	Skills            []string
	Status            JobStatus
	Views             int64
	ApplicationsCount int64
	PostedBy          string
	PostedByID        string
	PostedDate        time.Time
	UpdatedDate       time.Time
}

// Snapshot captures the fields copied onto an application at apply time.
func (j *Job) Snapshot() JobSnapshot {
	return JobSnapshot{Title: j.Title, Company: j.Company, Location: j.Location}
}
