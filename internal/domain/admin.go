package domain

import "time"

// Admin is an employer account that owns job postings.
type Admin struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	Phone              string
	Designation        string
	CompanyName        string
	CompanyWebsite     string
	CompanySize        string
	Industry           string
	CompanyDescription string
	IsActive           bool
	IsVerified         bool
	AcceptedTerms      bool
	LastLoginAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AdminStats summarizes an admin's postings. Counts are derived by query,
// not from the per-job counters.
type AdminStats struct {
	TotalJobs               int64
	ActiveJobs              int64
	TotalViews              int64
	TotalApplications       int64
	PendingApplications     int64
	ShortlistedApplications int64
}
