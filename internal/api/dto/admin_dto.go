package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// AdminRegisterRequest payload for POST /admin/register.
type AdminRegisterRequest struct {
	Name               string `json:"name" validate:"notblank"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=6"`
	Phone              string `json:"phone"`
	Designation        string `json:"designation"`
	CompanyName        string `json:"companyName" validate:"notblank"`
	CompanyWebsite     string `json:"companyWebsite" validate:"omitempty,url"`
	CompanySize        string `json:"companySize"`
	Industry           string `json:"industry"`
	CompanyDescription string `json:"companyDescription"`
	AcceptTerms        bool   `json:"acceptTerms" validate:"eq=true"`
}

// LoginRequest payload for admin and user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminProfileUpdateRequest payload for PUT /admin/profile.
type AdminProfileUpdateRequest struct {
	Name               *string `json:"name" validate:"omitempty,notblank"`
	Phone              *string `json:"phone"`
	Designation        *string `json:"designation"`
	CompanyName        *string `json:"companyName" validate:"omitempty,notblank"`
	CompanyWebsite     *string `json:"companyWebsite" validate:"omitempty,url"`
	CompanySize        *string `json:"companySize"`
	Industry           *string `json:"industry"`
	CompanyDescription *string `json:"companyDescription"`
}

// AdminResponse is an admin profile without credentials.
type AdminResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Designation        string     `json:"designation"`
	CompanyName        string     `json:"companyName"`
	CompanyWebsite     string     `json:"companyWebsite"`
	CompanySize        string     `json:"companySize"`
	Industry           string     `json:"industry"`
	CompanyDescription string     `json:"companyDescription"`
	IsActive           bool       `json:"isActive"`
	IsVerified         bool       `json:"isVerified"`
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// NewAdminResponse maps a domain admin.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:                 admin.ID,
		Name:               admin.Name,
		Email:              admin.Email,
		Phone:              admin.Phone,
		Designation:        admin.Designation,
		CompanyName:        admin.CompanyName,
		CompanyWebsite:     admin.CompanyWebsite,
		CompanySize:        admin.CompanySize,
		Industry:           admin.Industry,
		CompanyDescription: admin.CompanyDescription,
		IsActive:           admin.IsActive,
		IsVerified:         admin.IsVerified,
		LastLoginAt:        admin.LastLoginAt,
		CreatedAt:          admin.CreatedAt,
	}
}

// AdminStatsResponse is the dashboard summary.
type AdminStatsResponse struct {
	TotalJobs               int64 `json:"totalJobs"`
	ActiveJobs              int64 `json:"activeJobs"`
	TotalViews              int64 `json:"totalViews"`
	TotalApplications       int64 `json:"totalApplications"`
	PendingApplications     int64 `json:"pendingApplications"`
	ShortlistedApplications int64 `json:"shortlistedApplications"`
}

// NewAdminStatsResponse maps domain stats.
func NewAdminStatsResponse(stats domain.AdminStats) AdminStatsResponse {
	return AdminStatsResponse(stats)
}
