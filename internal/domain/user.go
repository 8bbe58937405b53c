package domain

import "time"

// UserRole is the self-declared role of a registered user.
type UserRole string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleEmployer  UserRole = "employer"
)

// ParseUserRole defaults blank input to candidate.
func ParseUserRole(raw string) (UserRole, bool) {
	switch UserRole(raw) {
	case "":
		return UserRoleCandidate, true
	case UserRoleCandidate, UserRoleEmployer:
		return UserRole(raw), true
	}
	return "", false
}

// User is a job seeker who applies to postings.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
