package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

var (
	errEmailTaken         = apperrors.NewConflict("Email already registered", nil)
	errInvalidCredentials = apperrors.NewUnauthorized("Invalid email or password")
)

// AuthService coordinates registration, login and profile flows for both
// admins and users.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
	now        func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
	Logger    *zap.Logger
}

// AdminRegistration is the sign-up payload for an employer.
type AdminRegistration struct {
	Name               string
	Email              string
	Password           string
	Phone              string
	Designation        string
	CompanyName        string
	CompanyWebsite     string
	CompanySize        string
	Industry           string
	CompanyDescription string
	AcceptTerms        bool
}

// AdminProfileUpdate changes profile fields only. Email and password are
// not editable here.
type AdminProfileUpdate struct {
	Name               *string
	Phone              *string
	Designation        *string
	CompanyName        *string
	CompanyWebsite     *string
	CompanySize        *string
	Industry           *string
	CompanyDescription *string
}

// UserRegistration is the sign-up payload for a candidate.
type UserRegistration struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     loggerOrNop(deps.Logger),
		now:        time.Now,
	}
}

// RegisterAdmin creates an active, unverified employer account.
func (s *AuthService) RegisterAdmin(ctx context.Context, input AdminRegistration) (*domain.Admin, string, time.Time, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	company := strings.TrimSpace(input.CompanyName)

	missing := missingFields(map[string]string{
		"name":        name,
		"email":       email,
		"password":    input.Password,
		"companyName": company,
	}, "name", "email", "password", "companyName")
	if !input.AcceptTerms {
		missing = append(missing, "acceptTerms must be accepted")
	}
	if len(missing) > 0 {
		return nil, "", time.Time{}, apperrors.NewValidationError("Missing required fields", missing)
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	admin := &domain.Admin{
		Name:               name,
		Email:              email,
		PasswordHash:       hash,
		Phone:              strings.TrimSpace(input.Phone),
		Designation:        strings.TrimSpace(input.Designation),
		CompanyName:        company,
		CompanyWebsite:     strings.TrimSpace(input.CompanyWebsite),
		CompanySize:        strings.TrimSpace(input.CompanySize),
		Industry:           strings.TrimSpace(input.Industry),
		CompanyDescription: strings.TrimSpace(input.CompanyDescription),
		IsActive:           true,
		AcceptedTerms:      true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", time.Time{}, errEmailTaken
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, domain.SubjectTypeAdmin, admin.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.logger.Info("admin registered", zap.String("admin_id", admin.ID))
	return admin, token, exp, nil
}

// LoginAdmin authenticates an employer and stamps LastLoginAt.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", time.Time{}, notFoundOr(err, "Admin")
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errInvalidCredentials
	}
	if !admin.IsActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("Account is deactivated")
	}

	loggedIn := s.now()
	admin.LastLoginAt = &loggedIn
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, domain.SubjectTypeAdmin, admin.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// GetAdmin loads an admin profile.
func (s *AuthService) GetAdmin(ctx context.Context, adminID string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, notFoundOr(err, "Admin")
	}
	return admin, nil
}

// UpdateAdmin applies profile changes.
func (s *AuthService) UpdateAdmin(ctx context.Context, adminID string, input AdminProfileUpdate) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, notFoundOr(err, "Admin")
	}
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	assign(&admin.Name, input.Name)
	assign(&admin.Phone, input.Phone)
	assign(&admin.Designation, input.Designation)
	assign(&admin.CompanyName, input.CompanyName)
	assign(&admin.CompanyWebsite, input.CompanyWebsite)
	assign(&admin.CompanySize, input.CompanySize)
	assign(&admin.Industry, input.Industry)
	assign(&admin.CompanyDescription, input.CompanyDescription)
	if admin.Name == "" || admin.CompanyName == "" {
		return nil, apperrors.NewInvalidArgument("name and companyName cannot be empty")
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, notFoundOr(err, "Admin")
	}
	return admin, nil
}

// DeactivateAdmin flips the account inactive. Jobs it posted stay listed.
func (s *AuthService) DeactivateAdmin(ctx context.Context, adminID string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return nil, notFoundOr(err, "Admin")
	}
	if !admin.IsActive {
		return admin, nil
	}
	admin.IsActive = false
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, notFoundOr(err, "Admin")
	}
	s.logger.Info("admin deactivated", zap.String("admin_id", admin.ID))
	return admin, nil
}

// AdminStats summarizes the admin's postings and the applications they drew.
func (s *AuthService) AdminStats(ctx context.Context, adminID string) (domain.AdminStats, error) {
	return s.admins.Stats(ctx, adminID)
}

// RegisterUser creates a new candidate account.
func (s *AuthService) RegisterUser(ctx context.Context, input UserRegistration) (*domain.User, string, time.Time, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	missing := missingFields(map[string]string{
		"name":     name,
		"email":    email,
		"password": input.Password,
	}, "name", "email", "password")
	if len(missing) > 0 {
		return nil, "", time.Time{}, apperrors.NewValidationError("Missing required fields", missing)
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, "", time.Time{}, err
	}
	role, ok := domain.ParseUserRole(strings.TrimSpace(input.Role))
	if !ok {
		return nil, "", time.Time{}, apperrors.NewInvalidArgument("Invalid role. Must be one of: candidate, employer")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", time.Time{}, errEmailTaken
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, domain.SubjectTypeUser, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// LoginUser authenticates a candidate. Unknown emails and wrong passwords
// are indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, errInvalidCredentials
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errInvalidCredentials
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, domain.SubjectTypeUser, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// GetUser loads a candidate profile.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User")
	}
	return user, nil
}

// ChangeUserPassword verifies the current password before storing the new one.
func (s *AuthService) ChangeUserPassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := checkPassword(newPassword); err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "User")
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("Current password is incorrect")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func checkPassword(password string) error {
	if err := auth.ValidatePassword(password); err != nil {
		return apperrors.NewValidationError("Validation failed", []string{err.Error()})
	}
	return nil
}
