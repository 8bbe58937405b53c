package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/validator"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// bindJSON parses the request body into req and validates its tags.
func bindJSON(c *fiber.Ctx, v *validator.Validator, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewInvalidArgument("invalid payload")
	}
	return v.Struct(req)
}

func currentAdmin(c *fiber.Ctx) (*domain.Admin, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Admin == nil {
		return nil, apperrors.NewUnauthorized("admin required")
	}
	return principal.Admin, nil
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	return principal.User, nil
}

// optionalAdmin returns the calling admin when an admin token was supplied.
func optionalAdmin(c *fiber.Ctx) *domain.Admin {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Admin
	}
	return nil
}
