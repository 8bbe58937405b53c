package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/validator"
)

// AdminsHandler exposes employer account endpoints.
type AdminsHandler struct {
	auth     *service.AuthService
	validate *validator.Validator
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(authService *service.AuthService, v *validator.Validator) *AdminsHandler {
	return &AdminsHandler{auth: authService, validate: v}
}

// Register handles POST /admin/register.
func (h *AdminsHandler) Register(c *fiber.Ctx) error {
	var req dto.AdminRegisterRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	admin, token, exp, err := h.auth.RegisterAdmin(c.UserContext(), service.AdminRegistration{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		Phone:              req.Phone,
		Designation:        req.Designation,
		CompanyName:        req.CompanyName,
		CompanyWebsite:     req.CompanyWebsite,
		CompanySize:        req.CompanySize,
		Industry:           req.Industry,
		CompanyDescription: req.CompanyDescription,
		AcceptTerms:        req.AcceptTerms,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Admin registered successfully",
		"admin":   dto.NewAdminResponse(admin),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login handles POST /admin/login.
func (h *AdminsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	admin, token, exp, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"admin":   dto.NewAdminResponse(admin),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Profile handles GET /admin/profile.
func (h *AdminsHandler) Profile(c *fiber.Ctx) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "admin": dto.NewAdminResponse(admin)})
}

// UpdateProfile handles PUT /admin/profile.
func (h *AdminsHandler) UpdateProfile(c *fiber.Ctx) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	var req dto.AdminProfileUpdateRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	updated, err := h.auth.UpdateAdmin(c.UserContext(), admin.ID, service.AdminProfileUpdate{
		Name:               req.Name,
		Phone:              req.Phone,
		Designation:        req.Designation,
		CompanyName:        req.CompanyName,
		CompanyWebsite:     req.CompanyWebsite,
		CompanySize:        req.CompanySize,
		Industry:           req.Industry,
		CompanyDescription: req.CompanyDescription,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"admin":   dto.NewAdminResponse(updated),
	})
}

// Deactivate handles DELETE /admin/profile. The account is flagged inactive,
// never removed.
func (h *AdminsHandler) Deactivate(c *fiber.Ctx) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	deactivated, err := h.auth.DeactivateAdmin(c.UserContext(), admin.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account deactivated successfully",
		"admin":   dto.NewAdminResponse(deactivated),
	})
}

// Stats handles GET /admin/stats.
func (h *AdminsHandler) Stats(c *fiber.Ctx) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	stats, err := h.auth.AdminStats(c.UserContext(), admin.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "stats": dto.NewAdminStatsResponse(stats)})
}
