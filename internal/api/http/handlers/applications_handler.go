package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/validator"
)

// ApplicationsHandler serves the application workflow endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	validate     *validator.Validator
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, v *validator.Validator) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService, validate: v}
}

// Apply POST /jobs/:id/apply.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	app, err := h.applications.Submit(c.UserContext(), service.SubmitApplicationInput{
		JobID:       c.Params("id"),
		UserID:      req.UserID,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		UserPhone:   req.UserPhone,
		Resume:      req.Resume,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Application submitted successfully",
		"application": dto.NewApplicationResponse(app),
	})
}

// ListForUser GET /jobs/user/applications/:userId.
func (h *ApplicationsHandler) ListForUser(c *fiber.Ctx) error {
	apps, err := h.applications.ListForUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"count":        len(apps),
		"applications": dto.NewApplicationResponses(apps),
	})
}

// ListForJob GET /jobs/:id/applications.
func (h *ApplicationsHandler) ListForJob(c *fiber.Ctx) error {
	job, apps, err := h.applications.ListForJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"jobTitle":     job.Title,
		"companyName":  job.Company,
		"count":        len(apps),
		"applications": dto.NewApplicationResponses(apps),
	})
}

// Get GET /jobs/applications/:applicationId.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	app, err := h.applications.Get(c.UserContext(), c.Params("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "application": dto.NewApplicationResponse(app)})
}

// UpdateStatus PUT /jobs/applications/:applicationId.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateApplicationStatusRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	app, err := h.applications.UpdateStatus(c.UserContext(), c.Params("applicationId"), req.Status, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Application status updated successfully",
		"application": dto.NewApplicationResponse(app),
	})
}

// Delete DELETE /jobs/applications/:applicationId.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
	app, err := h.applications.Delete(c.UserContext(), c.Params("applicationId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Application deleted successfully",
		"application": dto.NewApplicationResponse(app),
	})
}

// CheckApplied GET /jobs/:jobId/check-application/:userId.
func (h *ApplicationsHandler) CheckApplied(c *fiber.Ctx) error {
	applied, app, err := h.applications.HasApplied(c.UserContext(), c.Params("userId"), c.Params("jobId"))
	if err != nil {
		return err
	}
	var application any
	if app != nil {
		application = dto.NewApplicationResponse(app)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"hasApplied":  applied,
		"application": application,
	})
}
