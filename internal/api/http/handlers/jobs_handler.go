package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/validator"
	apperrors "github.com/spec-kit/job-board/pkg/util/errorutil"
)

// JobsHandler serves job posting endpoints.
type JobsHandler struct {
	jobs     *service.JobService
	validate *validator.Validator
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService, v *validator.Validator) *JobsHandler {
	return &JobsHandler{jobs: jobService, validate: v}
}

// List GET /jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	var query dto.JobListQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewInvalidArgument("invalid query")
	}
	jobs, err := h.jobs.ListJobs(c.UserContext(), service.JobQuery{
		Search:          query.Search,
		JobType:         query.JobType,
		ExperienceLevel: query.ExperienceLevel,
		Location:        query.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(jobs),
		"jobs":    dto.NewJobResponses(jobs),
	})
}

// Active GET /jobs/active.
func (h *JobsHandler) Active(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListActiveJobs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(jobs),
		"jobs":    dto.NewJobResponses(jobs),
	})
}

// Get GET /jobs/:id. Every call records a view.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "job": dto.NewJobResponse(job)})
}

// Create POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	job, err := h.jobs.Create(c.UserContext(), service.CreateJobInput{
		Title:           req.Title,
		Company:         req.Company,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
		WorkMode:        req.WorkMode,
		Salary:          req.Salary,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Skills:          req.Skills,
		Status:          req.Status,
		PostedBy:        req.PostedBy,
		PostedByID:      req.PostedByID,
		Admin:           optionalAdmin(c),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job created successfully",
		"job":     dto.NewJobResponse(job),
	})
}

// Update PUT /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateJobRequest
	if err := bindJSON(c, h.validate, &req); err != nil {
		return err
	}
	job, err := h.jobs.Update(c.UserContext(), c.Params("id"), service.UpdateJobInput{
		Title:           req.Title,
		Company:         req.Company,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
		WorkMode:        req.WorkMode,
		Salary:          req.Salary,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Skills:          req.Skills,
		Status:          req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job updated successfully",
		"job":     dto.NewJobResponse(job),
	})
}

// Delete DELETE /jobs/:id. Applications to the job are deleted with it.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	job, removed, err := h.jobs.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":             true,
		"message":             "Job and related applications deleted successfully",
		"job":                 dto.NewJobResponse(job),
		"applicationsRemoved": removed,
	})
}

// ListMine GET /admin/jobs.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	admin, err := currentAdmin(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobs.ListByAdmin(c.UserContext(), admin.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(jobs),
		"jobs":    dto.NewJobResponses(jobs),
	})
}
