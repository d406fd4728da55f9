package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/services"
)

type AdminHandler struct {
	jobs         *services.JobService
	applications *services.ApplicationService
	users        *services.UserService
}

func NewAdminHandler(jobs *services.JobService, applications *services.ApplicationService, users *services.UserService) *AdminHandler {
	return &AdminHandler{jobs: jobs, applications: applications, users: users}
}

func (h *AdminHandler) Jobs(c *fiber.Ctx) error {
	jobs, err := h.jobs.AdminJobs(c.UserContext())
	if err != nil {
		reportError(c, "admin_jobs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": true, "message": "Failed to load jobs",
		})
	}
	return c.JSON(dto.AdminJobsResponse{Success: true, Jobs: jobs})
}

func (h *AdminHandler) Applicants(c *fiber.Ctx) error {
	applicants, err := h.applications.ListAll(c.UserContext(), services.ApplicantFilter{
		JobID:  c.Query("jobId"),
		Status: c.Query("status"),
	})
	if err != nil {
		reportError(c, "admin_applicants", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false, "error": true, "message": "Failed to load applicants",
		})
	}
	return c.JSON(dto.ApplicantsResponse{
		Success:    true,
		Applicants: applicants,
		Meta:       dto.ApplicantsMeta{Total: len(applicants)},
	})
}

func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	applicant, err := h.applications.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, "update_application_status", err)
	}
	return c.JSON(fiber.Map{"success": true, "applicant": applicant})
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.users.ListByRole(c.UserContext(), c.Query("role"))
	if err != nil {
		return respondError(c, "admin_users", err)
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}
