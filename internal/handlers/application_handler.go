package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/services"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
	uploads      *services.UploadService
}

func NewApplicationHandler(applications *services.ApplicationService, uploads *services.UploadService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, uploads: uploads}
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	resp, err := h.applications.Submit(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "submit_application", err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Presign issues an upload link for a résumé attached to an application.
func (h *ApplicationHandler) Presign(c *fiber.Ctx) error {
	var req dto.PresignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	resp, err := h.uploads.PresignApplication(c.UserContext(), &req)
	if err != nil {
		return respondError(c, "presign_application_resume", err)
	}
	return c.JSON(resp)
}
