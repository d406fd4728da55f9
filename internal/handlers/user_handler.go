package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/services"
)

type UserHandler struct {
	users        *services.UserService
	applications *services.ApplicationService
}

func NewUserHandler(users *services.UserService, applications *services.ApplicationService) *UserHandler {
	return &UserHandler{users: users, applications: applications}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.users.Register(c.UserContext(), &req)
	if err != nil {
		if statusFor(err) == fiber.StatusInternalServerError {
			reportError(c, "register", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create user", Details: err.Error(),
			})
		}
		return respondError(c, "register", err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *UserHandler) Check(c *fiber.Ctx) error {
	resp, err := h.users.CheckEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return respondError(c, "check_email", err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, "get_user", err)
	}
	return c.JSON(user)
}

func (h *UserHandler) Applications(c *fiber.Ctx) error {
	apps, err := h.applications.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, "list_user_applications", err)
	}
	return c.JSON(dto.UserApplicationsResponse{Applications: apps})
}
