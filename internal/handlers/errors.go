package handlers

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/services"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrUnsupportedFileType),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrJobClosed):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrResumeNotFound),
		errors.Is(err, services.ErrResumeFileMissing),
		errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrJobNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrResumeExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the error body. Client errors carry the error text;
// server errors are logged, sent to Sentry and answered with a generic
// message.
func respondError(c *fiber.Ctx, action string, err error) error {
	code := statusFor(err)
	if code < fiber.StatusInternalServerError {
		return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	reportError(c, action, err)
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
}

func reportError(c *fiber.Ctx, action string, err error) {
	slog.Error("request failed",
		"request_id", requestID(c),
		"route", c.Route().Path,
		"user_id", c.Params("userId"),
		"action", action,
		"error", err.Error(),
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
