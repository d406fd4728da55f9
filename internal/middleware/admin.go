package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/auth"
	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/models"
)

// AdminRequired runs after SessionRequired and admits sessions whose email is
// listed in ADMIN_EMAILS or belongs to a user with the admin role.
func AdminRequired(store database.Store, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if auth.IsAdminEmail(cfg.AdminEmails, session.Email) {
			return c.Next()
		}

		if session.Email != "" {
			user, err := store.GetUserByEmail(c.UserContext(), session.Email)
			switch {
			case err == nil && user.Role == models.RoleAdmin && user.Active:
				return c.Next()
			case err != nil && !errors.Is(err, database.ErrNotFound):
				slog.Error("admin lookup failed", "route", c.Path(), "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: true, Message: "Internal server error",
				})
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
