package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/dto"
)

// APISecretHeader carries the shared secret on non-public routes.
const APISecretHeader = "X-API-Secret"

// APISecret rejects requests whose X-API-Secret does not match API_SECRET.
// An empty API_SECRET rejects everything.
func APISecret(cfg *config.Config) fiber.Handler {
	secret := []byte(cfg.APISecret)

	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(APISecretHeader))
		if len(secret) == 0 || subtle.ConstantTimeCompare(got, secret) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Next()
	}
}
