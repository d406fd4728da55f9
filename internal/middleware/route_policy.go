package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/dto"
)

// RoutePolicy rejects methods outside ALLOWED_METHODS with 405 and browser
// requests from origins outside ALLOWED_ORIGINS with 403. Requests without an
// Origin header pass the origin check.
func RoutePolicy(cfg *config.Config) fiber.Handler {
	methods := make(map[string]bool, len(cfg.AllowedMethods))
	for _, m := range cfg.AllowedMethods {
		methods[strings.ToUpper(m)] = true
	}
	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	anyOrigin := false
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			anyOrigin = true
		}
		origins[strings.TrimRight(strings.ToLower(o), "/")] = true
	}

	return func(c *fiber.Ctx) error {
		if !methods[c.Method()] {
			c.Set(fiber.HeaderAllow, strings.Join(cfg.AllowedMethods, ", "))
			return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{
				Error: true, Message: "Method not allowed",
			})
		}

		origin := c.Get(fiber.HeaderOrigin)
		if origin != "" && !anyOrigin && !origins[strings.TrimRight(strings.ToLower(origin), "/")] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Origin not allowed",
			})
		}
		return c.Next()
	}
}

func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, " + APISecretHeader,
		AllowMethods:     strings.Join(cfg.AllowedMethods, ","),
		AllowCredentials: false,
	})
}

// SecurityHeaders sets the static response hardening headers.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
