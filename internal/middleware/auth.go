package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/auth"
	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/dto"
)

// SessionRequired verifies the passwordless provider's session token, from
// the provider's JWKS when AUTH_JWKS_URL is set and with AUTH_JWT_SECRET
// otherwise. Callers must check cfg.SessionAuthEnabled first.
func SessionRequired(cfg *config.Config) fiber.Handler {
	return jwtware.New(sessionConfig(cfg, func(c *fiber.Ctx, err error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Unauthorized: invalid or expired session",
		})
	}))
}

// SessionOptional verifies the token when one is sent but lets every request
// through. Handlers see a session only when verification succeeded.
func SessionOptional(cfg *config.Config) fiber.Handler {
	return jwtware.New(sessionConfig(cfg, func(c *fiber.Ctx, _ error) error {
		return c.Next()
	}))
}

func sessionConfig(cfg *config.Config, onError fiber.ErrorHandler) jwtware.Config {
	jc := jwtware.Config{
		ContextKey:   auth.ContextKey,
		ErrorHandler: onError,
	}
	if cfg.AuthJWKSURL != "" {
		jc.JWKSetURLs = []string{cfg.AuthJWKSURL}
	} else {
		jc.SigningKey = jwtware.SigningKey{Key: []byte(cfg.AuthJWTSecret)}
	}
	return jc
}
