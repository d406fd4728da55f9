package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"

	"github.com/stratacloud/careers-backend/internal/auth"
	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
)

// FIDO2Prefix is the route prefix forwarded to the passwordless provider.
const FIDO2Prefix = "/api/auth/fido2"

type AuthHandler struct {
	cfg   *config.Config
	store database.Store
}

func NewAuthHandler(cfg *config.Config, store database.Store) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: store}
}

// Config tells the browser client how to reach the passwordless provider.
func (h *AuthHandler) Config(c *fiber.Ctx) error {
	return c.JSON(dto.AuthConfigResponse{
		ClientID:     h.cfg.AuthClientID,
		Issuer:       h.cfg.AuthIssuer,
		FIDO2Enabled: h.cfg.FIDO2BaseURL != "",
		FIDO2Path:    FIDO2Prefix,
	})
}

// FIDO2 forwards the request, path suffix and query included, to the provider.
func (h *AuthHandler) FIDO2(c *fiber.Ctx) error {
	if h.cfg.FIDO2BaseURL == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "FIDO2 is not configured",
		})
	}

	target := strings.TrimRight(h.cfg.FIDO2BaseURL, "/") + strings.TrimPrefix(c.OriginalURL(), FIDO2Prefix)
	if err := proxy.Do(c, target); err != nil {
		slog.Error("fido2 proxy failed", "route", FIDO2Prefix, "error", err.Error())
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Authentication provider unavailable",
		})
	}
	c.Response().Header.Del(fiber.HeaderServer)
	return nil
}

// Session reports the verified session and, when the email is registered,
// the matching user.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, err := auth.FromContext(c)
	if err != nil {
		return c.JSON(dto.SessionResponse{Authenticated: false})
	}

	resp := dto.SessionResponse{
		Authenticated: true,
		Subject:       session.Subject,
		Email:         session.Email,
	}
	if session.Email != "" {
		user, err := h.store.GetUserByEmail(c.UserContext(), session.Email)
		switch {
		case err == nil:
			resp.UserID = user.UserID
			resp.Role = user.Role
		case !errors.Is(err, database.ErrNotFound):
			slog.Warn("session user lookup failed", "error", err)
		}
	}
	return c.JSON(resp)
}
