// Package auth reads the passwordless provider's session token once the JWT
// middleware has verified it and stored it under the "user" local.
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ContextKey is the fiber local the JWT middleware stores the token under.
const ContextKey = "user"

var (
	ErrNoSession     = errors.New("no session token in context")
	ErrInvalidClaims = errors.New("invalid session claims")
)

type Session struct {
	Subject string
	Email   string
}

// FromContext returns the verified session of the current request.
func FromContext(c *fiber.Ctx) (*Session, error) {
	token, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidClaims
	}
	email, _ := claims["email"].(string)

	return &Session{Subject: sub, Email: strings.ToLower(strings.TrimSpace(email))}, nil
}

// IsAdminEmail reports whether email is in the comma separated allow-list.
func IsAdminEmail(adminEmails, email string) bool {
	if email == "" {
		return false
	}
	for _, e := range strings.Split(adminEmails, ",") {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}
