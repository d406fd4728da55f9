package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		APISecret:       "s3cret",
		AllowedOrigins:  []string{"https://careers.example.com"},
		AllowedMethods:  []string{"GET", "HEAD", "POST", "PATCH", "DELETE", "OPTIONS"},
		RateLimitMax:    3,
		RateLimitWindow: time.Minute,
		AuthJWTSecret:   "session-key",
		AdminEmails:     "boss@x.com",
	}
}

func ok(c *fiber.Ctx) error { return c.SendString("ok") }

func do(t *testing.T, app *fiber.App, method, path string, headers map[string]string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func TestAPISecret(t *testing.T) {
	app := fiber.New()
	app.Get("/", APISecret(testConfig()), ok)

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/", nil))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/", map[string]string{APISecretHeader: "wrong"}))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/", map[string]string{APISecretHeader: "s3cret"}))
}

func TestAPISecret_EmptySecretRejects(t *testing.T) {
	cfg := testConfig()
	cfg.APISecret = ""
	app := fiber.New()
	app.Get("/", APISecret(cfg), ok)

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/", map[string]string{APISecretHeader: ""}))
}

func TestRoutePolicy(t *testing.T) {
	app := fiber.New()
	app.Use(RoutePolicy(testConfig()))
	app.All("/", ok)

	assert.Equal(t, fiber.StatusMethodNotAllowed, do(t, app, "PUT", "/", nil))
	assert.Equal(t, fiber.StatusMethodNotAllowed, do(t, app, "TRACE", "/", nil))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "GET", "/", map[string]string{"Origin": "https://evil.example"}))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/", map[string]string{"Origin": "https://careers.example.com/"}))
	assert.Equal(t, fiber.StatusOK, do(t, app, "POST", "/", nil))
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(testConfig()))
	app.Get("/", ok)

	for i := 0; i < 3; i++ {
		assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/", nil))
	}
	assert.Equal(t, fiber.StatusTooManyRequests, do(t, app, "GET", "/", nil))
}

func sessionToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("session-key"))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestSessionAndAdmin(t *testing.T) {
	cfg := testConfig()
	store := database.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.CreateUser(ctx, models.NewUserRecord("u1", "admin@x.com", "A", "D", models.RoleAdmin, "t")))
	require.NoError(t, store.CreateUser(ctx, models.NewUserRecord("u2", "staff@x.com", "S", "T", models.RoleStaffer, "t")))

	app := fiber.New()
	app.Get("/admin", SessionRequired(cfg), AdminRequired(store, cfg), ok)

	exp := time.Now().Add(time.Hour).Unix()
	auth := func(email string) map[string]string {
		return map[string]string{"Authorization": sessionToken(t, jwt.MapClaims{"sub": "x", "email": email, "exp": exp})}
	}

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/admin", nil))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/admin", map[string]string{"Authorization": "Bearer garbage"}))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/admin", auth("boss@x.com")))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/admin", auth("admin@x.com")))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "GET", "/admin", auth("staff@x.com")))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "GET", "/admin", auth("stranger@x.com")))
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", ok)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
