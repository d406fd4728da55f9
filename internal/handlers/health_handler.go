package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/catalog"
	"github.com/stratacloud/careers-backend/internal/database"
	"github.com/stratacloud/careers-backend/internal/dto"
)

type HealthHandler struct {
	store database.Store
	jobs  *catalog.Catalog
}

func NewHealthHandler(store database.Store, jobs *catalog.Catalog) *HealthHandler {
	return &HealthHandler{store: store, jobs: jobs}
}

// Check reports 503 when the document store is unreachable. Store errors are
// logged, never returned.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     "ok",
		JobCount:  h.jobs.Len(),
	}

	if err := h.store.Ping(c.UserContext()); err != nil {
		slog.Error("health check failed", "request_id", requestID(c), "action", "health", "error", err.Error())
		resp.Status = "degraded"
		resp.Store = "unhealthy"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
