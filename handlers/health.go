package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/utils/response"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	store database.Storage
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store database.Storage) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "up"

	if err := h.store.HealthCheck(); err != nil {
		status = "degraded"
		dbStatus = "down"
	}

	return response.Success(c, fiber.Map{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
