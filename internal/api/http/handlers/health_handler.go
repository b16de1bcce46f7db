package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/persistence"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	redis   *persistence.Redis
	metrics *observability.Metrics
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{redis: redis, metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	redisStatus := "ok"
	if err := h.redis.Ping(c.Context()); err != nil {
		redisStatus = "unavailable"
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"redis":  redisStatus,
		"engine": h.metrics.Snapshot(),
	})
}
