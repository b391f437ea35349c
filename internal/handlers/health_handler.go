package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthHandler serves GET /health.
type HealthHandler struct {
	check  HealthCheck
	logger zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler. A nil check always reports up.
func NewHealthHandler(check HealthCheck, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		check:  check,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// RegisterRoutes registers the health route with the Fiber app.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth reports service and database status.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status, database, code := "healthy", "up", fiber.StatusOK
	if h.check != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.check(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("database health check failed")
			status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
