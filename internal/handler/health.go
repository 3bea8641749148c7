package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/middleware"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
)

// RecordCounter is the part of the record store the health check inspects.
type RecordCounter interface {
	Count() int
}

// HealthHandler exposes a "system" endpoint that uptime monitors and load
// balancers use to verify the service is alive.
type HealthHandler struct {
	Handler
	store RecordCounter
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server, store RecordCounter) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		store:   store,
	}
}

// CheckHealth returns the service status and its store check.
//
// Response includes:
// - overall status
// - timestamp (UTC) and uptime
// - environment (from config)
// - checks map (store record count)
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	records := h.store.Count()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"uptime":      time.Since(h.server.StartedAt).Round(time.Second).String(),
		"checks": map[string]interface{}{
			"store": map[string]interface{}{
				"status":  "healthy",
				"records": records,
			},
		},
	}

	logger.Debug().
		Int("records", records).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":    "response",
				"operation":     "health_check",
				"error_type":    "json_response_error",
				"error_message": err.Error(),
			})
		}

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
