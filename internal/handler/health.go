package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/assignment-api/internal/middleware"
	"github.com/deppfellow/assignment-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// PingMessage is the JSON string body of GET /test.
const PingMessage = "Server API is working 🚀"

const defaultCheckTimeout = 5 * time.Second

// HealthHandler serves liveness and dependency health endpoints.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// Ping answers GET /test without touching any dependency.
func (h *HealthHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, PingMessage)
}

// CheckHealth runs the configured dependency checks.
//
// A failing database check answers 503. Redis only backs rate limiting,
// which lets requests through without it, so a failing Redis check is
// reported but keeps the service healthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]interface{}{}
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	obs := h.server.Config.Observability
	timeout := defaultCheckTimeout
	if obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}
	enabled := func(name string) bool {
		return obs == nil || obs.HealthCheckEnabled(name)
	}

	isHealthy := true

	if enabled("database") && h.server.DB != nil {
		if !h.runCheck(c.Request().Context(), &logger, checks, "database", timeout, h.server.DB.Ping) {
			isHealthy = false
		}
	}

	if enabled("redis") && h.server.Redis != nil {
		h.runCheck(c.Request().Context(), &logger, checks, "redis", timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) runCheck(
	parent context.Context,
	logger *zerolog.Logger,
	checks map[string]interface{},
	name string,
	timeout time.Duration,
	ping func(context.Context) error,
) bool {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Dur("response_time", elapsed).
			Msgf("%s health check failed", name)

		h.recordHealthEvent(map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return false
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	return true
}

func (h *HealthHandler) recordHealthEvent(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
