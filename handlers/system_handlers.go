package handlers

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandleHealth reports liveness and storage reachability.
// GET /api/v1/health
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	state, status := "ok", fiber.StatusOK
	storageErr := ""
	if err := h.Store.Ping(ctx); err != nil {
		state, status = "degraded", fiber.StatusServiceUnavailable
		storageErr = err.Error()
	}

	return c.Status(status).JSON(fiber.Map{
		"status":       state,
		"time":         time.Now(),
		"storage":      h.Storage,
		"storageError": storageErr,
		"agronomist":   h.Narrator != nil,
		"subscribers":  h.Telemetry.Subscribers(),
	})
}

// HandleVersion prints the build information.
// GET /version
func (h *Handler) HandleVersion(c *fiber.Ctx) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return c.Status(500).SendString("no build information available")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTML)
	return c.SendString("<pre>\n" + info.String() + "</pre>\n")
}
