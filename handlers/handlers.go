package handlers

import (
	"cropadvisory/agronomist"
	"cropadvisory/database"
	"cropadvisory/telemetry"
	"cropadvisory/web"

	"github.com/gofiber/fiber/v2"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	Store     database.Store
	Storage   string // "postgres" or "memory"
	Telemetry *telemetry.Simulator
	Narrator  agronomist.Narrator // nil when GEMINI_API_KEY is unset
	Page      *web.Renderer
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}

func successJSON(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"status": "success", "data": data})
}

// queryOr returns the query value for key, or fallback when the key is
// absent. A key that is present but empty stays empty.
func queryOr(c *fiber.Ctx, key, fallback string) string {
	if !c.Context().QueryArgs().Has(key) {
		return fallback
	}
	return c.Query(key)
}
