package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"cropadvisory/models"

	"github.com/gofiber/fiber/v2"
)

const maxPromptLength = 2000

// HandleAsk answers a free-form farming question.
// POST /api/v1/agronomist/ask
func (h *Handler) HandleAsk(c *fiber.Ctx) error {
	if h.Narrator == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Agronomist is not configured")
	}

	var body models.AgronomistQuestion
	if err := c.BodyParser(&body); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Prompt = strings.TrimSpace(body.Prompt)
	if body.Prompt == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Prompt is required")
	}
	if len(body.Prompt) > maxPromptLength {
		return errorJSON(c, fiber.StatusBadRequest, "Prompt is too long")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
	defer cancel()

	answer, err := h.Narrator.Ask(ctx, body.Prompt)
	if err != nil {
		log.Printf("Error generating content: %v", err)
		return errorJSON(c, fiber.StatusBadGateway, "Failed to generate text")
	}

	return successJSON(c, fiber.Map{"answer": answer})
}
