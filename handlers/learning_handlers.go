package handlers

import (
	"errors"
	"log"
	"strings"

	"cropadvisory/learning"
	"cropadvisory/middleware"
	"cropadvisory/models"

	"github.com/gofiber/fiber/v2"
)

// HandleListModules returns the learning catalogue without quiz answers.
// GET /api/v1/learning/modules
func (h *Handler) HandleListModules(c *fiber.Ctx) error {
	return successJSON(c, learning.Modules())
}

// HandleGetModule returns one learning module.
// GET /api/v1/learning/modules/:id
func (h *Handler) HandleGetModule(c *fiber.Ctx) error {
	m, err := learning.Module(c.Params("id"))
	if err != nil {
		return errorJSON(c, fiber.StatusNotFound, "Learning module not found")
	}
	return successJSON(c, m)
}

// HandleSubmitQuiz checks a quiz answer. Attempts by signed-in learners are
// added to their progress.
// POST /api/v1/learning/modules/:id/quiz
func (h *Handler) HandleSubmitQuiz(c *fiber.Ctx) error {
	var req models.QuizAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Answer = strings.TrimSpace(req.Answer)
	if req.Answer == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Answer is required")
	}

	res, err := learning.Check(c.Params("id"), req.Answer)
	switch {
	case errors.Is(err, learning.ErrModuleNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Learning module not found")
	case errors.Is(err, learning.ErrInvalidOption):
		return errorJSON(c, fiber.StatusBadRequest, "Answer is not one of the quiz options")
	case err != nil:
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to check answer")
	}

	if claims, err := middleware.ExtractClaims(c); err == nil {
		attempt := &models.QuizAttempt{
			UserID:   claims.UserID,
			ModuleID: res.ModuleID,
			Answer:   res.Answer,
			Correct:  res.Correct,
		}
		if err := h.Store.RecordAttempt(c.UserContext(), attempt); err != nil {
			log.Printf("[learning] failed to record attempt for user %s: %v", claims.UserID, err)
		} else {
			res.Recorded = true
		}
	}

	return successJSON(c, res)
}
