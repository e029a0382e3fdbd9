package handlers

import (
	"log"

	"cropadvisory/learning"
	"cropadvisory/middleware"
	"cropadvisory/models"
	"cropadvisory/utils"

	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

// HandleMyProgress returns the caller's quiz history and summary.
// GET /api/v1/me/progress
func (h *Handler) HandleMyProgress(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page, pageSize, limit, offset := utils.PageBounds(c.QueryInt("page", 1), c.QueryInt("pageSize", 10), maxPageSize)

	attempts, total, err := h.Store.ListAttempts(c.UserContext(), claims.UserID, limit, offset)
	if err != nil {
		log.Printf("Error listing attempts for user %s: %v", claims.UserID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to retrieve progress")
	}

	summary, err := h.Store.Summary(c.UserContext(), claims.UserID)
	if err != nil {
		log.Printf("Error summarising attempts for user %s: %v", claims.UserID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to retrieve progress")
	}
	summary.ModulesTotal = len(learning.Modules())

	return c.JSON(fiber.Map{
		"status": "success",
		"data": models.PaginatedAttemptsResponse{
			Data:       attempts,
			Summary:    summary,
			Pagination: utils.CreatePagination(total, page, pageSize),
		},
	})
}

// HandleAdminProgress handles the GET /api/v1/admin/progress endpoint.
func (h *Handler) HandleAdminProgress(c *fiber.Ctx) error {
	ctx := c.UserContext()

	learners, err := h.Store.CountUsers(ctx, utils.RoleLearner)
	if err != nil {
		log.Printf("Error counting learners: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to count learners")
	}

	stats, err := h.Store.ModuleStats(ctx)
	if err != nil {
		log.Printf("Error querying module stats: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load module statistics")
	}

	byID := make(map[string]models.ModuleStat, len(stats))
	for _, st := range stats {
		byID[st.ModuleID] = st
	}
	// every catalogue module is listed, even without attempts
	modules := make([]models.ModuleStat, 0, len(learning.Modules()))
	for _, m := range learning.Modules() {
		st, ok := byID[m.ID]
		if !ok {
			st = models.ModuleStat{ModuleID: m.ID}
		}
		modules = append(modules, st)
	}

	return successJSON(c, fiber.Map{
		"learners": learners,
		"modules":  modules,
	})
}
