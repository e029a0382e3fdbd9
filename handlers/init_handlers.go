package handlers

import (
	"log"
	"strings"

	"cropadvisory/config"
	"cropadvisory/models"
	"cropadvisory/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleInitializeAdmin creates the first admin user if none exists
// POST /api/v1/auth/init-admin
func (h *Handler) HandleInitializeAdmin(c *fiber.Ctx) error {
	initToken := config.AppConfig.InitToken
	if initToken == "" {
		return errorJSON(c, fiber.StatusForbidden, "INIT_TOKEN not configured")
	}

	providedToken := c.Get("X-Init-Token")
	// Log masked token attempts for debugging (do not log full token)
	maskToken := func(t string) string {
		if len(t) <= 8 {
			return "****"
		}
		return t[:4] + "..." + t[len(t)-4:]
	}

	if providedToken != initToken {
		log.Printf("[auth] init attempt with invalid token: %s", maskToken(providedToken))
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid initialization token")
	}

	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || len(req.Password) < minPasswordLength {
		return errorJSON(c, fiber.StatusBadRequest, "Name, email and a password of at least 8 characters are required")
	}

	admins, err := h.Store.CountUsers(c.UserContext(), utils.RoleAdmin)
	if err != nil {
		log.Printf("[auth] database error counting admins: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}
	if admins > 0 {
		return errorJSON(c, fiber.StatusConflict, "An admin already exists")
	}

	user, status, msg := h.createUser(c, req, utils.RoleAdmin)
	if user == nil {
		return errorJSON(c, status, msg)
	}
	log.Printf("[auth] admin %s created", user.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Admin user created successfully",
		"data":    user,
	})
}
