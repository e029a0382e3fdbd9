package handlers

import (
	"errors"
	"log"
	"strings"

	"cropadvisory/database"
	"cropadvisory/middleware"
	"cropadvisory/models"
	"cropadvisory/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// HandleRegister creates a learner account and signs it in.
// POST /api/v1/auth/register
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing registration request: %v", err)
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required fields (name, email, password)")
	}
	if !strings.Contains(req.Email, "@") {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return errorJSON(c, fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	user, status, msg := h.createUser(c, req, utils.RoleLearner)
	if user == nil {
		return errorJSON(c, status, msg)
	}

	token, err := middleware.IssueToken(user.ID, user.Role)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not sign token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "accessToken": token, "data": user})
}

func (h *Handler) createUser(c *fiber.Ctx, req models.RegisterRequest, role string) (*models.User, int, string) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return nil, fiber.StatusInternalServerError, "Could not process password"
	}

	user := &models.User{Name: req.Name, Email: req.Email, Role: role}
	if err := h.Store.CreateUser(c.UserContext(), user, string(hashedPassword)); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, fiber.StatusConflict, "User with this email already exists"
		}
		log.Printf("Error creating user in database: %v", err)
		return nil, fiber.StatusInternalServerError, "Could not create user"
	}
	return user, 0, ""
}

// HandleLogin authenticates a user and returns a JWT token.
// POST /api/v1/auth/login
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	user, passwordHash, err := h.Store.UserByEmail(c.UserContext(), utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("Database error during login for email %s: %v", req.Email, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	if !user.IsActive {
		return errorJSON(c, fiber.StatusUnauthorized, "User account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := middleware.IssueToken(user.ID, user.Role)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not sign token")
	}

	return c.JSON(fiber.Map{"status": "success", "accessToken": token, "data": user})
}
