package auth

import (
	"fmt"
	"os"
	"strings"

	"pod-tracker/logger"
	"pod-tracker/middleware"
	"pod-tracker/types"
	auth_types "pod-tracker/types/auth"
	"pod-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, async_logger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, loggerInstance: async_logger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Login authenticates a dashboard user against the local user table and
// issues a session token carrying the role permissions.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req auth_types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Login validation failed", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	account, err := utils.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil {
		logger.Error("Login failed for "+req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		logger.Error("Password mismatch for "+req.Email, nil)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := middleware.SignToken(account.Uuid, account.Email, account.Name, account.Role, account.Permissions)
	if err != nil {
		logger.Error("Failed to sign session token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to create session",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, int(middleware.TokenTTL.Seconds()))

	profile := auth_types.LoginResponse{
		Uuid:  account.Uuid,
		Email: account.Email,
		Name:  account.Name,
		Role:  account.Role,
	}
	if account.Zone != nil {
		profile.Zone = *account.Zone
	}
	if account.City != nil {
		profile.City = *account.City
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.loggerInstance.Log(logEntry)

	logger.Success("User logged in: " + account.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    profile,
	})
}

// Logout clears the session cookie.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logged out",
		Status:  fiber.StatusOK,
	})
}
