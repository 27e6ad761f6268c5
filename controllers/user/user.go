package user

import (
	"pod-tracker/logger"
	"pod-tracker/services"
	"pod-tracker/types"
	auth_types "pod-tracker/types/auth"
	"pod-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	db                *gorm.DB
	loggerInstance    *logger.AsyncLogger
	permissionService *services.PermissionService
}

func NewUserController(db *gorm.DB, async_logger *logger.AsyncLogger) *UserController {
	return &UserController{
		db:                db,
		loggerInstance:    async_logger,
		permissionService: services.NewPermissionService(),
	}
}

// Profile returns the authenticated user's own record.
func (h *UserController) Profile(c *fiber.Ctx) error {
	uuid, ok := h.permissionService.GetUserUuid(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Session expired. Login again.",
			Status:  fiber.StatusUnauthorized,
		})
	}

	account, err := utils.GetUserByUUID(uuid)
	if err != nil {
		logger.Error("Failed to load profile for "+uuid, err)
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
			Message: "User not found",
			Status:  fiber.StatusNotFound,
		})
	}

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

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched",
		Status:  fiber.StatusOK,
		Data:    profile,
	})
}
