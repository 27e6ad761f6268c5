package services

import (
	"pod-tracker/constants"
	"pod-tracker/middleware"
	"pod-tracker/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type PermissionService struct{}

func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

// CheckPermission checks if the current user has a specific permission
func (ps *PermissionService) CheckPermission(c *fiber.Ctx, permission string) bool {
	return middleware.CheckPermissionInController(c, permission)
}

// CheckAnyPermission checks if the current user has any of the specified permissions
func (ps *PermissionService) CheckAnyPermission(c *fiber.Ctx, permissions ...string) bool {
	userPermissions := middleware.GetUserPermissions(c)

	for _, permission := range permissions {
		if userPermissions[permission] {
			return true
		}
	}
	return false
}

// RequireAnyPermission returns an error response if user doesn't have any of the permissions
func (ps *PermissionService) RequireAnyPermission(c *fiber.Ctx, permissions ...string) error {
	if !ps.CheckAnyPermission(c, permissions...) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Insufficient permissions",
			Status:  fiber.StatusForbidden,
		})
	}
	return nil
}

// GetUserInfo returns user information from JWT claims
func (ps *PermissionService) GetUserInfo(c *fiber.Ctx) (jwt.MapClaims, bool) {
	userClaims, ok := c.Locals("user").(jwt.MapClaims)
	return userClaims, ok
}

// GetUserUuid returns the user uuid from JWT claims
func (ps *PermissionService) GetUserUuid(c *fiber.Ctx) (string, bool) {
	userClaims, ok := ps.GetUserInfo(c)
	if !ok {
		return "", false
	}

	uuid, ok := userClaims["uuid"].(string)
	return uuid, ok
}

// GetUsername returns username from JWT claims
func (ps *PermissionService) GetUsername(c *fiber.Ctx) (string, bool) {
	userClaims, ok := ps.GetUserInfo(c)
	if !ok {
		return "", false
	}

	username, ok := userClaims["username"].(string)
	return username, ok
}

// IsDispatcher checks if user may run control tower corrections
func (ps *PermissionService) IsDispatcher(c *fiber.Ctx) bool {
	return ps.CheckAnyPermission(c, constants.DispatcherPermissions...)
}
