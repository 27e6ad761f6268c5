package routes

import (
	"os"

	"pod-tracker/constants"
	audit_controller "pod-tracker/controllers/audit"
	"pod-tracker/controllers/auth"
	foresponse_controller "pod-tracker/controllers/foresponse"
	trip_controller "pod-tracker/controllers/trip"
	user_controller "pod-tracker/controllers/user"
	httpServices "pod-tracker/httpServices/crm"
	"pod-tracker/logger"
	"pod-tracker/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	crmClient := httpServices.NewClient(os.Getenv("CRM_BASE_URL"))
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	userController := user_controller.NewUserController(db, asyncLogger)
	tripController := trip_controller.NewTripController(crmClient, db, asyncLogger)
	foResponseController := foresponse_controller.NewFOResponseController(db, asyncLogger)
	auditController := audit_controller.NewAuditController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "pod-tracker",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAnyPermission())
	authGroup.Get("/profile", userController.Profile)
	authGroup.Post("/logout", authController.Logout)

	/*=============================================================================
	| Trip Routes
	===============================================================================*/
	trips := api.Group("/trips").Use(middleware.RequireAnyPermission())

	trips.Get("/", tripController.List)
	trips.Get("/export", tripController.Export)
	trips.Get("/:id", tripController.Get)
	trips.Get("/:id/history", tripController.History)
	trips.Get("/:id/links", tripController.Links)

	trips.Patch("/:id/status", tripController.UpdateStatus)
	trips.Patch("/:id/slot-status", tripController.SetSlotStatus)
	trips.Patch("/:id/supplier-address", tripController.SetSupplierAddress)

	trips.Post("/:id/pod-images", tripController.AddPODImages)
	trips.Delete("/:id/pod-images/:name", tripController.RemovePODImage)

	trips.Post("/:id/issue", tripController.ReportIssue)
	trips.Patch("/:id/issue", tripController.UpdateIssue)
	trips.Post("/:id/issue/resolve", tripController.ResolveIssue)

	trips.Post("/:id/remarks", tripController.AddRemark)
	trips.Post("/:id/owner-remarks", tripController.AddOwnerRemark)
	trips.Delete("/:id/owner-remarks/:remarkId", tripController.RemoveOwnerRemark)

	// Control tower only
	trips.Post("/sync", middleware.RequirePermissions(
		constants.DispatcherPermissions...,
	), tripController.Sync)

	trips.Patch("/:id/status/override", middleware.RequirePermissions(
		constants.DispatcherPermissions...,
	), tripController.OverrideStatus)

	trips.Patch("/:id/runner", middleware.RequirePermissions(
		constants.DispatcherPermissions...,
	), tripController.AssignRunner)

	trips.Patch("/:id/owner", middleware.RequirePermissions(
		constants.DispatcherPermissions...,
	), tripController.AssignOwner)

	/*=============================================================================
	| FO Response Routes
	===============================================================================*/
	foResponses := api.Group("/fo-responses").Use(middleware.RequirePermissions(
		constants.DispatcherPermissions...,
	))

	foResponses.Get("/", foResponseController.List)
	foResponses.Get("/export", foResponseController.Export)
	foResponses.Post("/:id/verify", foResponseController.Verify)

	/*=============================================================================
	| POD Audit Routes
	===============================================================================*/
	audits := api.Group("/audits").Use(middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermAuditorFull,
	))

	audits.Get("/", auditController.List)
	audits.Get("/:id", auditController.Get)
	audits.Post("/:id/review", auditController.Review)
	audits.Post("/:id/complete", auditController.Complete)
}
