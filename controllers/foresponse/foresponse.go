package foresponse

import (
	"errors"
	"fmt"
	"time"

	"pod-tracker/logger"
	foresponse_model "pod-tracker/models/foresponse"
	trip_model "pod-tracker/models/trip"
	"pod-tracker/services"
	"pod-tracker/services/export"
	"pod-tracker/types"
	foresponse_types "pod-tracker/types/foresponse"
	"pod-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FOResponseController struct {
	db                *gorm.DB
	loggerInstance    *logger.AsyncLogger
	permissionService *services.PermissionService
}

func NewFOResponseController(db *gorm.DB, async_logger *logger.AsyncLogger) *FOResponseController {
	return &FOResponseController{
		db:                db,
		loggerInstance:    async_logger,
		permissionService: services.NewPermissionService(),
	}
}

// List returns FO courier claims, optionally narrowed by status.
func (h *FOResponseController) List(c *fiber.Ctx) error {
	query := h.db.Order("submitted_at DESC, id ASC")

	if status := c.Query("status"); status != "" {
		if !foresponse_model.ResponseStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: fmt.Sprintf("'%s' is not a valid response status", status),
				Status:  fiber.StatusBadRequest,
			})
		}
		query = query.Where("status = ?", status)
	}

	var responses []foresponse_model.FOResponse
	if err := query.Find(&responses).Error; err != nil {
		logger.Error("Failed to list FO responses", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("%d responses found", len(responses)),
		Status:  fiber.StatusOK,
		Data:    responses,
	})
}

// Export streams the verification queue as a CSV download.
func (h *FOResponseController) Export(c *fiber.Ctx) error {
	var responses []foresponse_model.FOResponse
	if err := h.db.Order("submitted_at DESC, id ASC").Find(&responses).Error; err != nil {
		logger.Error("Failed to load FO responses for export", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	out, err := export.FOResponses(responses)
	if err != nil {
		logger.Error("FO response export failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	fileName := fmt.Sprintf("fo_responses_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Status(fiber.StatusOK).Send(out)
}

// Verify decides a pending claim. A verified claim moves its trip to
// fo_courier so the workflow can take it to delivered.
func (h *FOResponseController) Verify(c *fiber.Ctx) error {
	var req foresponse_types.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	verifier, _ := h.permissionService.GetUsername(c)
	verifierUuid, _ := h.permissionService.GetUserUuid(c)

	var decided foresponse_model.FOResponse
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var response foresponse_model.FOResponse
		if err := tx.First(&response, "id = ?", c.Params("id")).Error; err != nil {
			return err
		}

		if response.Status.IsTerminal() {
			return fmt.Errorf("response already %s", response.Status)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":      foresponse_model.ResponseStatus(req.Status),
			"verified_by": verifier,
			"verified_at": now,
		}
		if req.Status == "rejected" {
			updates["rejection_note"] = req.Notes
		}
		if err := tx.Model(&response).Updates(updates).Error; err != nil {
			return err
		}

		if req.Status == "verified" {
			var t trip_model.Trip
			if err := tx.First(&t, "id = ?", response.TripID).Error; err != nil {
				return err
			}
			from := t.Status
			if err := tx.Model(&t).Update("status", trip_model.StatusFOCourier).Error; err != nil {
				return err
			}
			event := trip_model.TripStatusEvent{
				TripID:     t.ID,
				EventType:  trip_model.EventTransition,
				FromStatus: from,
				ToStatus:   trip_model.StatusFOCourier,
				ActorUuid:  verifierUuid,
				ActorName:  verifier,
				Note:       fmt.Sprintf("FO response #%d verified", response.ID),
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		return tx.First(&decided, "id = ?", response.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "FO response not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to verify FO response", err)
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusConflict,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("FO response %s %s by %s", c.Params("id"), req.Status, verifier))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("Response %s", req.Status),
		Status:  fiber.StatusOK,
		Data:    decided,
	})
}
