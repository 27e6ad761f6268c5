package audit

import (
	"errors"
	"fmt"
	"time"

	"pod-tracker/logger"
	audit_model "pod-tracker/models/podaudit"
	"pod-tracker/services"
	"pod-tracker/types"
	audit_types "pod-tracker/types/audit"
	"pod-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditController struct {
	db                *gorm.DB
	loggerInstance    *logger.AsyncLogger
	permissionService *services.PermissionService
}

func NewAuditController(db *gorm.DB, async_logger *logger.AsyncLogger) *AuditController {
	return &AuditController{
		db:                db,
		loggerInstance:    async_logger,
		permissionService: services.NewPermissionService(),
	}
}

// List returns queued audits, optionally narrowed by status.
func (h *AuditController) List(c *fiber.Ctx) error {
	query := h.db.Preload("Documents").Order("queued_at ASC, id ASC")

	if status := c.Query("status"); status != "" {
		if !audit_model.AuditStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: fmt.Sprintf("'%s' is not a valid audit status", status),
				Status:  fiber.StatusBadRequest,
			})
		}
		query = query.Where("status = ?", status)
	}

	var audits []audit_model.PODAudit
	if err := query.Find(&audits).Error; err != nil {
		logger.Error("Failed to list audits", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("%d audits found", len(audits)),
		Status:  fiber.StatusOK,
		Data:    audits,
	})
}

// Get returns one audit with its documents.
func (h *AuditController) Get(c *fiber.Ctx) error {
	var a audit_model.PODAudit
	if err := h.db.Preload("Documents").First(&a, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Audit not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load audit", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Internal server error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Audit fetched",
		Status:  fiber.StatusOK,
		Data:    a,
	})
}

// Review moves a pending audit under review, claiming it for the caller.
// An optional body can record a provisional result and working notes.
func (h *AuditController) Review(c *fiber.Ctx) error {
	var req audit_types.ReviewRequest
	if len(c.Body()) > 0 {
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
	}

	reviewer, _ := h.permissionService.GetUsername(c)

	var claimed audit_model.PODAudit
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var a audit_model.PODAudit
		if err := tx.First(&a, "id = ?", c.Params("id")).Error; err != nil {
			return err
		}

		if !a.Status.CanBeReviewed() {
			return fmt.Errorf("audit is %s and cannot be picked up", a.Status)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":      audit_model.StatusUnderReview,
			"reviewed_by": reviewer,
			"reviewed_at": now,
		}
		if req.Result != "" {
			updates["result"] = req.Result
		}
		if req.Notes != "" {
			updates["notes"] = req.Notes
		}
		if err := tx.Model(&a).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Preload("Documents").First(&claimed, "id = ?", a.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Audit not found",
				Status:  fiber.StatusNotFound,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusConflict,
		})
	}

	logger.Info(fmt.Sprintf("Audit %s picked up by %s", c.Params("id"), reviewer))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Audit under review",
		Status:  fiber.StatusOK,
		Data:    claimed,
	})
}

// Complete files the audit result. Deduction amounts are only stored
// for unclean results; the request type enforces that shape.
func (h *AuditController) Complete(c *fiber.Ctx) error {
	var req audit_types.CompleteRequest
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

	auditor, _ := h.permissionService.GetUsername(c)

	var completed audit_model.PODAudit
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var a audit_model.PODAudit
		if err := tx.First(&a, "id = ?", c.Params("id")).Error; err != nil {
			return err
		}

		if !a.Status.CanBeCompleted() {
			return fmt.Errorf("audit is %s and cannot be completed", a.Status)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       audit_model.StatusAuditComplete,
			"result":       req.Result,
			"completed_at": now,
		}
		if req.Result == audit_model.ResultUnclean {
			updates["deduction_amount"] = req.DeductionAmount
		}
		if req.Notes != "" {
			updates["notes"] = req.Notes
		}
		if err := tx.Model(&a).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Preload("Documents").First(&completed, "id = ?", a.ID).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Audit not found",
				Status:  fiber.StatusNotFound,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusConflict,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Audit %s completed as %s by %s", c.Params("id"), req.Result, auditor))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Audit completed",
		Status:  fiber.StatusOK,
		Data:    completed,
	})
}
