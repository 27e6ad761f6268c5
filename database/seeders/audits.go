package seeders

import (
	"time"

	"pod-tracker/logger"
	audit_model "pod-tracker/models/podaudit"

	"gorm.io/gorm"
)

// SeedAudits queues the delivered demo trip for audit.
func SeedAudits(db *gorm.DB) error {
	var count int64
	if err := db.Model(&audit_model.PODAudit{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Audits already seeded, skipping")
		return nil
	}

	audits := []audit_model.PODAudit{
		{
			TripID:    "TRP-1004",
			VehicleNo: "GJ05LM4321",
			Route:     "Ahmedabad - Surat",
			Supplier:  "Narmada Chemicals",
			Status:    audit_model.StatusPendingAudit,
			QueuedAt:  time.Now().AddDate(0, 0, -2),
			Documents: []audit_model.AuditDocument{
				{FileName: "trp-1004-pod-1.jpg", FileURL: "/uploads/trp-1004-pod-1.jpg", PageCount: 2},
			},
		},
	}

	if err := db.Create(&audits).Error; err != nil {
		return err
	}

	logger.Success("Seeded demo audits")
	return nil
}
