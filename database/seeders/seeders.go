package seeders

import (
	"pod-tracker/logger"

	"gorm.io/gorm"
)

// SeedAll loads the demo dataset: users, trips and queued audits.
// Each seeder is idempotent and skips tables that already hold data.
func SeedAll(db *gorm.DB) error {
	if err := SeedUsers(db); err != nil {
		return err
	}
	if err := SeedTrips(db); err != nil {
		return err
	}
	if err := SeedAudits(db); err != nil {
		return err
	}
	logger.Success("Seed data loaded")
	return nil
}
