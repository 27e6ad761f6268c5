package seeders

import (
	"pod-tracker/constants"
	"pod-tracker/logger"
	user_model "pod-tracker/models/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func strptr(s string) *string { return &s }

// SeedUsers creates the demo accounts for each role.
func SeedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&user_model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []user_model.User{
		{
			Uuid:         uuid.NewString(),
			Email:        "ops@freighttiger.com",
			Name:         "Operations Team",
			Role:         user_model.RoleControlTower,
			Zone:         strptr("South"),
			City:         strptr("Bangalore"),
			PasswordHash: string(hash),
			Permissions:  user_model.StringSlice{constants.PermControlTowerFull},
		},
		{
			Uuid:         uuid.NewString(),
			Email:        "lokesh@freighttiger.com",
			Name:         "Lokesh",
			Role:         user_model.RoleRunner,
			Phone:        strptr("+919876543210"),
			Zone:         strptr("South"),
			City:         strptr("Bangalore"),
			PasswordHash: string(hash),
			Permissions:  user_model.StringSlice{constants.PermRunnerFull},
		},
		{
			Uuid:         uuid.NewString(),
			Email:        "arjun@freighttiger.com",
			Name:         "Arjun",
			Role:         user_model.RoleAuditor,
			Zone:         strptr("South"),
			City:         strptr("Bangalore"),
			PasswordHash: string(hash),
			Permissions:  user_model.StringSlice{constants.PermAuditorFull},
		},
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	logger.Success("Seeded demo users")
	return nil
}
