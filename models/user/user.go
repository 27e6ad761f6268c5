package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role values assigned to dashboard users.
const (
	RoleControlTower = "control_tower"
	RoleRunner       = "runner"
	RoleAuditor      = "auditor"
)

// User represents a dashboard identity with its role and zone assignment
type User struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Email         string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	Role          string  `gorm:"type:varchar(50);not null" json:"role"`
	Phone         *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Zone          *string `gorm:"type:varchar(100)" json:"zone,omitempty"`
	City          *string `gorm:"type:varchar(100)" json:"city,omitempty"`
	PasswordHash  string  `gorm:"type:varchar(255);not null" json:"-"`
	Permissions   StringSlice `gorm:"type:json" json:"permissions"` // JSON column holding permission strings

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"` // Soft delete field
}

// IsValidRole reports whether the role is one of the known dashboard roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleControlTower, RoleRunner, RoleAuditor:
		return true
	default:
		return false
	}
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}
