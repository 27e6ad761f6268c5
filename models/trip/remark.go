package trip

import "time"

// Runner remark types. The FO type carries courier hand-off details and
// feeds the verification queue when added on a couriered trip.
const (
	RemarkGeneral = "general"
	RemarkFO      = "fo"
)

// IsValidRemarkType reports whether the remark type is known.
func IsValidRemarkType(t string) bool {
	return t == RemarkGeneral || t == RemarkFO
}

// RunnerRemark is a free-text note left by a runner on a trip.
type RunnerRemark struct {
	ID     uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID string      `gorm:"type:varchar(50);not null;index" json:"trip_id"`
	Type   string      `gorm:"type:varchar(20);not null;default:'general'" json:"type"`
	Text   string      `gorm:"type:varchar(1000);not null" json:"text"`
	Images StringSlice `gorm:"type:json" json:"images"`
	Author string      `gorm:"type:varchar(100)" json:"author"`

	// Courier hand-off details, set only on fo remarks.
	CourierService *string `gorm:"type:varchar(100)" json:"courier_service,omitempty"`
	DocketNumber   *string `gorm:"type:varchar(100)" json:"docket_number,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OwnerRemark is a note left by the trip owner, removable by its author.
type OwnerRemark struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID    string     `gorm:"type:varchar(50);not null;index" json:"trip_id"`
	Text      string     `gorm:"type:varchar(1000);not null" json:"text"`
	Author    string     `gorm:"type:varchar(100)" json:"author"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
