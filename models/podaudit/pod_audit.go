package podaudit

import "time"

// AuditStatus is the review state of a delivered trip's POD bundle.
type AuditStatus string

const (
	StatusPendingAudit  AuditStatus = "pending_audit"
	StatusUnderReview   AuditStatus = "under_review"
	StatusAuditComplete AuditStatus = "audit_complete"
)

func (as AuditStatus) String() string {
	return string(as)
}

func (as AuditStatus) IsValid() bool {
	switch as {
	case StatusPendingAudit, StatusUnderReview, StatusAuditComplete:
		return true
	default:
		return false
	}
}

// CanBeReviewed reports whether an auditor may pick the audit up.
func (as AuditStatus) CanBeReviewed() bool {
	return as == StatusPendingAudit
}

// CanBeCompleted reports whether a result may be filed.
func (as AuditStatus) CanBeCompleted() bool {
	return as == StatusUnderReview
}

// Audit results filed on completion.
const (
	ResultClean   = "clean"
	ResultUnclean = "unclean"
	ResultPartial = "partial"
)

// IsValidResult reports whether the result value is known.
func IsValidResult(r string) bool {
	return r == ResultClean || r == ResultUnclean || r == ResultPartial
}

// PODAudit is one delivered trip's document bundle queued for review.
type PODAudit struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID    string      `gorm:"type:varchar(50);not null;uniqueIndex" json:"trip_id"`
	VehicleNo string      `gorm:"type:varchar(20)" json:"vehicle_no"`
	Route     string      `gorm:"type:varchar(200)" json:"route"`
	Supplier  string      `gorm:"type:varchar(100)" json:"supplier"`
	Status    AuditStatus `gorm:"type:varchar(30);not null;default:'pending_audit'" json:"status"`

	QueuedAt   time.Time  `gorm:"not null" json:"queued_at"`
	ReviewedBy *string    `gorm:"type:varchar(100)" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	// Result fields, populated only once the audit completes.
	Result          *string    `gorm:"type:varchar(20)" json:"result,omitempty"`
	DeductionAmount *float64   `json:"deduction_amount,omitempty"`
	Notes           *string    `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	Documents []AuditDocument `gorm:"foreignKey:AuditID;references:ID" json:"documents,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AuditDocument is one POD page attached to an audit.
type AuditDocument struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AuditID   uint      `gorm:"not null;index" json:"audit_id"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileURL   string    `gorm:"type:varchar(500);not null" json:"file_url"`
	PageCount int       `gorm:"not null;default:1" json:"page_count"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
