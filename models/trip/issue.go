package trip

import "time"

// Issue types a runner can report against a trip.
const (
	IssueFONotResponding = "fo_not_responding"
	IssueDocumentMissing = "document_missing"
	IssueWrongAddress    = "wrong_address"
	IssueVehicleIssue    = "vehicle_issue"
	IssueOther           = "other"
)

// IsValidIssueType reports whether the issue type is a known category.
func IsValidIssueType(t string) bool {
	switch t {
	case IssueFONotResponding, IssueDocumentMissing, IssueWrongAddress, IssueVehicleIssue, IssueOther:
		return true
	default:
		return false
	}
}

// Issue is the single open-or-resolved problem slot on a trip. A trip holds
// at most one issue row; reporting a new one while unresolved is rejected.
type Issue struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID      string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"trip_id"`
	Type        string     `gorm:"type:varchar(30);not null" json:"type"`
	Description string     `gorm:"type:varchar(1000);not null" json:"description"`
	ReportedBy  string     `gorm:"type:varchar(100)" json:"reported_by"`
	ReportedAt  time.Time  `gorm:"not null" json:"reported_at"`
	Resolved    bool       `gorm:"not null;default:false" json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`

	Updates []IssueUpdate `gorm:"foreignKey:IssueID;references:ID" json:"updates,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IssueUpdateResolved marks the synthetic closing entry in an update trail.
const IssueUpdateResolved = "Issue Resolved"

// IssueUpdate is an append-only progress entry under an issue, recording
// the reclassified type and/or revised description at that point in time.
type IssueUpdate struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IssueID     uint      `gorm:"not null;index" json:"issue_id"`
	Type        string    `gorm:"type:varchar(30)" json:"type"`
	Description string    `gorm:"type:varchar(1000)" json:"description"`
	Author      string    `gorm:"type:varchar(100)" json:"author"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
