package foresponse

import "time"

// ResponseStatus is the verification state of an FO courier claim.
type ResponseStatus string

const (
	StatusPendingVerification ResponseStatus = "pending_verification"
	StatusVerified            ResponseStatus = "verified"
	StatusRejected            ResponseStatus = "rejected"
)

func (rs ResponseStatus) String() string {
	return string(rs)
}

func (rs ResponseStatus) IsValid() bool {
	switch rs {
	case StatusPendingVerification, StatusVerified, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the claim has already been decided.
func (rs ResponseStatus) IsTerminal() bool {
	return rs == StatusVerified || rs == StatusRejected
}

// FOResponse records a fleet owner's claim that the POD was couriered
// directly. Created whenever a runner files an fo remark, then verified
// or rejected by the control tower.
type FOResponse struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID         string         `gorm:"type:varchar(50);not null;index" json:"trip_id"`
	VehicleNo      string         `gorm:"type:varchar(20)" json:"vehicle_no"`
	FOName         string         `gorm:"type:varchar(100)" json:"fo_name"`
	FOPhone        string         `gorm:"type:varchar(20)" json:"fo_phone"`
	CourierService string         `gorm:"type:varchar(100)" json:"courier_service"`
	DocketNumber   string         `gorm:"type:varchar(100)" json:"docket_number"`
	Remark         string         `gorm:"type:varchar(1000)" json:"remark"`
	Status         ResponseStatus `gorm:"type:varchar(30);not null;default:'pending_verification'" json:"status"`
	SubmittedBy    string         `gorm:"type:varchar(100)" json:"submitted_by"`
	SubmittedAt    time.Time      `gorm:"not null" json:"submitted_at"`
	VerifiedBy     *string        `gorm:"type:varchar(100)" json:"verified_by,omitempty"`
	VerifiedAt     *time.Time     `json:"verified_at,omitempty"`
	RejectionNote  *string        `gorm:"type:varchar(500)" json:"rejection_note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
