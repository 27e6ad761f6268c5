package trip

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Trip is the central record of the dashboard. Its primary key is the
// human-readable trip code (e.g. TRP-1024) carried over from the feed.
type Trip struct {
	ID         string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	VehicleNo  string     `gorm:"type:varchar(20);not null" json:"vehicle_no"`
	Status     TripStatus `gorm:"type:varchar(30);not null;default:'vehicle_unloaded'" json:"status"`
	SlotStatus SlotStatus `gorm:"type:varchar(30)" json:"slot_status"`
	Priority   Priority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`

	Origin      string `gorm:"type:varchar(100)" json:"origin"`
	Destination string `gorm:"type:varchar(100)" json:"destination"`
	Route       string `gorm:"type:varchar(200)" json:"route"`
	DNode       string `gorm:"type:varchar(100)" json:"d_node"`

	// Aging is days since unloading, refreshed on sync and at read time.
	Aging int `gorm:"not null;default:0" json:"aging"`

	FOName  string `gorm:"type:varchar(100)" json:"fo_name"`
	FOPhone string `gorm:"type:varchar(20)" json:"fo_phone"`

	SupplyPOCName  string `gorm:"type:varchar(100)" json:"supply_poc_name"`
	SupplyPOCPhone string `gorm:"type:varchar(20)" json:"supply_poc_phone"`
	DemandPOCName  string `gorm:"type:varchar(100)" json:"demand_poc_name"`
	DemandPOCPhone string `gorm:"type:varchar(20)" json:"demand_poc_phone"`

	DriverName  string `gorm:"type:varchar(100)" json:"driver_name"`
	DriverPhone string `gorm:"type:varchar(20)" json:"driver_phone"`

	Supplier        string `gorm:"type:varchar(100)" json:"supplier"`
	SupplierAddress string `gorm:"type:varchar(500)" json:"supplier_address"`

	Runner          *string `gorm:"type:varchar(100)" json:"runner,omitempty"`
	RunnerID        *string `gorm:"type:varchar(100)" json:"runner_id,omitempty"`
	SecondaryRunner *string `gorm:"type:varchar(100)" json:"secondary_runner,omitempty"`
	Owner           *string `gorm:"type:varchar(100)" json:"owner,omitempty"`

	CourierPartner  *string    `gorm:"type:varchar(100)" json:"courier_partner,omitempty"`
	AWBNumber       *string    `gorm:"type:varchar(100)" json:"awb_number,omitempty"`
	CourierDate     *time.Time `json:"courier_date,omitempty"`
	CollectedFrom   *string    `gorm:"type:varchar(100)" json:"collected_from,omitempty"`
	CourierComments *string    `gorm:"type:varchar(500)" json:"courier_comments,omitempty"`

	// Headquarters records the runner's confirmation of being at the
	// headquarters desk when handing the POD over for courier.
	Headquarters bool `gorm:"not null;default:false" json:"headquarters"`

	PODImages StringSlice `gorm:"type:json" json:"pod_images"`

	UnloadedAt time.Time  `gorm:"not null" json:"unloaded_at"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`

	Issue         *Issue        `gorm:"foreignKey:TripID;references:ID" json:"issue,omitempty"`
	RunnerRemarks []RunnerRemark `gorm:"foreignKey:TripID;references:ID" json:"runner_remarks,omitempty"`
	OwnerRemarks  []OwnerRemark  `gorm:"foreignKey:TripID;references:ID" json:"owner_remarks,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// HasOpenIssue reports whether an unresolved issue blocks forward transitions.
func (t *Trip) HasOpenIssue() bool {
	return t.Issue != nil && !t.Issue.Resolved
}

// IsUnassigned reports whether no runner currently holds the trip.
func (t *Trip) IsUnassigned() bool {
	return t.Runner == nil || *t.Runner == ""
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return errors.New("type assertion to []byte failed")
	}
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}
