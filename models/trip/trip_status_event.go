package trip

import "time"

// Event types recorded in the trip history ledger.
const (
	EventTransition     = "transition"
	EventOverride       = "override"
	EventRunnerAssigned = "runner_assigned"
	EventRunnerCleared  = "runner_cleared"
)

// TripStatusEvent is an append-only history row. Rows are never updated
// or deleted; the current trip state is always derivable from the latest row.
type TripStatusEvent struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TripID    string     `gorm:"type:varchar(50);not null;index" json:"trip_id"`
	EventType string     `gorm:"type:varchar(30);not null" json:"event_type"`
	FromStatus TripStatus `gorm:"type:varchar(30)" json:"from_status"`
	ToStatus   TripStatus `gorm:"type:varchar(30)" json:"to_status"`
	ActorUuid  string     `gorm:"type:varchar(255)" json:"actor_uuid"`
	ActorName  string     `gorm:"type:varchar(100)" json:"actor_name"`
	Note       string     `gorm:"type:varchar(500)" json:"note"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}
