package workflow

import (
	"fmt"
	"time"

	"pod-tracker/logger"
	audit_model "pod-tracker/models/podaudit"
	trip_model "pod-tracker/models/trip"

	"gorm.io/gorm"
)

// AllowTransition lists every forward move the trip workflow permits.
// Anything not listed must go through an explicit override.
var AllowTransition = map[trip_model.TripStatus][]trip_model.TripStatus{
	trip_model.StatusVehicleUnloaded: {trip_model.StatusAssigned},
	trip_model.StatusAssigned:        {trip_model.StatusInProgress},
	trip_model.StatusInProgress:      {trip_model.StatusPODCollected},
	trip_model.StatusPODCollected:    {trip_model.StatusCouriered},
	trip_model.StatusCouriered:       {trip_model.StatusDelivered},
	trip_model.StatusFOCourier:       {trip_model.StatusDelivered},
	trip_model.StatusDelivered:       {},
}

// CanTransition reports whether the move is an allowed forward step.
func CanTransition(from, to trip_model.TripStatus) bool {
	for _, allowed := range AllowTransition[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionInput carries the caller-supplied facts a guard may need.
type TransitionInput struct {
	CourierPartner  string
	AWBNumber       string
	CollectedFrom   string
	CourierComments string
	AtHeadquarters  bool

	// RequireHeadquarters enables the runner hand-off gate on
	// pod_collected -> couriered.
	RequireHeadquarters bool
}

// Validate checks every guard for moving the trip to the target status.
// It reads only the trip and the input; callers decide what to do with
// the returned error.
func Validate(t *trip_model.Trip, to trip_model.TripStatus, in TransitionInput) error {
	if !to.IsValid() {
		return &InvalidTransitionError{From: t.Status, To: to}
	}
	if !CanTransition(t.Status, to) {
		return &InvalidTransitionError{From: t.Status, To: to}
	}
	if t.HasOpenIssue() {
		return ErrIssueOpen
	}

	switch to {
	case trip_model.StatusAssigned:
		if t.IsUnassigned() {
			return &MissingFieldError{Field: "runner"}
		}
	case trip_model.StatusPODCollected:
		if len(t.PODImages) == 0 {
			return &MissingFieldError{Field: "pod_images"}
		}
	case trip_model.StatusCouriered:
		if in.CourierPartner == "" && (t.CourierPartner == nil || *t.CourierPartner == "") {
			return &MissingFieldError{Field: "courier_partner"}
		}
		if in.AWBNumber == "" && (t.AWBNumber == nil || *t.AWBNumber == "") {
			return &MissingFieldError{Field: "awb_number"}
		}
		if in.CollectedFrom == "" && (t.CollectedFrom == nil || *t.CollectedFrom == "") {
			return &MissingFieldError{Field: "collected_from"}
		}
		if in.RequireHeadquarters && !in.AtHeadquarters && !t.Headquarters {
			return ErrNotAtHeadquarters
		}
	}

	return nil
}

// Actor identifies who performed a workflow action, taken from the session.
type Actor struct {
	Uuid string
	Name string
}

// Engine applies validated transitions against the database.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Advance moves a trip one forward step, stamping the timestamps the
// target status owns and appending a history event. The whole move runs
// in a single transaction.
func (e *Engine) Advance(tripID string, to trip_model.TripStatus, in TransitionInput, actor Actor) (*trip_model.Trip, error) {
	var updated trip_model.Trip

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.Preload("Issue").First(&t, "id = ?", tripID).Error; err != nil {
			return err
		}

		if err := Validate(&t, to, in); err != nil {
			return err
		}

		from := t.Status
		now := time.Now()

		updates := map[string]interface{}{"status": to}
		switch to {
		case trip_model.StatusCouriered:
			if in.CourierPartner != "" {
				updates["courier_partner"] = in.CourierPartner
			}
			if in.AWBNumber != "" {
				updates["awb_number"] = in.AWBNumber
			}
			if in.CollectedFrom != "" {
				updates["collected_from"] = in.CollectedFrom
			}
			if in.CourierComments != "" {
				updates["courier_comments"] = in.CourierComments
			}
			if in.AtHeadquarters {
				updates["headquarters"] = true
			}
			// Courier date defaults to the moment of hand-off.
			if t.CourierDate == nil {
				updates["courier_date"] = now
			}
		case trip_model.StatusDelivered:
			updates["delivery_date"] = now
		}

		if err := tx.Model(&t).Updates(updates).Error; err != nil {
			return err
		}

		event := trip_model.TripStatusEvent{
			TripID:     t.ID,
			EventType:  trip_model.EventTransition,
			FromStatus: from,
			ToStatus:   to,
			ActorUuid:  actor.Uuid,
			ActorName:  actor.Name,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if to == trip_model.StatusDelivered {
			if err := enqueueAudit(tx, &t); err != nil {
				return err
			}
		}

		if err := tx.Preload("Issue").Preload("RunnerRemarks").Preload("OwnerRemarks").First(&updated, "id = ?", tripID).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Trip %s moved to %s by %s", tripID, to, actor.Name))
	return &updated, nil
}

// Override sets an arbitrary valid status, bypassing forward guards.
// It is a separately authorized correction and always records the reason.
func (e *Engine) Override(tripID string, to trip_model.TripStatus, reason string, actor Actor) (*trip_model.Trip, error) {
	if !to.IsValid() {
		return nil, &InvalidTransitionError{To: to}
	}

	var updated trip_model.Trip

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.First(&t, "id = ?", tripID).Error; err != nil {
			return err
		}

		from := t.Status

		updates := map[string]interface{}{"status": to}
		if to == trip_model.StatusDelivered && t.DeliveryDate == nil {
			updates["delivery_date"] = time.Now()
		}

		if err := tx.Model(&t).Updates(updates).Error; err != nil {
			return err
		}

		event := trip_model.TripStatusEvent{
			TripID:     t.ID,
			EventType:  trip_model.EventOverride,
			FromStatus: from,
			ToStatus:   to,
			ActorUuid:  actor.Uuid,
			ActorName:  actor.Name,
			Note:       reason,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if to == trip_model.StatusDelivered {
			if err := enqueueAudit(tx, &t); err != nil {
				return err
			}
		}

		if err := tx.Preload("Issue").Preload("RunnerRemarks").Preload("OwnerRemarks").First(&updated, "id = ?", tripID).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Warning(fmt.Sprintf("Trip %s status overridden to %s by %s: %s", tripID, to, actor.Name, reason))
	return &updated, nil
}

// enqueueAudit files a delivered trip's document bundle for review.
// Each trip gets at most one audit row.
func enqueueAudit(tx *gorm.DB, t *trip_model.Trip) error {
	var existing int64
	if err := tx.Model(&audit_model.PODAudit{}).Where("trip_id = ?", t.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	audit := audit_model.PODAudit{
		TripID:    t.ID,
		VehicleNo: t.VehicleNo,
		Route:     t.Route,
		Supplier:  t.Supplier,
		Status:    audit_model.StatusPendingAudit,
		QueuedAt:  time.Now(),
	}
	for _, img := range t.PODImages {
		audit.Documents = append(audit.Documents, audit_model.AuditDocument{
			FileName: img,
			FileURL:  "/uploads/" + img,
		})
	}

	if err := tx.Create(&audit).Error; err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Trip %s queued for POD audit", t.ID))
	return nil
}
