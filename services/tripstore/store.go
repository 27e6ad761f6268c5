package tripstore

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"pod-tracker/logger"
	trip_model "pod-tracker/models/trip"

	"gorm.io/gorm"
)

// ErrTripNotFound is returned when no trip carries the requested id.
var ErrTripNotFound = errors.New("trip not found")

// ErrUnsupportedImage is returned for POD attachments that are not images.
var ErrUnsupportedImage = errors.New("only image files can be attached as POD")

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// Store is the single mutation boundary for trip records. Status moves
// go through the workflow engine; everything else goes through here.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns all trips with their sub-records, newest unloading first
// with id as tie-breaker so the order is stable between calls.
func (s *Store) List() ([]trip_model.Trip, error) {
	var trips []trip_model.Trip
	err := s.db.
		Preload("Issue").
		Preload("Issue.Updates").
		Preload("RunnerRemarks").
		Preload("OwnerRemarks").
		Order("unloaded_at DESC, id ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

// Get returns one trip with its sub-records.
func (s *Store) Get(id string) (*trip_model.Trip, error) {
	var t trip_model.Trip
	err := s.db.
		Preload("Issue").
		Preload("Issue.Updates").
		Preload("RunnerRemarks").
		Preload("OwnerRemarks").
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

// AssignRunner sets or clears the runner on a trip. Assigning on a
// vehicle_unloaded trip moves it to assigned; clearing the runner on an
// assigned trip moves it back. Both the field change and the status
// side effect land in one transaction with a history event.
func (s *Store) AssignRunner(id, runner, runnerID, secondaryRunner, actorUuid, actorName string) (*trip_model.Trip, error) {
	var updated trip_model.Trip

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		eventType := trip_model.EventRunnerAssigned
		from := t.Status
		to := t.Status

		if runner == "" {
			updates["runner"] = nil
			updates["runner_id"] = nil
			updates["secondary_runner"] = nil
			eventType = trip_model.EventRunnerCleared
			if t.Status == trip_model.StatusAssigned {
				to = trip_model.StatusVehicleUnloaded
			}
		} else {
			updates["runner"] = runner
			if runnerID != "" {
				updates["runner_id"] = runnerID
			}
			if secondaryRunner != "" {
				updates["secondary_runner"] = secondaryRunner
			}
			if t.Status == trip_model.StatusVehicleUnloaded {
				to = trip_model.StatusAssigned
			}
		}

		if to != from {
			updates["status"] = to
		}

		if err := tx.Model(&t).Updates(updates).Error; err != nil {
			return err
		}

		event := trip_model.TripStatusEvent{
			TripID:     t.ID,
			EventType:  eventType,
			FromStatus: from,
			ToStatus:   to,
			ActorUuid:  actorUuid,
			ActorName:  actorName,
			Note:       runner,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		return tx.Preload("Issue").Preload("RunnerRemarks").Preload("OwnerRemarks").First(&updated, "id = ?", id).Error
	})

	if err != nil {
		return nil, err
	}

	if runner == "" {
		logger.Info(fmt.Sprintf("Runner cleared from trip %s by %s", id, actorName))
	} else {
		logger.Success(fmt.Sprintf("Runner %s assigned to trip %s by %s", runner, id, actorName))
	}
	return &updated, nil
}

// AssignOwner sets or clears the owner. Ownership never touches status.
func (s *Store) AssignOwner(id, owner string) (*trip_model.Trip, error) {
	var value interface{}
	if owner != "" {
		value = owner
	}
	return s.update(id, map[string]interface{}{"owner": value})
}

// SetSlotStatus updates the document recovery classification. The trip
// workflow status is deliberately left untouched.
func (s *Store) SetSlotStatus(id string, slot trip_model.SlotStatus) (*trip_model.Trip, error) {
	return s.update(id, map[string]interface{}{"slot_status": slot})
}

// SetPriority updates the runner attention ranking.
func (s *Store) SetPriority(id string, priority trip_model.Priority) (*trip_model.Trip, error) {
	return s.update(id, map[string]interface{}{"priority": priority})
}

// SetSupplierAddress corrects the pickup address shown to runners.
func (s *Store) SetSupplierAddress(id, address string) (*trip_model.Trip, error) {
	return s.update(id, map[string]interface{}{"supplier_address": address})
}

// AddPODImages appends image references to the trip. Non-image file
// names are rejected before anything is written.
func (s *Store) AddPODImages(id string, images []string) (*trip_model.Trip, error) {
	for _, img := range images {
		ext := strings.ToLower(path.Ext(img))
		if !imageExtensions[ext] {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, img)
		}
	}

	var updated trip_model.Trip
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		merged := append(trip_model.StringSlice{}, t.PODImages...)
		for _, img := range images {
			if !containsImage(merged, img) {
				merged = append(merged, img)
			}
		}

		if err := tx.Model(&t).Update("pod_images", merged).Error; err != nil {
			return err
		}
		return tx.Preload("Issue").Preload("RunnerRemarks").Preload("OwnerRemarks").First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemovePODImage detaches one image reference from the trip.
func (s *Store) RemovePODImage(id, image string) (*trip_model.Trip, error) {
	var updated trip_model.Trip
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		remaining := trip_model.StringSlice{}
		for _, img := range t.PODImages {
			if img != image {
				remaining = append(remaining, img)
			}
		}

		if err := tx.Model(&t).Update("pod_images", remaining).Error; err != nil {
			return err
		}
		return tx.Preload("Issue").Preload("RunnerRemarks").Preload("OwnerRemarks").First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// update applies a field patch and reloads the trip with sub-records.
func (s *Store) update(id string, updates map[string]interface{}) (*trip_model.Trip, error) {
	var updated trip_model.Trip
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t trip_model.Trip
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}
		if err := tx.Model(&t).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Issue").Preload("RunnerRemarks").Preload("OwnerRemarks").First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func containsImage(images trip_model.StringSlice, image string) bool {
	for _, img := range images {
		if img == image {
			return true
		}
	}
	return false
}
