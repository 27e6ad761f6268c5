package tripstore

import (
	"errors"
	"testing"
	"time"

	trip_model "pod-tracker/models/trip"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&trip_model.Trip{},
		&trip_model.TripStatusEvent{},
		&trip_model.Issue{},
		&trip_model.IssueUpdate{},
		&trip_model.RunnerRemark{},
		&trip_model.OwnerRemark{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedTrip(t *testing.T, db *gorm.DB, id string, status trip_model.TripStatus) {
	t.Helper()
	tr := trip_model.Trip{
		ID:         id,
		VehicleNo:  "KA01AB1234",
		Status:     status,
		Priority:   trip_model.PriorityMedium,
		UnloadedAt: time.Now().Add(-48 * time.Hour),
	}
	if err := db.Create(&tr).Error; err != nil {
		t.Fatalf("seed trip %s: %v", id, err)
	}
}

func TestAssignRunnerMovesUnloadedToAssigned(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	seedTrip(t, db, "TRP-2001", trip_model.StatusVehicleUnloaded)

	updated, err := store.AssignRunner("TRP-2001", "Lokesh", "RUN-7", "", "uuid-ct", "Ops Admin")
	if err != nil {
		t.Fatalf("assign runner: %v", err)
	}
	if updated.Status != trip_model.StatusAssigned {
		t.Fatalf("expected status assigned, got %s", updated.Status)
	}
	if updated.Runner == nil || *updated.Runner != "Lokesh" {
		t.Fatalf("runner not stored: %v", updated.Runner)
	}

	var event trip_model.TripStatusEvent
	if err := db.Last(&event, "trip_id = ?", "TRP-2001").Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if event.EventType != trip_model.EventRunnerAssigned || event.ToStatus != trip_model.StatusAssigned {
		t.Fatalf("unexpected event %s -> %s (%s)", event.FromStatus, event.ToStatus, event.EventType)
	}
}

func TestClearRunnerResetsAssignedToUnloaded(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	seedTrip(t, db, "TRP-2002", trip_model.StatusVehicleUnloaded)

	if _, err := store.AssignRunner("TRP-2002", "Lokesh", "RUN-7", "Arjun", "uuid-ct", "Ops Admin"); err != nil {
		t.Fatalf("assign runner: %v", err)
	}

	updated, err := store.AssignRunner("TRP-2002", "", "", "", "uuid-ct", "Ops Admin")
	if err != nil {
		t.Fatalf("clear runner: %v", err)
	}
	if updated.Status != trip_model.StatusVehicleUnloaded {
		t.Fatalf("expected status back to vehicle_unloaded, got %s", updated.Status)
	}
	if updated.Runner != nil || updated.RunnerID != nil || updated.SecondaryRunner != nil {
		t.Fatalf("runner fields not cleared: %v %v %v", updated.Runner, updated.RunnerID, updated.SecondaryRunner)
	}

	var event trip_model.TripStatusEvent
	if err := db.Last(&event, "trip_id = ?", "TRP-2002").Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if event.EventType != trip_model.EventRunnerCleared {
		t.Fatalf("expected runner_cleared event, got %s", event.EventType)
	}
}

func TestClearRunnerLeavesLaterStatusAlone(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	seedTrip(t, db, "TRP-2003", trip_model.StatusInProgress)

	if _, err := store.AssignRunner("TRP-2003", "Lokesh", "", "", "uuid-ct", "Ops Admin"); err != nil {
		t.Fatalf("assign runner: %v", err)
	}

	updated, err := store.AssignRunner("TRP-2003", "", "", "", "uuid-ct", "Ops Admin")
	if err != nil {
		t.Fatalf("clear runner: %v", err)
	}
	if updated.Status != trip_model.StatusInProgress {
		t.Fatalf("clearing a runner mid-flow must not touch status, got %s", updated.Status)
	}
}

func TestSetSlotStatusNeverTouchesWorkflowStatus(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	seedTrip(t, db, "TRP-2004", trip_model.StatusCouriered)

	updated, err := store.SetSlotStatus("TRP-2004", trip_model.SlotRecovered)
	if err != nil {
		t.Fatalf("set slot status: %v", err)
	}
	if updated.SlotStatus != trip_model.SlotRecovered {
		t.Fatalf("slot status not stored, got %s", updated.SlotStatus)
	}
	if updated.Status != trip_model.StatusCouriered {
		t.Fatalf("slot status change moved workflow status to %s", updated.Status)
	}
}

func TestAddPODImagesRejectsNonImages(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)
	seedTrip(t, db, "TRP-2005", trip_model.StatusInProgress)

	if _, err := store.AddPODImages("TRP-2005", []string{"pod.pdf"}); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}

	updated, err := store.AddPODImages("TRP-2005", []string{"pod_front.jpg", "pod_front.jpg", "pod_back.png"})
	if err != nil {
		t.Fatalf("add images: %v", err)
	}
	if len(updated.PODImages) != 2 {
		t.Fatalf("expected 2 deduplicated images, got %v", updated.PODImages)
	}
}

func TestGetUnknownTripReturnsNotFound(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	if _, err := store.Get("TRP-9999"); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}
