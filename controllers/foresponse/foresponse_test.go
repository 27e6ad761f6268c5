package foresponse

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"pod-tracker/logger"
	foresponse_model "pod-tracker/models/foresponse"
	trip_model "pod-tracker/models/trip"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func setupVerifyApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
		&foresponse_model.FOResponse{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	app := fiber.New()
	controller := NewFOResponseController(db, logger.NewAsyncLogger(db))
	app.Post("/api/fo-responses/:id/verify", controller.Verify)
	return app, db
}

func seedClaim(t *testing.T, db *gorm.DB, tripID string, status trip_model.TripStatus) foresponse_model.FOResponse {
	t.Helper()

	tr := trip_model.Trip{
		ID:         tripID,
		VehicleNo:  "MH12QQ0001",
		Status:     status,
		Priority:   trip_model.PriorityMedium,
		UnloadedAt: time.Now().Add(-96 * time.Hour),
	}
	if err := db.Create(&tr).Error; err != nil {
		t.Fatalf("seed trip: %v", err)
	}

	response := foresponse_model.FOResponse{
		TripID:         tripID,
		VehicleNo:      tr.VehicleNo,
		FOName:         "Shakti Carriers",
		CourierService: "DTDC",
		DocketNumber:   "DOCK-7788",
		Remark:         "FO couriered directly",
		Status:         foresponse_model.StatusPendingVerification,
		SubmittedBy:    "Lokesh",
		SubmittedAt:    time.Now(),
	}
	if err := db.Create(&response).Error; err != nil {
		t.Fatalf("seed response: %v", err)
	}
	return response
}

func postVerify(t *testing.T, app *fiber.App, id string, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/fo-responses/"+id+"/verify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestVerifyMovesTripAndRecordsHistory(t *testing.T) {
	app, db := setupVerifyApp(t)
	claim := seedClaim(t, db, "TRP-4001", trip_model.StatusInProgress)

	resp := postVerify(t, app, claimID(claim), `{"status":"verified"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var tr trip_model.Trip
	if err := db.First(&tr, "id = ?", "TRP-4001").Error; err != nil {
		t.Fatalf("reload trip: %v", err)
	}
	if tr.Status != trip_model.StatusFOCourier {
		t.Fatalf("trip status %s, want fo_courier", tr.Status)
	}

	var event trip_model.TripStatusEvent
	if err := db.Last(&event, "trip_id = ?", "TRP-4001").Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if event.FromStatus != trip_model.StatusInProgress {
		t.Fatalf("event from_status %s, want the pre-verify status in_progress", event.FromStatus)
	}
	if event.ToStatus != trip_model.StatusFOCourier {
		t.Fatalf("event to_status %s, want fo_courier", event.ToStatus)
	}
}

func TestRejectRequiresNotesAndLeavesTripAlone(t *testing.T) {
	app, db := setupVerifyApp(t)
	claim := seedClaim(t, db, "TRP-4002", trip_model.StatusInProgress)

	resp := postVerify(t, app, claimID(claim), `{"status":"rejected"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rejection without notes should 400, got %d", resp.StatusCode)
	}

	resp = postVerify(t, app, claimID(claim), `{"status":"rejected","notes":"docket does not scan"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var decided foresponse_model.FOResponse
	if err := db.First(&decided, claim.ID).Error; err != nil {
		t.Fatalf("reload response: %v", err)
	}
	if decided.Status != foresponse_model.StatusRejected {
		t.Fatalf("response status %s, want rejected", decided.Status)
	}
	if decided.RejectionNote == nil || *decided.RejectionNote != "docket does not scan" {
		t.Fatalf("rejection note not stored: %v", decided.RejectionNote)
	}

	var tr trip_model.Trip
	if err := db.First(&tr, "id = ?", "TRP-4002").Error; err != nil {
		t.Fatalf("reload trip: %v", err)
	}
	if tr.Status != trip_model.StatusInProgress {
		t.Fatalf("rejection must leave the trip at in_progress, got %s", tr.Status)
	}
}

func TestVerifyDecidedClaimConflicts(t *testing.T) {
	app, db := setupVerifyApp(t)
	claim := seedClaim(t, db, "TRP-4003", trip_model.StatusInProgress)

	if resp := postVerify(t, app, claimID(claim), `{"status":"verified"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("first decision should pass, got %d", resp.StatusCode)
	}
	if resp := postVerify(t, app, claimID(claim), `{"status":"verified"}`); resp.StatusCode != http.StatusConflict {
		t.Fatalf("second decision should 409, got %d", resp.StatusCode)
	}
}

func claimID(r foresponse_model.FOResponse) string {
	return strconv.FormatUint(uint64(r.ID), 10)
}
