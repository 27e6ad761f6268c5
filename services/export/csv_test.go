package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	trip_model "pod-tracker/models/trip"
)

func strptr(s string) *string { return &s }

func TestTripsExportShape(t *testing.T) {
	trips := []trip_model.Trip{
		{
			ID:          "TRP-1001",
			VehicleNo:   "KA01AB1234",
			Status:      trip_model.StatusInProgress,
			SlotStatus:  trip_model.SlotIntransit,
			FOName:      "Ramesh Transport",
			Origin:      "Bangalore",
			Destination: "Chennai",
			Runner:      strptr("Lokesh"),
			RunnerRemarks: []trip_model.RunnerRemark{
				{Type: trip_model.RemarkGeneral, Text: "first visit done"},
				{Type: trip_model.RemarkGeneral, Text: "second visit planned"},
			},
		},
		{
			ID:        "TRP-1002",
			VehicleNo: "TN09XY7777",
			Status:    trip_model.StatusVehicleUnloaded,
			FOName:    "Venkat Logistics",
		},
	}

	out, err := Trips(trips)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "id" || records[0][9] != "remark_count" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "TRP-1001" || records[1][7] != "Lokesh" || records[1][9] != "2" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][6] != "Unassigned" || records[2][7] != "Unassigned" {
		t.Fatalf("empty owner and runner should export as Unassigned: %v", records[2])
	}
}

func TestTripsExportEscapesCommas(t *testing.T) {
	trips := []trip_model.Trip{
		{
			ID:        "TRP-1003",
			VehicleNo: "MH12QQ0001",
			Status:    trip_model.StatusCouriered,
			FOName:    `Sharma "Roadways", Pune`,
		},
	}

	out, err := Trips(trips)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("export with commas is not valid CSV: %v", err)
	}
	if records[1][3] != `Sharma "Roadways", Pune` {
		t.Fatalf("fo name mangled: %q", records[1][3])
	}
}

func TestTripsFileName(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	if got := TripsFileName("couriered", now); got != "trips_couriered_2025-03-14.csv" {
		t.Fatalf("unexpected file name: %s", got)
	}
	if got := TripsFileName("", now); got != "trips_all_2025-03-14.csv" {
		t.Fatalf("empty tab should fall back to all: %s", got)
	}
}
