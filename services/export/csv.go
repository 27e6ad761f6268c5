package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	foresponse_model "pod-tracker/models/foresponse"
	trip_model "pod-tracker/models/trip"
)

// tripHeader is the column order of the trip export.
var tripHeader = []string{
	"id", "vehicle", "status", "fo_name", "origin", "destination",
	"owner", "runner", "slot_status", "remark_count",
}

// Trips renders the given trips as CSV in input order. Fields are
// encoded properly, so commas and quotes in data stay intact.
func Trips(trips []trip_model.Trip) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(tripHeader); err != nil {
		return nil, err
	}

	for i := range trips {
		t := &trips[i]
		record := []string{
			t.ID,
			t.VehicleNo,
			t.Status.String(),
			t.FOName,
			t.Origin,
			t.Destination,
			orUnassigned(t.Owner),
			orUnassigned(t.Runner),
			t.SlotStatus.String(),
			fmt.Sprintf("%d", len(t.RunnerRemarks)),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TripsFileName builds the download name carrying the tab and date.
func TripsFileName(tab string, now time.Time) string {
	if tab == "" {
		tab = "all"
	}
	return fmt.Sprintf("trips_%s_%s.csv", tab, now.Format("2006-01-02"))
}

var foResponseHeader = []string{
	"trip_id", "vehicle", "fo_name", "courier_service", "docket_number",
	"status", "submitted_by", "submitted_at",
}

// FOResponses renders the verification queue as CSV.
func FOResponses(responses []foresponse_model.FOResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(foResponseHeader); err != nil {
		return nil, err
	}

	for i := range responses {
		r := &responses[i]
		record := []string{
			r.TripID,
			r.VehicleNo,
			r.FOName,
			r.CourierService,
			r.DocketNumber,
			r.Status.String(),
			r.SubmittedBy,
			r.SubmittedAt.Format("2006-01-02 15:04"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orUnassigned(s *string) string {
	if s == nil || *s == "" {
		return "Unassigned"
	}
	return *s
}
