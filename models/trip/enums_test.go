package trip

import "testing"

func TestTripStatusNextChain(t *testing.T) {
	cases := []struct {
		from TripStatus
		want TripStatus
	}{
		{StatusVehicleUnloaded, StatusAssigned},
		{StatusAssigned, StatusInProgress},
		{StatusInProgress, StatusPODCollected},
		{StatusPODCollected, StatusCouriered},
		{StatusCouriered, StatusDelivered},
		{StatusFOCourier, StatusDelivered},
		{StatusDelivered, ""},
	}

	for _, c := range cases {
		if got := c.from.Next(); got != c.want {
			t.Fatalf("Next(%s) = %s, want %s", c.from, got, c.want)
		}
	}
}

func TestTripStatusValidation(t *testing.T) {
	for _, s := range GetAllTripStatuses() {
		if !s.IsValid() {
			t.Fatalf("status %s should be valid", s)
		}
	}
	if TripStatus("waiting").IsValid() {
		t.Fatalf("unknown status should be invalid")
	}
}

func TestTripStatusLabels(t *testing.T) {
	cases := map[TripStatus]string{
		StatusVehicleUnloaded: "Vehicle Unloaded",
		StatusPODCollected:    "POD Collected",
		StatusFOCourier:       "FO Courier",
	}

	for status, want := range cases {
		if got := status.Label(); got != want {
			t.Fatalf("Label(%s) = %q, want %q", status, got, want)
		}
	}
}

func TestSlotStatusValidation(t *testing.T) {
	if !SlotOnsiteEPODPending.IsValid() {
		t.Fatalf("onsite_epod_pending should be valid")
	}
	if SlotStatus("misplaced").IsValid() {
		t.Fatalf("unknown slot status should be invalid")
	}
}

func TestHasOpenIssue(t *testing.T) {
	tr := &Trip{ID: "TRP-1"}
	if tr.HasOpenIssue() {
		t.Fatalf("trip without issue should not report open issue")
	}

	tr.Issue = &Issue{Resolved: false}
	if !tr.HasOpenIssue() {
		t.Fatalf("unresolved issue should count as open")
	}

	tr.Issue.Resolved = true
	if tr.HasOpenIssue() {
		t.Fatalf("resolved issue should not count as open")
	}
}
