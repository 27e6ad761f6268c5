package filter

import (
	"testing"
	"time"

	trip_model "pod-tracker/models/trip"
)

func strptr(s string) *string { return &s }

func sampleTrips() []trip_model.Trip {
	return []trip_model.Trip{
		{
			ID:            "TRP-1001",
			VehicleNo:     "KA01AB1234",
			Status:        trip_model.StatusVehicleUnloaded,
			SlotStatus:    trip_model.SlotOnsite,
			Priority:      trip_model.PriorityHigh,
			Origin:        "Bangalore",
			Destination:   "Chennai",
			Route:         "Bangalore - Chennai",
			FOName:        "Ramesh Transport",
			SupplyPOCName: "Suresh Kumar",
			Aging:         1,
		},
		{
			ID:            "TRP-1002",
			VehicleNo:     "TN09XY7777",
			Status:        trip_model.StatusInProgress,
			SlotStatus:    trip_model.SlotIntransit,
			Priority:      trip_model.PriorityMedium,
			Origin:        "Chennai",
			Destination:   "Hyderabad",
			Route:         "Chennai - Hyderabad",
			FOName:        "Venkat Logistics",
			SupplyPOCName: "Anil Reddy",
			Runner:        strptr("Lokesh"),
			Owner:         strptr("Arjun"),
			Aging:         3,
			Issue: &trip_model.Issue{
				Type:        trip_model.IssueFONotResponding,
				Description: "no answer since morning",
				ReportedAt:  time.Now(),
			},
			RunnerRemarks: []trip_model.RunnerRemark{
				{Type: trip_model.RemarkGeneral, Text: "FO will share address"},
			},
		},
		{
			ID:            "TRP-1003",
			VehicleNo:     "MH12QQ0001",
			Status:        trip_model.StatusDelivered,
			SlotStatus:    trip_model.SlotRecovered,
			Priority:      trip_model.PriorityLow,
			Origin:        "Pune",
			Destination:   "Mumbai",
			Route:         "Pune - Mumbai",
			FOName:        "Shakti Carriers",
			SupplyPOCName: "Prakash Joshi",
			Runner:        strptr("Lokesh"),
			Aging:         9,
			Issue: &trip_model.Issue{
				Type:        trip_model.IssueDocumentMissing,
				Description: "one LR copy missing",
				ReportedAt:  time.Now(),
				Resolved:    true,
			},
			RunnerRemarks: []trip_model.RunnerRemark{
				{Type: trip_model.RemarkFO, Text: "FO couriered directly"},
			},
		},
	}
}

func ids(trips []trip_model.Trip) []string {
	out := make([]string, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.ID)
	}
	return out
}

func TestApplyNoCriteriaKeepsOrder(t *testing.T) {
	trips := sampleTrips()
	got := Apply(trips, Criteria{})
	if len(got) != 3 {
		t.Fatalf("expected all 3 trips, got %d", len(got))
	}
	for i, id := range []string{"TRP-1001", "TRP-1002", "TRP-1003"} {
		if got[i].ID != id {
			t.Fatalf("order changed: position %d is %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSearchMatchesAnyField(t *testing.T) {
	trips := sampleTrips()

	cases := []struct {
		term string
		want string
	}{
		{"trp-1001", "TRP-1001"},  // id, case-insensitive
		{"tn09", "TRP-1002"},      // vehicle
		{"shakti", "TRP-1003"},    // fo name
		{"pune - mum", "TRP-1003"}, // route
		{"anil", "TRP-1002"},      // supply poc
		{"arjun", "TRP-1002"},     // owner
	}

	for _, c := range cases {
		got := Apply(trips, Criteria{Search: c.term})
		if len(got) != 1 || got[0].ID != c.want {
			t.Fatalf("search %q: got %v, want [%s]", c.term, ids(got), c.want)
		}
	}
}

func TestSearchNoMatch(t *testing.T) {
	got := Apply(sampleTrips(), Criteria{Search: "zzz-nothing"})
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestDiscreteFiltersCombineWithAnd(t *testing.T) {
	trips := sampleTrips()

	got := Apply(trips, Criteria{Runner: "Lokesh", Priority: string(trip_model.PriorityLow)})
	if len(got) != 1 || got[0].ID != "TRP-1003" {
		t.Fatalf("AND combination failed: got %v", ids(got))
	}

	got = Apply(trips, Criteria{Runner: "Lokesh", Origin: "Bangalore"})
	if len(got) != 0 {
		t.Fatalf("conflicting filters should match nothing, got %v", ids(got))
	}
}

func TestUnassignedSentinel(t *testing.T) {
	trips := sampleTrips()

	got := Apply(trips, Criteria{Runner: Unassigned})
	if len(got) != 1 || got[0].ID != "TRP-1001" {
		t.Fatalf("unassigned runner filter: got %v", ids(got))
	}

	got = Apply(trips, Criteria{Owner: Unassigned})
	if len(got) != 2 {
		t.Fatalf("unassigned owner filter: got %v", ids(got))
	}
}

func TestTabFilter(t *testing.T) {
	trips := sampleTrips()

	got := Apply(trips, Criteria{Tab: "all"})
	if len(got) != 3 {
		t.Fatalf("'all' tab should keep everything, got %v", ids(got))
	}

	got = Apply(trips, Criteria{Tab: string(trip_model.StatusInProgress)})
	if len(got) != 1 || got[0].ID != "TRP-1002" {
		t.Fatalf("in_progress tab: got %v", ids(got))
	}
}

func TestHideDeliveredTrimsFinishedWork(t *testing.T) {
	got := Apply(sampleTrips(), Criteria{HideDelivered: true})
	for _, tr := range got {
		if tr.Status == trip_model.StatusDelivered {
			t.Fatalf("runner board leaked delivered trip %s", tr.ID)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 active trips, got %v", ids(got))
	}
}

func TestViewSplitsOnRunnerAssignment(t *testing.T) {
	trips := sampleTrips()

	got := ids(Apply(trips, Criteria{View: ViewRunnerAssigned}))
	if len(got) != 2 || got[0] != "TRP-1002" || got[1] != "TRP-1003" {
		t.Fatalf("runner_assigned view: got %v", got)
	}

	got = ids(Apply(trips, Criteria{View: ViewNonRunner}))
	if len(got) != 1 || got[0] != "TRP-1001" {
		t.Fatalf("non_runner view: got %v", got)
	}
}

func TestAgingBuckets(t *testing.T) {
	trips := sampleTrips()

	cases := []struct {
		bucket string
		want   []string
	}{
		{Aging0To1, []string{"TRP-1001"}},
		{Aging2To3, []string{"TRP-1002"}},
		{Aging4To7, nil},
		{Aging7Plus, []string{"TRP-1003"}},
	}

	for _, c := range cases {
		got := ids(Apply(trips, Criteria{Aging: c.bucket}))
		if len(got) != len(c.want) {
			t.Fatalf("bucket %s: got %v, want %v", c.bucket, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("bucket %s: got %v, want %v", c.bucket, got, c.want)
			}
		}
	}
}

func TestIssueAndRemarkFilters(t *testing.T) {
	trips := sampleTrips()

	// TRP-1003's issue is resolved, so only the open one counts.
	got := Apply(trips, Criteria{HasIssues: true})
	if len(got) != 1 || got[0].ID != "TRP-1002" {
		t.Fatalf("hasIssues: got %v", ids(got))
	}

	got = Apply(trips, Criteria{HasRunnerRemarks: true})
	if len(got) != 2 {
		t.Fatalf("hasRunnerRemarks: got %v", ids(got))
	}

	got = Apply(trips, Criteria{RunnerRemarksType: trip_model.RemarkFO})
	if len(got) != 1 || got[0].ID != "TRP-1003" {
		t.Fatalf("runnerRemarksType fo: got %v", ids(got))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	trips := sampleTrips()
	c := Criteria{Runner: "Lokesh"}

	once := Apply(trips, c)
	twice := Apply(once, c)
	if len(once) != len(twice) {
		t.Fatalf("second application changed the result: %v vs %v", ids(once), ids(twice))
	}
}
