package filter

import (
	"strings"

	trip_model "pod-tracker/models/trip"
)

// Unassigned is the sentinel selecting trips with no runner or owner set.
const Unassigned = "Unassigned"

// View types splitting the board on runner assignment.
const (
	ViewRunnerAssigned = "runner_assigned"
	ViewNonRunner      = "non_runner"
)

// Aging bucket values accepted by the aging filter.
const (
	Aging0To1  = "0-1"
	Aging2To3  = "2-3"
	Aging4To7  = "4-7"
	Aging7Plus = "7+"
)

// Criteria is the full set of filters a view can apply. Zero values mean
// "no constraint"; all set filters combine with AND, while the search
// term matches any of its candidate fields.
type Criteria struct {
	Search string
	Tab    string
	View   string

	TripID          string
	Origin          string
	Destination     string
	Vehicle         string
	Runner          string
	SecondaryRunner string
	Priority        string
	Status          string
	Owner           string
	DNode           string
	SlotStatus      string
	Supplier        string
	Aging           string

	HasIssues         bool
	HasRunnerRemarks  bool
	RunnerRemarksType string

	// HideDelivered trims finished work from the runner's board.
	HideDelivered bool
}

// Apply returns the trips matching the criteria, preserving input order.
// It never mutates the input slice and is safe to run repeatedly.
func Apply(trips []trip_model.Trip, c Criteria) []trip_model.Trip {
	out := make([]trip_model.Trip, 0, len(trips))
	for i := range trips {
		if Matches(&trips[i], c) {
			out = append(out, trips[i])
		}
	}
	return out
}

// Matches evaluates a single trip against the criteria.
func Matches(t *trip_model.Trip, c Criteria) bool {
	if c.HideDelivered && t.Status == trip_model.StatusDelivered {
		return false
	}
	if c.View == ViewRunnerAssigned && t.IsUnassigned() {
		return false
	}
	if c.View == ViewNonRunner && !t.IsUnassigned() {
		return false
	}

	if c.Tab != "" && c.Tab != "all" && string(t.Status) != c.Tab {
		return false
	}

	if !matchesSearch(t, c.Search) {
		return false
	}

	if c.TripID != "" && !containsFold(t.ID, c.TripID) {
		return false
	}
	if c.SlotStatus != "" && string(t.SlotStatus) != c.SlotStatus {
		return false
	}
	if c.Supplier != "" && !containsFold(t.SupplyPOCName, c.Supplier) {
		return false
	}
	if c.Origin != "" && t.Origin != c.Origin {
		return false
	}
	if c.Destination != "" && t.Destination != c.Destination {
		return false
	}
	if c.Vehicle != "" && !containsFold(t.VehicleNo, c.Vehicle) {
		return false
	}
	if !matchesAssignable(t.Runner, c.Runner) {
		return false
	}
	if !matchesAssignable(t.SecondaryRunner, c.SecondaryRunner) {
		return false
	}
	if c.Priority != "" && string(t.Priority) != c.Priority {
		return false
	}
	if c.Status != "" && string(t.Status) != c.Status {
		return false
	}
	if !matchesAssignable(t.Owner, c.Owner) {
		return false
	}
	if c.DNode != "" && t.DNode != c.DNode {
		return false
	}
	if c.HasIssues && !t.HasOpenIssue() {
		return false
	}
	if c.HasRunnerRemarks && len(t.RunnerRemarks) == 0 {
		return false
	}
	if c.RunnerRemarksType != "" && !hasRemarkOfType(t, c.RunnerRemarksType) {
		return false
	}
	if !matchesAging(t.Aging, c.Aging) {
		return false
	}

	return true
}

// matchesSearch checks the free-text term against every searchable field.
func matchesSearch(t *trip_model.Trip, term string) bool {
	if term == "" {
		return true
	}
	if containsFold(t.ID, term) ||
		containsFold(t.VehicleNo, term) ||
		containsFold(t.FOName, term) ||
		containsFold(t.Route, term) ||
		containsFold(t.SupplyPOCName, term) {
		return true
	}
	return t.Owner != nil && containsFold(*t.Owner, term)
}

// matchesAssignable handles the Unassigned sentinel for runner and owner
// filters; any other value requires an exact match.
func matchesAssignable(field *string, want string) bool {
	if want == "" {
		return true
	}
	if want == Unassigned {
		return field == nil || *field == ""
	}
	return field != nil && *field == want
}

func matchesAging(aging int, bucket string) bool {
	switch bucket {
	case "":
		return true
	case Aging0To1:
		return aging <= 1
	case Aging2To3:
		return aging >= 2 && aging <= 3
	case Aging4To7:
		return aging >= 4 && aging <= 7
	case Aging7Plus:
		return aging > 7
	default:
		return true
	}
}

func hasRemarkOfType(t *trip_model.Trip, remarkType string) bool {
	for i := range t.RunnerRemarks {
		if t.RunnerRemarks[i].Type == remarkType {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
