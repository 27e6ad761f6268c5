package workflow

import (
	"errors"
	"testing"
	"time"

	trip_model "pod-tracker/models/trip"
)

func TestCanTransitionForwardChain(t *testing.T) {
	steps := []struct {
		from trip_model.TripStatus
		to   trip_model.TripStatus
	}{
		{trip_model.StatusVehicleUnloaded, trip_model.StatusAssigned},
		{trip_model.StatusAssigned, trip_model.StatusInProgress},
		{trip_model.StatusInProgress, trip_model.StatusPODCollected},
		{trip_model.StatusPODCollected, trip_model.StatusCouriered},
		{trip_model.StatusCouriered, trip_model.StatusDelivered},
		{trip_model.StatusFOCourier, trip_model.StatusDelivered},
	}

	for _, s := range steps {
		if !CanTransition(s.from, s.to) {
			t.Fatalf("expected transition %s -> %s to be allowed", s.from, s.to)
		}
	}
}

func TestCanTransitionRejectsSkipsAndBackward(t *testing.T) {
	cases := []struct {
		from trip_model.TripStatus
		to   trip_model.TripStatus
	}{
		{trip_model.StatusVehicleUnloaded, trip_model.StatusInProgress},
		{trip_model.StatusAssigned, trip_model.StatusCouriered},
		{trip_model.StatusCouriered, trip_model.StatusPODCollected},
		{trip_model.StatusDelivered, trip_model.StatusCouriered},
		{trip_model.StatusDelivered, trip_model.StatusVehicleUnloaded},
		{trip_model.StatusInProgress, trip_model.StatusFOCourier},
	}

	for _, c := range cases {
		if CanTransition(c.from, c.to) {
			t.Fatalf("expected transition %s -> %s to be rejected", c.from, c.to)
		}
	}
}

func TestValidateRejectsInvalidTarget(t *testing.T) {
	tr := &trip_model.Trip{ID: "TRP-1001", Status: trip_model.StatusAssigned}

	err := Validate(tr, trip_model.TripStatus("teleported"), TransitionInput{})
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestValidateBlocksOnOpenIssue(t *testing.T) {
	tr := &trip_model.Trip{
		ID:     "TRP-1002",
		Status: trip_model.StatusAssigned,
		Issue: &trip_model.Issue{
			Type:        trip_model.IssueFONotResponding,
			Description: "no answer for two days",
			ReportedAt:  time.Now(),
			Resolved:    false,
		},
	}

	if err := Validate(tr, trip_model.StatusInProgress, TransitionInput{}); !errors.Is(err, ErrIssueOpen) {
		t.Fatalf("expected ErrIssueOpen, got %v", err)
	}

	tr.Issue.Resolved = true
	if err := Validate(tr, trip_model.StatusInProgress, TransitionInput{}); err != nil {
		t.Fatalf("resolved issue should not block: %v", err)
	}
}

func TestValidateRequiresRunnerForAssignment(t *testing.T) {
	tr := &trip_model.Trip{ID: "TRP-1008", Status: trip_model.StatusVehicleUnloaded}

	err := Validate(tr, trip_model.StatusAssigned, TransitionInput{})
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "runner" {
		t.Fatalf("expected missing runner, got %v", err)
	}

	runner := "Ravi Kumar"
	tr.Runner = &runner
	if err := Validate(tr, trip_model.StatusAssigned, TransitionInput{}); err != nil {
		t.Fatalf("assignment with a runner should pass: %v", err)
	}
}

func TestValidateRequiresImagesForCollection(t *testing.T) {
	tr := &trip_model.Trip{ID: "TRP-1003", Status: trip_model.StatusInProgress}

	err := Validate(tr, trip_model.StatusPODCollected, TransitionInput{})
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "pod_images" {
		t.Fatalf("expected missing pod_images, got %v", err)
	}

	tr.PODImages = trip_model.StringSlice{"pod_front.jpg"}
	if err := Validate(tr, trip_model.StatusPODCollected, TransitionInput{}); err != nil {
		t.Fatalf("collection with an image should pass: %v", err)
	}
}

func TestValidateHeadquartersGate(t *testing.T) {
	tr := &trip_model.Trip{
		ID:        "TRP-1004",
		Status:    trip_model.StatusPODCollected,
		PODImages: trip_model.StringSlice{"pod_front.jpg"},
	}

	in := TransitionInput{
		CourierPartner:      "BlueDart",
		AWBNumber:           "AWB-2210",
		CollectedFrom:       "FO desk",
		RequireHeadquarters: true,
	}
	if err := Validate(tr, trip_model.StatusCouriered, in); !errors.Is(err, ErrNotAtHeadquarters) {
		t.Fatalf("expected ErrNotAtHeadquarters, got %v", err)
	}

	in.AtHeadquarters = true
	if err := Validate(tr, trip_model.StatusCouriered, in); err != nil {
		t.Fatalf("confirmed hand-off should pass: %v", err)
	}
}

func TestValidateRequiresCourierDetails(t *testing.T) {
	tr := &trip_model.Trip{ID: "TRP-1005", Status: trip_model.StatusPODCollected}

	err := Validate(tr, trip_model.StatusCouriered, TransitionInput{})
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "courier_partner" {
		t.Fatalf("expected missing courier_partner, got %v", err)
	}

	err = Validate(tr, trip_model.StatusCouriered, TransitionInput{CourierPartner: "BlueDart"})
	if !errors.As(err, &mfe) || mfe.Field != "awb_number" {
		t.Fatalf("expected missing awb_number, got %v", err)
	}

	err = Validate(tr, trip_model.StatusCouriered, TransitionInput{CourierPartner: "BlueDart", AWBNumber: "AWB-9911"})
	if !errors.As(err, &mfe) || mfe.Field != "collected_from" {
		t.Fatalf("expected missing collected_from, got %v", err)
	}

	in := TransitionInput{CourierPartner: "BlueDart", AWBNumber: "AWB-9911", CollectedFrom: "FO desk"}
	if err := Validate(tr, trip_model.StatusCouriered, in); err != nil {
		t.Fatalf("courier details present should pass: %v", err)
	}
}

func TestValidateAcceptsDetailsAlreadyOnTrip(t *testing.T) {
	partner := "Delhivery"
	awb := "AWB-4410"
	collected := "FO desk"
	tr := &trip_model.Trip{
		ID:             "TRP-1006",
		Status:         trip_model.StatusPODCollected,
		CourierPartner: &partner,
		AWBNumber:      &awb,
		CollectedFrom:  &collected,
	}

	if err := Validate(tr, trip_model.StatusCouriered, TransitionInput{}); err != nil {
		t.Fatalf("details already stored should satisfy the guard: %v", err)
	}
}

func TestDeliveredIsTerminal(t *testing.T) {
	if got := AllowTransition[trip_model.StatusDelivered]; len(got) != 0 {
		t.Fatalf("delivered should have no forward transitions, got %v", got)
	}
	if !trip_model.StatusDelivered.IsTerminal() {
		t.Fatalf("delivered should be terminal")
	}
}
