package workflow

import (
	"errors"
	"fmt"

	trip_model "pod-tracker/models/trip"
)

var (
	// ErrIssueOpen blocks forward transitions while an issue is unresolved.
	ErrIssueOpen = errors.New("trip has an open issue; resolve it before moving forward")

	// ErrNotAtHeadquarters blocks collection hand-off until the runner
	// confirms being back at headquarters.
	ErrNotAtHeadquarters = errors.New("runner must confirm headquarters hand-off")
)

// InvalidTransitionError reports a status move the workflow does not allow.
type InvalidTransitionError struct {
	From trip_model.TripStatus
	To   trip_model.TripStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from '%s' to '%s'", e.From, e.To)
}

// MissingFieldError reports a precondition field absent from the request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required for this transition", e.Field)
}
