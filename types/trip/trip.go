package trip

import (
	"fmt"

	trip_model "pod-tracker/models/trip"
)

// StatusUpdateRequest represents the request payload for a forward
// status transition on a trip.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`

	// Courier hand-off fields, required when moving to couriered.
	CourierPartner  string `json:"courier_partner" validate:"omitempty,max=100"`
	AWBNumber       string `json:"awb_number" validate:"omitempty,max=100"`
	CollectedFrom   string `json:"collected_from" validate:"omitempty,max=100"`
	CourierComments string `json:"courier_comments" validate:"omitempty,max=500"`

	// Headquarters gate acknowledgement for the runner collection flow.
	AtHeadquarters bool `json:"at_headquarters"`
}

func (r StatusUpdateRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !trip_model.TripStatus(r.Status).IsValid() {
		return fmt.Errorf("status '%s' is not a valid trip status", r.Status)
	}
	return nil
}

// OverrideStatusRequest represents a control tower correction that
// bypasses the forward workflow.
type OverrideStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

func (r OverrideStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !trip_model.TripStatus(r.Status).IsValid() {
		return fmt.Errorf("status '%s' is not a valid trip status", r.Status)
	}
	if r.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

// AssignRunnerRequest represents the request payload for assigning or
// clearing the runner on a trip. Empty name clears the assignment.
type AssignRunnerRequest struct {
	Runner          string `json:"runner" validate:"omitempty,max=100"`
	RunnerID        string `json:"runner_id" validate:"omitempty,max=100"`
	SecondaryRunner string `json:"secondary_runner" validate:"omitempty,max=100"`
}

// AssignOwnerRequest represents the request payload for setting the trip owner.
type AssignOwnerRequest struct {
	Owner string `json:"owner" validate:"omitempty,max=100"`
}

// SlotStatusRequest represents the request payload for updating the
// document recovery classification.
type SlotStatusRequest struct {
	SlotStatus string `json:"slot_status" validate:"required"`
}

func (r SlotStatusRequest) Validate() error {
	if r.SlotStatus == "" {
		return fmt.Errorf("slotStatus is required")
	}
	if !trip_model.SlotStatus(r.SlotStatus).IsValid() {
		return fmt.Errorf("slotStatus '%s' is not a valid slot status", r.SlotStatus)
	}
	return nil
}

// SupplierAddressRequest represents the request payload for the supplier
// address correction endpoint.
type SupplierAddressRequest struct {
	SupplierAddress string `json:"supplier_address" validate:"required,min=1,max=500"`
}

func (r SupplierAddressRequest) Validate() error {
	if r.SupplierAddress == "" {
		return fmt.Errorf("supplierAddress is required")
	}
	return nil
}

// PODImagesRequest represents the request payload for attaching POD images.
type PODImagesRequest struct {
	Images []string `json:"images" validate:"required,min=1"`
}

func (r PODImagesRequest) Validate() error {
	if len(r.Images) == 0 {
		return fmt.Errorf("at least one image is required")
	}
	return nil
}

// ReportIssueRequest represents the request payload for opening an issue.
type ReportIssueRequest struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
}

func (r ReportIssueRequest) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !trip_model.IsValidIssueType(r.Type) {
		return fmt.Errorf("type '%s' is not a valid issue type", r.Type)
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

// UpdateIssueRequest represents the request payload for appending an
// issue progress entry. At least one of type and description must be set.
type UpdateIssueRequest struct {
	Type        string `json:"type" validate:"omitempty"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

func (r UpdateIssueRequest) Validate() error {
	if r.Type == "" && r.Description == "" {
		return fmt.Errorf("type or description is required")
	}
	if r.Type != "" && !trip_model.IsValidIssueType(r.Type) {
		return fmt.Errorf("type '%s' is not a valid issue type", r.Type)
	}
	return nil
}

// AddRemarkRequest represents the request payload for a runner remark.
// Courier fields are honored only on fo remarks.
type AddRemarkRequest struct {
	Type           string   `json:"type" validate:"required,oneof=general fo"`
	Text           string   `json:"text" validate:"required,min=1,max=1000"`
	Images         []string `json:"images" validate:"omitempty"`
	CourierService string   `json:"courier_service" validate:"omitempty,max=100"`
	DocketNumber   string   `json:"docket_number" validate:"omitempty,max=100"`
}

func (r AddRemarkRequest) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("type is required")
	}
	if !trip_model.IsValidRemarkType(r.Type) {
		return fmt.Errorf("type must be either 'general' or 'fo'")
	}
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

// OwnerRemarkRequest represents the request payload for an owner remark.
type OwnerRemarkRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

func (r OwnerRemarkRequest) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}
