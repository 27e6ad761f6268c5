package audit

import (
	"fmt"

	audit_model "pod-tracker/models/podaudit"
)

// ReviewRequest represents the optional payload for picking up an audit.
// A reviewer may note a provisional result while working through the documents.
type ReviewRequest struct {
	Result string `json:"result" validate:"omitempty,oneof=clean unclean partial"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

func (r ReviewRequest) Validate() error {
	if r.Result != "" && !audit_model.IsValidResult(r.Result) {
		return fmt.Errorf("result must be one of 'clean', 'unclean' or 'partial'")
	}
	return nil
}

// CompleteRequest represents the request payload for filing an audit result.
type CompleteRequest struct {
	Result          string   `json:"result" validate:"required,oneof=clean unclean partial"`
	DeductionAmount *float64 `json:"deduction_amount" validate:"omitempty,gte=0"`
	Notes           string   `json:"notes" validate:"omitempty,max=1000"`
}

func (r CompleteRequest) Validate() error {
	if r.Result == "" {
		return fmt.Errorf("result is required")
	}
	if !audit_model.IsValidResult(r.Result) {
		return fmt.Errorf("result must be one of 'clean', 'unclean' or 'partial'")
	}
	if r.Result == audit_model.ResultUnclean {
		if r.DeductionAmount == nil {
			return fmt.Errorf("deductionAmount is required for unclean results")
		}
		if *r.DeductionAmount < 0 {
			return fmt.Errorf("deductionAmount must not be negative")
		}
	}
	if r.Result != audit_model.ResultUnclean && r.DeductionAmount != nil {
		return fmt.Errorf("deductionAmount is only allowed for unclean results")
	}
	return nil
}
