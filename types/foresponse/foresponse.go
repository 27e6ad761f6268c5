package foresponse

import "fmt"

// VerifyRequest represents the request payload for deciding an FO
// courier claim. Rejections must carry notes.
type VerifyRequest struct {
	Status string `json:"status" validate:"required,oneof=verified rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
}

func (r VerifyRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if r.Status != "verified" && r.Status != "rejected" {
		return fmt.Errorf("status must be either 'verified' or 'rejected'")
	}
	if r.Status == "rejected" && r.Notes == "" {
		return fmt.Errorf("notes are required when rejecting")
	}
	return nil
}
