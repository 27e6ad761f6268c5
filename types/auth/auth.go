package auth

import "fmt"

// LoginRequest represents the request payload for the login endpoint
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (l LoginRequest) Validate() error {
	if l.Email == "" {
		return fmt.Errorf("email is required")
	}
	if l.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// LoginResponse carries the authenticated profile returned with the token
type LoginResponse struct {
	Uuid  string `json:"uuid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Zone  string `json:"zone,omitempty"`
	City  string `json:"city,omitempty"`
}
