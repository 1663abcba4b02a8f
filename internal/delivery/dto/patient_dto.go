package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth string    `json:"date_of_birth"` // Format: YYYY-MM-DD
	Gender      string    `json:"gender"`
}
