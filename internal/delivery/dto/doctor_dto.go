package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email,omitempty"`
	FullName        string    `json:"full_name"`
	RegistrationNo  string    `json:"registration_no"`
	Specialization  string    `json:"specialization"`
	Biography       string    `json:"biography,omitempty"`
	ConsultationFee float64   `json:"consultation_fee"`
	IsActive        bool      `json:"is_active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
