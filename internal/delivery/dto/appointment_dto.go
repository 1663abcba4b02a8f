package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateAppointmentRequest carries a booking request. patient_id is only
// honoured when a doctor books on behalf of a patient; patients always book
// for themselves. consultation_fee arrives as a string (form input);
// unparsable values fall back to 0.
type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" validate:"omitempty,uuid"`
	DoctorID        string `json:"doctor_id" validate:"required,uuid"`
	SlotDate        string `json:"slot_date" validate:"required"`        // Format: YYYY-MM-DD
	SlotTime        string `json:"slot_time" validate:"required"`        // Format: HH:MM
	AppointmentDate string `json:"appointment_date" validate:"required"` // Format: YYYY-MM-DD HH:MM:SS
	AppointmentType string `json:"appointment_type" validate:"required"`
	ReasonForVisit  string `json:"reason_for_visit" validate:"required,max=500"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=1"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
	Notes           string `json:"notes" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required"`
}

type PayAppointmentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// AppointmentQuery mirrors the list endpoint's query string. All provided
// filters are combined with AND.
type AppointmentQuery struct {
	Status    string `json:"status"`
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
	Upcoming  bool   `json:"upcoming"`
	Today     bool   `json:"today"`
	StartAt   string `json:"start_at"` // Format: YYYY-MM-DD
	EndAt     string `json:"end_at"`   // Format: YYYY-MM-DD
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID        `json:"id"`
	PatientID          uuid.UUID        `json:"patient_id"`
	DoctorID           uuid.UUID        `json:"doctor_id"`
	AppointmentDate    string           `json:"appointment_date"` // Format: YYYY-MM-DD HH:MM:SS
	DurationMinutes    int              `json:"duration_minutes"`
	AppointmentType    string           `json:"appointment_type"`
	ReasonForVisit     string           `json:"reason_for_visit"`
	Notes              string           `json:"notes,omitempty"`
	ConsultationFee    float64          `json:"consultation_fee"`
	Status             string           `json:"status"`
	PaymentStatus      string           `json:"payment_status"`
	CancellationReason string           `json:"cancellation_reason,omitempty"`
	Doctor             *DoctorResponse  `json:"doctor,omitempty"`
	Patient            *PatientResponse `json:"patient,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// AppointmentListResponse is one page of results; the full set is never
// materialized.
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	CurrentPage  int                   `json:"current_page"`
	LastPage     int                   `json:"last_page"`
	PerPage      int                   `json:"per_page"`
	Total        int64                 `json:"total"`
}
