package dto

import (
	"medappoint-backend/internal/domain/entity"
	"medappoint-backend/internal/scheduling"

	"github.com/google/uuid"
)

// Request DTOs

type SlotRequest struct {
	Time   string `json:"time" validate:"required"` // Format: HH:MM
	Status string `json:"status" validate:"omitempty,oneof=pending booked blocked"`
}

type DayScheduleRequest struct {
	Available bool          `json:"available"`
	Slots     []SlotRequest `json:"slots" validate:"dive"`
}

// PublishAvailabilityRequest replaces the doctor's published calendar.
// Keys are ISO date strings (YYYY-MM-DD).
type PublishAvailabilityRequest struct {
	ConsultationHours map[string]DayScheduleRequest `json:"consultation_hours" validate:"required"`
}

// Response DTOs

type AvailabilityResponse struct {
	DoctorID          uuid.UUID                   `json:"doctor_id"`
	ConsultationHours entity.AvailabilityCalendar `json:"consultation_hours"`
	BookableDays      []scheduling.BookableDay    `json:"bookable_days"`
}
