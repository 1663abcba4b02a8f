package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"medappoint-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// FieldError is a single per-field validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every invalid field of a booking request.
// Nothing is submitted until the whole set is empty.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	fields := make([]string, len(v))
	for i, fe := range v {
		fields[i] = fe.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// AppointmentInput is the raw material of a booking request: the chosen slot
// plus user-supplied metadata, before any validation.
type AppointmentInput struct {
	PatientID       string
	DoctorID        string
	SlotDate        string // YYYY-MM-DD, from the selected slot
	SlotTime        string // HH:MM, from the selected slot
	AppointmentDate string // YYYY-MM-DD HH:MM:SS, must equal SlotDate+SlotTime
	AppointmentType string
	ReasonForVisit  string
	DurationMinutes int
	ConsultationFee string // free-form; unparsable or empty defaults to 0
	Notes           string
	CreatedByUserID uuid.UUID
}

// BuildAppointmentRequest validates and assembles an appointment from a
// chosen slot and user input. Pure assembly: no lookups, no side effects.
// Every field is checked before anything is returned; a non-empty error
// list means nothing may be submitted.
func BuildAppointmentRequest(input *AppointmentInput) (*entity.Appointment, ValidationErrors) {
	var errs ValidationErrors

	patientID, err := uuid.Parse(input.PatientID)
	if err != nil || patientID == uuid.Nil {
		errs = append(errs, FieldError{Field: "patient_id", Message: "patient_id is required"})
	}

	doctorID, err := uuid.Parse(input.DoctorID)
	if err != nil || doctorID == uuid.Nil {
		errs = append(errs, FieldError{Field: "doctor_id", Message: "doctor_id is required"})
	}

	// Appointment timestamps are UTC, matching the slot calendar keys
	appointmentDate, err := time.ParseInLocation("2006-01-02 15:04:05", input.AppointmentDate, time.UTC)
	if err != nil {
		errs = append(errs, FieldError{Field: "appointment_date", Message: "appointment_date must be formatted as YYYY-MM-DD HH:MM:SS"})
	} else if input.AppointmentDate != fmt.Sprintf("%s %s:00", input.SlotDate, input.SlotTime) {
		errs = append(errs, FieldError{Field: "appointment_date", Message: "appointment_date must match the selected slot"})
	}

	appointmentType := entity.AppointmentType(input.AppointmentType)
	if !appointmentType.IsValid() {
		errs = append(errs, FieldError{Field: "appointment_type", Message: "appointment_type must be one of presentiel, visio, domicile, urgence, suivi"})
	}

	reason := strings.TrimSpace(input.ReasonForVisit)
	if reason == "" {
		errs = append(errs, FieldError{Field: "reason_for_visit", Message: "reason_for_visit is required"})
	} else if utf8.RuneCountInString(reason) > entity.MaxReasonLength {
		errs = append(errs, FieldError{Field: "reason_for_visit", Message: fmt.Sprintf("reason_for_visit must be at most %d characters", entity.MaxReasonLength)})
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = entity.DefaultDurationMinutes
	} else if duration < 0 {
		errs = append(errs, FieldError{Field: "duration_minutes", Message: "duration_minutes must be positive"})
	}

	fee := 0.0
	if input.ConsultationFee != "" {
		if parsed, err := strconv.ParseFloat(input.ConsultationFee, 64); err == nil && parsed >= 0 {
			fee = parsed
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: appointmentDate,
		DurationMinutes: duration,
		AppointmentType: appointmentType,
		ReasonForVisit:  reason,
		Notes:           input.Notes,
		ConsultationFee: fee,
		Status:          entity.AppointmentStatusRequested,
		PaymentStatus:   entity.PaymentStatusPending,
		CreatedByUserID: input.CreatedByUserID,
	}, nil
}
