package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusRequested  AppointmentStatus = "requested"
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// appointmentTransitions is the single source of truth for legal status
// transitions. Terminal statuses have no outgoing edges.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusRequested:  {AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusScheduled:  {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusConfirmed:  {AppointmentStatusInProgress, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusInProgress: {AppointmentStatusCompleted},
	AppointmentStatusCompleted:  {},
	AppointmentStatusCancelled:  {},
	AppointmentStatusNoShow:     {},
}

// IsValid reports whether s is a known appointment status
func (s AppointmentStatus) IsValid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions
func (s AppointmentStatus) IsTerminal() bool {
	targets, ok := appointmentTransitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether s -> to is a legal transition
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	for _, t := range appointmentTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// CancellableStatuses returns the statuses a cancellation is allowed from
func CancellableStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentStatusRequested, AppointmentStatusScheduled, AppointmentStatusConfirmed}
}

// NoShowStatuses returns the statuses a no-show mark is allowed from
func NoShowStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusConfirmed}
}

// AppointmentType represents the consultation modality
type AppointmentType string

const (
	AppointmentTypePresentiel AppointmentType = "presentiel"
	AppointmentTypeVisio      AppointmentType = "visio"
	AppointmentTypeDomicile   AppointmentType = "domicile"
	AppointmentTypeUrgence    AppointmentType = "urgence"
	AppointmentTypeSuivi      AppointmentType = "suivi"
)

func (t AppointmentType) IsValid() bool {
	switch t {
	case AppointmentTypePresentiel, AppointmentTypeVisio, AppointmentTypeDomicile, AppointmentTypeUrgence, AppointmentTypeSuivi:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of an appointment, owned by the
// payment collaborator and mutated independently of the lifecycle status
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// DefaultDurationMinutes is applied when a booking request omits the duration
const DefaultDurationMinutes = 30

// MaxReasonLength caps reason_for_visit
const MaxReasonLength = 500

// Appointment represents a medical consultation booking tying a patient,
// doctor, date/time and status together. It consumes at most one slot of the
// doctor's published availability.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_date,unique,where:status NOT IN ('completed','cancelled','no_show')" json:"doctor_id"`
	AppointmentDate    time.Time         `gorm:"not null;index;index:idx_appointments_doctor_date,unique,where:status NOT IN ('completed','cancelled','no_show')" json:"appointment_date"`
	DurationMinutes    int               `gorm:"not null;default:30" json:"duration_minutes"`
	AppointmentType    AppointmentType   `gorm:"type:varchar(20);not null" json:"appointment_type"`
	ReasonForVisit     string            `gorm:"type:varchar(500);not null" json:"reason_for_visit"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	ConsultationFee    float64           `gorm:"not null;default:0" json:"consultation_fee"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'requested';index" json:"status"`
	PaymentStatus      PaymentStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedByUserID    uuid.UUID         `gorm:"type:uuid;not null" json:"created_by_user_id"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// SlotDate returns the calendar date key of the consumed slot (YYYY-MM-DD).
// Slot keys are UTC; the stored timestamp is normalized first so the key is
// stable regardless of the session time zone the row came back in.
func (a *Appointment) SlotDate() string {
	return a.AppointmentDate.UTC().Format("2006-01-02")
}

// SlotTime returns the time-of-day key of the consumed slot (HH:MM), in UTC
func (a *Appointment) SlotTime() string {
	return a.AppointmentDate.UTC().Format("15:04")
}

// IsTerminal reports whether the appointment can no longer transition
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// IsPast reports whether the appointment date has passed relative to now
func (a *Appointment) IsPast(now time.Time) bool {
	return a.AppointmentDate.Before(now)
}
