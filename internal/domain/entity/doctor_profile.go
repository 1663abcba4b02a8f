package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data, including the
// published availability calendar patients book against.
type DoctorProfile struct {
	UserID            uuid.UUID            `gorm:"type:uuid;primaryKey" json:"user_id"`
	RegistrationNo    string               `gorm:"column:registration_no;type:varchar(50);uniqueIndex;not null" json:"registration_no"`
	Specialization    string               `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography         string               `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee   float64              `gorm:"not null;default:0" json:"consultation_fee"`
	ConsultationHours AvailabilityCalendar `gorm:"type:jsonb" json:"consultation_hours,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
