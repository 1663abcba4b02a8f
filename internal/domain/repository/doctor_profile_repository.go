package repository

import (
	"medappoint-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	// FindByUserIDForUpdate locks the profile row (SELECT ... FOR UPDATE) so
	// slot claims and releases on the JSONB calendar serialize per doctor.
	FindByUserIDForUpdate(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error)
	UpdateConsultationHours(db *gorm.DB, userID uuid.UUID, hours entity.AvailabilityCalendar) error
}
