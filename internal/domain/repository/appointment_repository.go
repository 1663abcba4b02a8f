package repository

import (
	"time"

	"medappoint-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindWithFilter returns one page of matching appointments ordered by
	// appointment_date, plus the total match count for paging metadata.
	FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter, now time.Time) ([]entity.Appointment, int64, error)
	// UpdateStatus transitions an appointment from any of the given statuses
	// to the target status, applying extra column updates atomically.
	// Returns affected rows: 1 = transitioned, 0 = not in a source status.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus, updates map[string]interface{}) (int64, error)
	// UpdatePaymentStatus transitions payment_status with the same
	// conditional-update semantics.
	UpdatePaymentStatus(db *gorm.DB, id uuid.UUID, from, to entity.PaymentStatus) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
