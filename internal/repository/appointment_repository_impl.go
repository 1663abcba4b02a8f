package repository

import (
	"errors"
	"time"

	"medappoint-backend/internal/domain/entity"
	domainRepo "medappoint-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindWithFilter builds the conjunctive filter query. Paging happens in SQL;
// the full result set is never loaded.
func (r *appointmentRepository) FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter, now time.Time) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DoctorID != uuid.Nil {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != uuid.Nil {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Upcoming {
		query = query.
			Where("appointment_date >= ?", now).
			Where("status NOT IN ?", entity.UpcomingExcludedStatuses())
	}
	if filter.Today {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		query = query.
			Where("appointment_date >= ?", dayStart).
			Where("appointment_date < ?", dayStart.AddDate(0, 0, 1))
	}
	if filter.StartAt != "" {
		query = query.Where("appointment_date >= ?", filter.StartAt)
	}
	if filter.EndAt != "" {
		query = query.Where("appointment_date < ?", filter.EndAt+" 23:59:59")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Preload("Doctor.User").Preload("Patient.User").
		Order("appointment_date ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// UpdateStatus atomically transitions status ONLY when the row is still in
// one of the source statuses. Affected rows 0 means the transition was
// already applied or is illegal from the current state (callers distinguish
// by reloading), which is what makes repeated confirm/cancel idempotent.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus, updates map[string]interface{}) (int64, error) {
	values := map[string]interface{}{"status": to}
	for k, v := range updates {
		values[k] = v
	}
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdatePaymentStatus(db *gorm.DB, id uuid.UUID, from, to entity.PaymentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
