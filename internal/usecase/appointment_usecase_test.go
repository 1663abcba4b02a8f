package usecase

import (
	"errors"
	"fmt"
	"testing"

	"medappoint-backend/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestSlotExistsBooked(t *testing.T) {
	cal := entity.AvailabilityCalendar{
		"2025-03-10": entity.DaySchedule{
			Available: true,
			Slots: []entity.Slot{
				{Time: "09:00", Status: entity.SlotStatusPending},
				{Time: "09:30", Status: entity.SlotStatusBooked},
			},
		},
	}

	assert.True(t, slotExistsBooked(cal, "2025-03-10", "09:30"))
	assert.False(t, slotExistsBooked(cal, "2025-03-10", "09:00"))
	assert.False(t, slotExistsBooked(cal, "2025-03-10", "10:00"))
	assert.False(t, slotExistsBooked(cal, "2025-03-11", "09:30"))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_date"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", unique)))

	fk := &pgconn.PgError{Code: "23503"}
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestDuplicateKeyErrorMatchesConstraintName(t *testing.T) {
	emailDup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
	assert.True(t, isDuplicateKeyError(emailDup, "email"))
	assert.False(t, isDuplicateKeyError(emailDup, "registration_no"))

	roleFK := &pgconn.PgError{Code: "23503", ConstraintName: "fk_users_role"}
	assert.True(t, isForeignKeyError(roleFK, "role"))
	assert.False(t, isForeignKeyError(roleFK, "doctor"))
	assert.False(t, isDuplicateKeyError(roleFK, "role"))
}
