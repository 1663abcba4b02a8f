package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentFilterNormalize(t *testing.T) {
	f := &AppointmentFilter{}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	f = &AppointmentFilter{Page: -3, Limit: 500}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)

	f = &AppointmentFilter{Page: 4, Limit: 50}
	f.Normalize()
	assert.Equal(t, 4, f.Page)
	assert.Equal(t, 50, f.Limit)
}

func TestAppointmentFilterMatches(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	appt := func(date time.Time, status AppointmentStatus) *Appointment {
		return &Appointment{
			DoctorID:        doctorID,
			PatientID:       patientID,
			AppointmentDate: date,
			Status:          status,
		}
	}
	future := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	past := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.True(t, AppointmentFilter{}.Matches(appt(future, AppointmentStatusRequested), now))
	})

	t.Run("status filter", func(t *testing.T) {
		f := AppointmentFilter{Status: AppointmentStatusConfirmed}
		assert.True(t, f.Matches(appt(future, AppointmentStatusConfirmed), now))
		assert.False(t, f.Matches(appt(future, AppointmentStatusRequested), now))
	})

	t.Run("doctor and patient filters are conjunctive", func(t *testing.T) {
		f := AppointmentFilter{DoctorID: doctorID, PatientID: uuid.New()}
		assert.False(t, f.Matches(appt(future, AppointmentStatusRequested), now))

		f.PatientID = patientID
		assert.True(t, f.Matches(appt(future, AppointmentStatusRequested), now))
	})

	t.Run("upcoming excludes past dates", func(t *testing.T) {
		f := AppointmentFilter{Upcoming: true}
		assert.True(t, f.Matches(appt(future, AppointmentStatusConfirmed), now))
		assert.False(t, f.Matches(appt(past, AppointmentStatusConfirmed), now))
	})

	t.Run("upcoming excludes completed and cancelled", func(t *testing.T) {
		f := AppointmentFilter{Upcoming: true}
		assert.False(t, f.Matches(appt(future, AppointmentStatusCompleted), now))
		assert.False(t, f.Matches(appt(future, AppointmentStatusCancelled), now))
		// no_show is not excluded from upcoming
		assert.True(t, f.Matches(appt(future, AppointmentStatusNoShow), now))
	})

	t.Run("today matches only the current calendar date", func(t *testing.T) {
		f := AppointmentFilter{Today: true}
		sameDay := time.Date(2025, 3, 9, 16, 0, 0, 0, time.UTC)
		assert.True(t, f.Matches(appt(sameDay, AppointmentStatusConfirmed), now))
		assert.False(t, f.Matches(appt(future, AppointmentStatusConfirmed), now))
	})

	t.Run("date range bounds are inclusive", func(t *testing.T) {
		f := AppointmentFilter{StartAt: "2025-03-10", EndAt: "2025-03-10"}
		assert.True(t, f.Matches(appt(future, AppointmentStatusRequested), now))

		f = AppointmentFilter{StartAt: "2025-03-11"}
		assert.False(t, f.Matches(appt(future, AppointmentStatusRequested), now))

		f = AppointmentFilter{EndAt: "2025-03-09"}
		assert.False(t, f.Matches(appt(future, AppointmentStatusRequested), now))
	})
}
