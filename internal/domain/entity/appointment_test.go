package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"requested to scheduled", AppointmentStatusRequested, AppointmentStatusScheduled, true},
		{"requested to confirmed", AppointmentStatusRequested, AppointmentStatusConfirmed, true},
		{"requested to cancelled", AppointmentStatusRequested, AppointmentStatusCancelled, true},
		{"requested to completed", AppointmentStatusRequested, AppointmentStatusCompleted, false},
		{"requested to no_show", AppointmentStatusRequested, AppointmentStatusNoShow, false},
		{"scheduled to confirmed", AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{"scheduled to no_show", AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{"scheduled to in_progress", AppointmentStatusScheduled, AppointmentStatusInProgress, false},
		{"confirmed to in_progress", AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed to no_show", AppointmentStatusConfirmed, AppointmentStatusNoShow, true},
		{"confirmed to completed", AppointmentStatusConfirmed, AppointmentStatusCompleted, false},
		{"in_progress to completed", AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{"in_progress to cancelled", AppointmentStatusInProgress, AppointmentStatusCancelled, false},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusRequested, false},
		{"no_show is terminal", AppointmentStatusNoShow, AppointmentStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusNoShow.IsTerminal())

	assert.False(t, AppointmentStatusRequested.IsTerminal())
	assert.False(t, AppointmentStatusScheduled.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.False(t, AppointmentStatusInProgress.IsTerminal())
}

func TestAppointmentStatusIsValid(t *testing.T) {
	assert.True(t, AppointmentStatusRequested.IsValid())
	assert.True(t, AppointmentStatusNoShow.IsValid())
	assert.False(t, AppointmentStatus("pending").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestCancellableStatuses(t *testing.T) {
	cancellable := CancellableStatuses()
	assert.ElementsMatch(t, []AppointmentStatus{
		AppointmentStatusRequested,
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
	}, cancellable)

	for _, s := range cancellable {
		assert.True(t, s.CanTransitionTo(AppointmentStatusCancelled), "status %s", s)
	}
}

func TestNoShowStatuses(t *testing.T) {
	for _, s := range NoShowStatuses() {
		assert.True(t, s.CanTransitionTo(AppointmentStatusNoShow), "status %s", s)
	}
	assert.NotContains(t, NoShowStatuses(), AppointmentStatusRequested)
}

func TestAppointmentTypeIsValid(t *testing.T) {
	for _, typ := range []AppointmentType{
		AppointmentTypePresentiel, AppointmentTypeVisio, AppointmentTypeDomicile,
		AppointmentTypeUrgence, AppointmentTypeSuivi,
	} {
		assert.True(t, typ.IsValid())
	}
	assert.False(t, AppointmentType("telephone").IsValid())
}

func TestAppointmentSlotHelpers(t *testing.T) {
	a := &Appointment{
		AppointmentDate: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}

	assert.Equal(t, "2025-03-10", a.SlotDate())
	assert.Equal(t, "09:30", a.SlotTime())
}

func TestAppointmentSlotHelpersNormalizeSessionTimezone(t *testing.T) {
	// A row read back through a non-UTC database session carries the session
	// zone; the slot keys must still match the UTC calendar keys.
	paris := time.FixedZone("CET", 3600)
	a := &Appointment{
		AppointmentDate: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC).In(paris),
	}

	assert.Equal(t, "2025-03-10", a.SlotDate())
	assert.Equal(t, "09:00", a.SlotTime())

	cal := AvailabilityCalendar{
		"2025-03-10": DaySchedule{
			Available: true,
			Slots:     []Slot{{Time: "09:00", Status: SlotStatusBooked}},
		},
	}
	assert.True(t, cal.ReleaseSlot(a.SlotDate(), a.SlotTime()))
	assert.Equal(t, SlotStatusPending, cal["2025-03-10"].Slots[0].Status)

	// late-evening slots must not shift onto the next calendar day
	b := &Appointment{
		AppointmentDate: time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC).In(paris),
	}
	assert.Equal(t, "2025-03-10", b.SlotDate())
	assert.Equal(t, "23:30", b.SlotTime())
}

func TestAppointmentIsPast(t *testing.T) {
	a := &Appointment{
		AppointmentDate: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}

	assert.False(t, a.IsPast(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, a.IsPast(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)))
}
