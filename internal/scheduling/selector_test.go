package scheduling

import (
	"testing"
	"time"

	"medappoint-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBookableDaysDropsConsumedSlots(t *testing.T) {
	cal := entity.AvailabilityCalendar{
		"2025-03-10": entity.DaySchedule{
			Available: true,
			Slots: []entity.Slot{
				{Time: "09:00", Status: entity.SlotStatusPending},
				{Time: "09:30", Status: entity.SlotStatusBooked},
			},
		},
	}
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	days := ListBookableDays(cal, now)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-10", days[0].Date)
	assert.Equal(t, "Monday, 10 March 2025", days[0].DisplayLabel)
	require.Len(t, days[0].Slots, 1)
	assert.Equal(t, "09:00", days[0].Slots[0].Time)
}

func TestListBookableDaysSkipsUnavailableAndFullDays(t *testing.T) {
	cal := entity.AvailabilityCalendar{
		"2025-03-10": entity.DaySchedule{
			Available: false,
			Slots:     []entity.Slot{{Time: "09:00", Status: entity.SlotStatusPending}},
		},
		"2025-03-11": entity.DaySchedule{
			Available: true,
			Slots: []entity.Slot{
				{Time: "09:00", Status: entity.SlotStatusBooked},
				{Time: "09:30", Status: entity.SlotStatusBlocked},
			},
		},
		"2025-03-12": entity.DaySchedule{
			Available: true,
			Slots:     []entity.Slot{{Time: "14:00", Status: entity.SlotStatusPending}},
		},
	}
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	days := ListBookableDays(cal, now)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-12", days[0].Date)
}

func TestListBookableDaysOrdersByDate(t *testing.T) {
	cal := entity.AvailabilityCalendar{
		"2025-03-12": entity.DaySchedule{Available: true, Slots: []entity.Slot{{Time: "09:00", Status: entity.SlotStatusPending}}},
		"2025-03-10": entity.DaySchedule{Available: true, Slots: []entity.Slot{{Time: "09:00", Status: entity.SlotStatusPending}}},
		"2025-03-11": entity.DaySchedule{Available: true, Slots: []entity.Slot{{Time: "09:00", Status: entity.SlotStatusPending}}},
	}
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	days := ListBookableDays(cal, now)
	require.Len(t, days, 3)
	assert.Equal(t, "2025-03-10", days[0].Date)
	assert.Equal(t, "2025-03-11", days[1].Date)
	assert.Equal(t, "2025-03-12", days[2].Date)
}

func TestListBookableDaysPreservesPublishedSlotOrder(t *testing.T) {
	cal := entity.AvailabilityCalendar{
		"2025-03-10": entity.DaySchedule{
			Available: true,
			Slots: []entity.Slot{
				{Time: "14:00", Status: entity.SlotStatusPending},
				{Time: "09:00", Status: entity.SlotStatusPending},
				{Time: "11:30", Status: entity.SlotStatusPending},
			},
		},
	}
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	days := ListBookableDays(cal, now)
	require.Len(t, days, 1)
	require.Len(t, days[0].Slots, 3)
	assert.Equal(t, "14:00", days[0].Slots[0].Time)
	assert.Equal(t, "09:00", days[0].Slots[1].Time)
	assert.Equal(t, "11:30", days[0].Slots[2].Time)
}

func TestListBookableDaysDropsPastDaysAndSameDayPastSlots(t *testing.T) {
	cal := entity.AvailabilityCalendar{
		"2025-03-08": entity.DaySchedule{Available: true, Slots: []entity.Slot{{Time: "09:00", Status: entity.SlotStatusPending}}},
		"2025-03-09": entity.DaySchedule{
			Available: true,
			Slots: []entity.Slot{
				{Time: "09:00", Status: entity.SlotStatusPending},
				{Time: "15:00", Status: entity.SlotStatusPending},
			},
		},
	}
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	days := ListBookableDays(cal, now)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-09", days[0].Date)
	require.Len(t, days[0].Slots, 1)
	assert.Equal(t, "15:00", days[0].Slots[0].Time)
}

func TestListBookableDaysNormalizesCallerTimezone(t *testing.T) {
	cal := entity.AvailabilityCalendar{
		"2025-03-10": entity.DaySchedule{
			Available: true,
			Slots: []entity.Slot{
				{Time: "09:00", Status: entity.SlotStatusPending},
				{Time: "15:00", Status: entity.SlotStatusPending},
			},
		},
	}

	// same absolute instant, once as UTC and once in a non-UTC zone
	utcNow := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	paris := time.FixedZone("CET", 3600)

	fromUTC := ListBookableDays(cal, utcNow)
	fromParis := ListBookableDays(cal, utcNow.In(paris))
	assert.Equal(t, fromUTC, fromParis)

	require.Len(t, fromUTC, 1)
	require.Len(t, fromUTC[0].Slots, 1)
	assert.Equal(t, "15:00", fromUTC[0].Slots[0].Time)
}

func TestListBookableDaysNeverReturnsNil(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	days := ListBookableDays(nil, now)
	assert.NotNil(t, days)
	assert.Empty(t, days)

	days = ListBookableDays(entity.AvailabilityCalendar{}, now)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestIsPastSlot(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	// other days are never past here; day-level filtering handles them
	assert.False(t, IsPastSlot("2025-03-08", "09:00", now))
	assert.False(t, IsPastSlot("2025-03-10", "09:00", now))

	// same day: the current minute counts as past
	assert.True(t, IsPastSlot("2025-03-09", "11:59", now))
	assert.True(t, IsPastSlot("2025-03-09", "12:00", now))
	assert.False(t, IsPastSlot("2025-03-09", "12:01", now))
}
