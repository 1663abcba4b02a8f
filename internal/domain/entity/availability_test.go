package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalendar() AvailabilityCalendar {
	return AvailabilityCalendar{
		"2025-03-10": DaySchedule{
			Available: true,
			Slots: []Slot{
				{Time: "09:00", Status: SlotStatusPending},
				{Time: "09:30", Status: SlotStatusBooked},
				{Time: "10:00", Status: SlotStatusBlocked},
			},
		},
		"2025-03-11": DaySchedule{
			Available: false,
			Slots: []Slot{
				{Time: "09:00", Status: SlotStatusPending},
			},
		},
	}
}

func TestIsBookable(t *testing.T) {
	cal := testCalendar()
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	assert.True(t, cal.IsBookable("2025-03-10", "09:00", now))

	// already booked or blocked
	assert.False(t, cal.IsBookable("2025-03-10", "09:30", now))
	assert.False(t, cal.IsBookable("2025-03-10", "10:00", now))

	// day not published as available
	assert.False(t, cal.IsBookable("2025-03-11", "09:00", now))

	// date or time not offered at all
	assert.False(t, cal.IsBookable("2025-03-12", "09:00", now))
	assert.False(t, cal.IsBookable("2025-03-10", "08:00", now))

	// malformed inputs
	assert.False(t, cal.IsBookable("10/03/2025", "09:00", now))
	assert.False(t, cal.IsBookable("2025-03-10", "9am", now))
}

func TestIsBookableRejectsPastInstants(t *testing.T) {
	cal := testCalendar()

	// evaluation instant exactly at the slot time is not bookable
	atSlot := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.False(t, cal.IsBookable("2025-03-10", "09:00", atSlot))

	afterSlot := time.Date(2025, 3, 10, 9, 1, 0, 0, time.UTC)
	assert.False(t, cal.IsBookable("2025-03-10", "09:00", afterSlot))

	beforeSlot := time.Date(2025, 3, 10, 8, 59, 0, 0, time.UTC)
	assert.True(t, cal.IsBookable("2025-03-10", "09:00", beforeSlot))
}

func TestIsBookableIgnoresCallerTimezone(t *testing.T) {
	cal := testCalendar()
	paris := time.FixedZone("CET", 3600)

	// 09:30 CET is 08:30 UTC, half an hour before the slot
	before := time.Date(2025, 3, 10, 9, 30, 0, 0, paris)
	assert.True(t, cal.IsBookable("2025-03-10", "09:00", before))
	assert.Equal(t, cal.IsBookable("2025-03-10", "09:00", before.UTC()),
		cal.IsBookable("2025-03-10", "09:00", before))

	// 10:30 CET is 09:30 UTC, the slot has passed
	after := time.Date(2025, 3, 10, 10, 30, 0, 0, paris)
	assert.False(t, cal.IsBookable("2025-03-10", "09:00", after))
}

func TestClaimAndReleaseSlot(t *testing.T) {
	cal := testCalendar()

	require.True(t, cal.ClaimSlot("2025-03-10", "09:00"))
	assert.Equal(t, SlotStatusBooked, cal["2025-03-10"].Slots[0].Status)

	// a claimed slot cannot be claimed again
	assert.False(t, cal.ClaimSlot("2025-03-10", "09:00"))

	require.True(t, cal.ReleaseSlot("2025-03-10", "09:00"))
	assert.Equal(t, SlotStatusPending, cal["2025-03-10"].Slots[0].Status)

	// a released slot cannot be released again
	assert.False(t, cal.ReleaseSlot("2025-03-10", "09:00"))
}

func TestClaimSlotLeavesCalendarUntouchedOnFailure(t *testing.T) {
	cal := testCalendar()

	assert.False(t, cal.ClaimSlot("2025-03-10", "10:00")) // blocked
	assert.False(t, cal.ClaimSlot("2025-03-12", "09:00")) // missing date
	assert.False(t, cal.ClaimSlot("2025-03-10", "11:00")) // missing time

	assert.Equal(t, SlotStatusBlocked, cal["2025-03-10"].Slots[2].Status)
}

func TestReleaseSlotOnlyFlipsBooked(t *testing.T) {
	cal := testCalendar()

	assert.False(t, cal.ReleaseSlot("2025-03-10", "10:00")) // blocked, not booked
	assert.True(t, cal.ReleaseSlot("2025-03-10", "09:30"))
	assert.Equal(t, SlotStatusPending, cal["2025-03-10"].Slots[1].Status)
}

func TestHasOpenSlot(t *testing.T) {
	cal := testCalendar()

	assert.True(t, cal["2025-03-10"].HasOpenSlot())
	assert.False(t, cal["2025-03-11"].HasOpenSlot())

	fullDay := DaySchedule{
		Available: true,
		Slots: []Slot{
			{Time: "09:00", Status: SlotStatusBooked},
			{Time: "09:30", Status: SlotStatusBlocked},
		},
	}
	assert.False(t, fullDay.HasOpenSlot())
}

func TestAvailabilityCalendarScanRoundTrip(t *testing.T) {
	cal := testCalendar()

	value, err := cal.Value()
	require.NoError(t, err)

	var decoded AvailabilityCalendar
	require.NoError(t, decoded.Scan(value))

	assert.Equal(t, cal, decoded)
}

func TestSlotInstant(t *testing.T) {
	instant, err := SlotInstant("2025-03-10", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), instant)

	_, err = SlotInstant("2025-03-10", "25:00")
	assert.Error(t, err)
}
