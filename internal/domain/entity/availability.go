package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SlotStatus represents the booking state of a single published time slot
type SlotStatus string

const (
	SlotStatusPending SlotStatus = "pending"
	SlotStatusBooked  SlotStatus = "booked"
	SlotStatusBlocked SlotStatus = "blocked"
)

// Slot is a single bookable time unit on a given date. Time is HH:MM and
// unique within its date.
type Slot struct {
	Time   string     `json:"time"`
	Status SlotStatus `json:"status"`
}

// DaySchedule is the doctor-published schedule for one calendar date.
// Slot order is the published order and is preserved everywhere.
type DaySchedule struct {
	Available bool   `json:"available"`
	Slots     []Slot `json:"slots"`
}

// HasOpenSlot reports whether at least one slot is open for booking
func (d DaySchedule) HasOpenSlot() bool {
	if !d.Available {
		return false
	}
	for _, s := range d.Slots {
		if s.Time != "" && s.Status == SlotStatusPending {
			return true
		}
	}
	return false
}

// AvailabilityCalendar maps ISO date strings (YYYY-MM-DD) to day schedules.
// It is stored as a JSONB column on the doctor profile and is the
// authoritative source for bookability.
type AvailabilityCalendar map[string]DaySchedule

// Value implements driver.Valuer for JSONB storage
func (c AvailabilityCalendar) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage
func (c *AvailabilityCalendar) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := AvailabilityCalendar{}
	err := json.Unmarshal(bytes, &result)
	*c = result
	return err
}

// SlotInstant combines a date key and slot time into a single instant.
// Calendar keys are UTC, so the instant is too; callers compare it against
// time.Now().UTC() and the comparison is absolute either way.
func SlotInstant(date, slotTime string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+slotTime, time.UTC)
}

// IsBookable reports whether the given date/time is offered and open:
// the date exists, the day is available, a slot with that time exists in
// pending status, and the instant is strictly in the future relative to now.
func (c AvailabilityCalendar) IsBookable(date, slotTime string, now time.Time) bool {
	instant, err := SlotInstant(date, slotTime)
	if err != nil {
		return false
	}
	if !instant.After(now) {
		return false
	}

	day, ok := c[date]
	if !ok || !day.Available {
		return false
	}
	for _, s := range day.Slots {
		if s.Time == slotTime {
			return s.Status == SlotStatusPending
		}
	}
	return false
}

// ClaimSlot flips a pending slot to booked. Returns false when the slot is
// missing or not pending, in which case the calendar is unchanged.
func (c AvailabilityCalendar) ClaimSlot(date, slotTime string) bool {
	return c.setSlotStatus(date, slotTime, SlotStatusPending, SlotStatusBooked)
}

// ReleaseSlot flips a booked slot back to pending. Returns false when the
// slot is missing or not booked.
func (c AvailabilityCalendar) ReleaseSlot(date, slotTime string) bool {
	return c.setSlotStatus(date, slotTime, SlotStatusBooked, SlotStatusPending)
}

func (c AvailabilityCalendar) setSlotStatus(date, slotTime string, from, to SlotStatus) bool {
	day, ok := c[date]
	if !ok {
		return false
	}
	for i, s := range day.Slots {
		if s.Time == slotTime {
			if s.Status != from {
				return false
			}
			day.Slots[i].Status = to
			c[date] = day
			return true
		}
	}
	return false
}
