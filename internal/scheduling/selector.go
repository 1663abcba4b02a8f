// Package scheduling derives bookable time windows from a doctor's published
// availability calendar. It is a pure read-only view: nothing here mutates
// the underlying calendar, and the server-side calendar stays the single
// source of truth for bookability.
package scheduling

import (
	"sort"
	"time"

	"medappoint-backend/internal/domain/entity"
)

// BookableDay is one calendar date carrying at least one open slot.
// Slots retain the doctor's published order.
type BookableDay struct {
	Date         string        `json:"date"`
	DisplayLabel string        `json:"display_label"`
	Slots        []entity.Slot `json:"slots"`
}

// IsPastSlot reports whether a slot on the current day has already passed.
// A slot whose time equals the current minute counts as past. Calendar keys
// are UTC, so now is normalized before the comparison.
func IsPastSlot(date, slotTime string, now time.Time) bool {
	now = now.UTC()
	if date != now.Format("2006-01-02") {
		return false
	}
	return slotTime <= now.Format("15:04")
}

// ListBookableDays transforms a raw availability calendar into the ordered
// list of days a patient can still book, ascending by date. Days whose every
// slot is booked, blocked, or already past are dropped. The result is never
// nil: zero bookable days yields an empty slice so callers can render an
// explicit "no availability" state.
func ListBookableDays(cal entity.AvailabilityCalendar, now time.Time) []BookableDay {
	now = now.UTC()
	days := make([]BookableDay, 0, len(cal))
	today := now.Format("2006-01-02")

	dates := make([]string, 0, len(cal))
	for date := range cal {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day := cal[date]
		if !day.Available || date < today {
			continue
		}

		open := make([]entity.Slot, 0, len(day.Slots))
		for _, s := range day.Slots {
			if s.Time == "" || s.Status != entity.SlotStatusPending {
				continue
			}
			if IsPastSlot(date, s.Time, now) {
				continue
			}
			open = append(open, s)
		}
		if len(open) == 0 {
			continue
		}

		days = append(days, BookableDay{
			Date:         date,
			DisplayLabel: displayLabel(date),
			Slots:        open,
		})
	}

	return days
}

// displayLabel renders a date key as a human-readable label, e.g.
// "Monday, 10 March 2025". Falls back to the raw key on parse failure.
func displayLabel(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Monday, 2 January 2006")
}
