package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// All set fields must match (conjunctive semantics). Used by the repository
// layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Status    AppointmentStatus // empty means any
	DoctorID  uuid.UUID         // uuid.Nil means any
	PatientID uuid.UUID         // uuid.Nil means any
	Upcoming  bool              // date >= now AND status not in {completed, cancelled}
	Today     bool              // date falls on the current calendar date
	StartAt   string            // Format: YYYY-MM-DD, inclusive
	EndAt     string            // Format: YYYY-MM-DD, inclusive
	Page      int
	Limit     int
}

// Normalize applies the paging defaults
func (f *AppointmentFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// upcomingExcluded are the statuses an upcoming query never returns
var upcomingExcluded = []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled}

// UpcomingExcludedStatuses returns the statuses excluded by Upcoming
func UpcomingExcludedStatuses() []AppointmentStatus {
	return upcomingExcluded
}

// Matches reports whether a single appointment satisfies the filter at the
// given evaluation instant. This is the reference semantics the repository
// reproduces in SQL.
func (f AppointmentFilter) Matches(a *Appointment, now time.Time) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.DoctorID != uuid.Nil && a.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != uuid.Nil && a.PatientID != f.PatientID {
		return false
	}
	if f.Upcoming {
		if a.AppointmentDate.Before(now) {
			return false
		}
		for _, s := range upcomingExcluded {
			if a.Status == s {
				return false
			}
		}
	}
	if f.Today && a.SlotDate() != now.Format("2006-01-02") {
		return false
	}
	if f.StartAt != "" && a.SlotDate() < f.StartAt {
		return false
	}
	if f.EndAt != "" && a.SlotDate() > f.EndAt {
		return false
	}
	return true
}
