package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medappoint-backend/internal/delivery/dto"
	"medappoint-backend/internal/delivery/http/middleware"
	"medappoint-backend/internal/domain/entity"
	"medappoint-backend/internal/domain/repository"
	"medappoint-backend/internal/scheduling"
	"medappoint-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidCalendar = errors.New("invalid availability calendar")
)

// AvailabilityUsecase exposes a doctor's published calendar, both raw (for
// the doctor editing it) and reduced to bookable days (for patients picking
// a slot).
type AvailabilityUsecase interface {
	GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	PublishAvailability(ctx context.Context, req *dto.PublishAvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorProfileRepository
	audit      service.AuditService
}

func NewAvailabilityUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorProfileRepository, audit service.AuditService) AvailabilityUsecase {
	return &availabilityUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
		audit:      audit,
	}
}

func (u *availabilityUsecase) GetDoctorAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return &dto.AvailabilityResponse{
		DoctorID:          doctor.UserID,
		ConsultationHours: doctor.ConsultationHours,
		BookableDays:      scheduling.ListBookableDays(doctor.ConsultationHours, time.Now().UTC()),
	}, nil
}

// PublishAvailability replaces the calling doctor's calendar wholesale.
// Slots already booked in the stored calendar keep their booked status when
// the same day/time is republished, so an edit never silently frees a slot
// that has a live appointment on it.
func (u *availabilityUsecase) PublishAvailability(ctx context.Context, req *dto.PublishAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	calendar, err := buildCalendar(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByUserIDForUpdate(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor %s: %+v", userID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	carryBookedSlots(doctor.ConsultationHours, calendar)

	if err := u.doctorRepo.UpdateConsultationHours(tx, userID, calendar); err != nil {
		u.log.Warnf("Failed to publish availability for doctor %s: %+v", userID, err)
		return nil, err
	}

	if err := u.audit.LogAction(tx, &userID, entity.AuditActionAvailabilityPublish, "doctor_profile", userID.String(),
		entity.JSON{"days": len(calendar)}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit availability publish: %+v", err)
		return nil, err
	}

	u.log.Infof("Availability published: doctor=%s, days=%d", userID, len(calendar))

	return &dto.AvailabilityResponse{
		DoctorID:          userID,
		ConsultationHours: calendar,
		BookableDays:      scheduling.ListBookableDays(calendar, time.Now().UTC()),
	}, nil
}

// buildCalendar validates and converts the publish request. Date keys must
// be YYYY-MM-DD, slot times must be HH:MM, and a day may not list the same
// time twice.
func buildCalendar(req *dto.PublishAvailabilityRequest) (entity.AvailabilityCalendar, error) {
	calendar := make(entity.AvailabilityCalendar, len(req.ConsultationHours))
	for date, day := range req.ConsultationHours {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("%w: bad date key %q", ErrInvalidCalendar, date)
		}
		seen := make(map[string]bool, len(day.Slots))
		slots := make([]entity.Slot, 0, len(day.Slots))
		for _, s := range day.Slots {
			if _, err := time.Parse("15:04", s.Time); err != nil {
				return nil, fmt.Errorf("%w: bad slot time %q on %s", ErrInvalidCalendar, s.Time, date)
			}
			if seen[s.Time] {
				return nil, fmt.Errorf("%w: duplicate slot %q on %s", ErrInvalidCalendar, s.Time, date)
			}
			seen[s.Time] = true

			status := entity.SlotStatus(s.Status)
			if status == "" {
				status = entity.SlotStatusPending
			}
			if status != entity.SlotStatusPending && status != entity.SlotStatusBlocked {
				return nil, fmt.Errorf("%w: slot status %q on %s is not publishable", ErrInvalidCalendar, s.Status, date)
			}
			slots = append(slots, entity.Slot{Time: s.Time, Status: status})
		}
		calendar[date] = entity.DaySchedule{Available: day.Available, Slots: slots}
	}
	return calendar, nil
}

// carryBookedSlots copies booked status from the stored calendar into the
// incoming one wherever the same day/time reappears.
func carryBookedSlots(stored, incoming entity.AvailabilityCalendar) {
	for date, oldDay := range stored {
		newDay, ok := incoming[date]
		if !ok {
			continue
		}
		booked := make(map[string]bool)
		for _, s := range oldDay.Slots {
			if s.Status == entity.SlotStatusBooked {
				booked[s.Time] = true
			}
		}
		if len(booked) == 0 {
			continue
		}
		for i, s := range newDay.Slots {
			if booked[s.Time] {
				newDay.Slots[i].Status = entity.SlotStatusBooked
			}
		}
		incoming[date] = newDay
	}
}
