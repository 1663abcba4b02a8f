package usecase

import (
	"context"
	"errors"
	"time"

	"medappoint-backend/internal/converter"
	"medappoint-backend/internal/delivery/dto"
	"medappoint-backend/internal/delivery/http/middleware"
	"medappoint-backend/internal/domain/entity"
	"medappoint-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentQueryUsecase serves read-side listings. Filters compose
// conjunctively, results are paged, and every listing is scoped to what the
// requesting actor is allowed to see.
type AppointmentQueryUsecase interface {
	List(ctx context.Context, query *dto.AppointmentQuery) (*dto.AppointmentListResponse, error)
	PendingRequests(ctx context.Context, page, limit int) (*dto.AppointmentListResponse, error)
}

type appointmentQueryUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
}

func NewAppointmentQueryUsecase(db *gorm.DB, log *logrus.Logger, appointmentRepo repository.AppointmentRepository) AppointmentQueryUsecase {
	return &appointmentQueryUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
	}
}

// List returns a page of appointments matching the query. Patients are
// pinned to their own appointments and doctors to their own schedule; only
// admins may roam with explicit doctor_id / patient_id filters.
func (u *appointmentQueryUsecase) List(ctx context.Context, query *dto.AppointmentQuery) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	filter := &entity.AppointmentFilter{
		Upcoming: query.Upcoming,
		Today:    query.Today,
		StartAt:  query.StartAt,
		EndAt:    query.EndAt,
		Page:     query.Page,
		Limit:    query.Limit,
	}
	if query.Status != "" {
		status := entity.AppointmentStatus(query.Status)
		if !status.IsValid() {
			return nil, ErrInvalidStatusFilter
		}
		filter.Status = status
	}

	switch roleID {
	case entity.RoleIDPatient:
		filter.PatientID = userID
	case entity.RoleIDDoctor:
		filter.DoctorID = userID
	default:
		if query.DoctorID != "" {
			doctorID, err := uuid.Parse(query.DoctorID)
			if err != nil {
				return nil, ErrInvalidIDFilter
			}
			filter.DoctorID = doctorID
		}
		if query.PatientID != "" {
			patientID, err := uuid.Parse(query.PatientID)
			if err != nil {
				return nil, ErrInvalidIDFilter
			}
			filter.PatientID = patientID
		}
	}
	filter.Normalize()

	appointments, total, err := u.appointmentRepo.FindWithFilter(u.db.WithContext(ctx), filter, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return buildListResponse(appointments, total, filter), nil
}

// PendingRequests is the doctor's incoming queue: every appointment still in
// requested status against their schedule, oldest slot first.
func (u *appointmentQueryUsecase) PendingRequests(ctx context.Context, page, limit int) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	filter := &entity.AppointmentFilter{
		Status:   entity.AppointmentStatusRequested,
		DoctorID: userID,
		Page:     page,
		Limit:    limit,
	}
	filter.Normalize()

	appointments, total, err := u.appointmentRepo.FindWithFilter(u.db.WithContext(ctx), filter, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to list pending requests for doctor %s: %+v", userID, err)
		return nil, err
	}

	return buildListResponse(appointments, total, filter), nil
}

func buildListResponse(appointments []entity.Appointment, total int64, filter *entity.AppointmentFilter) *dto.AppointmentListResponse {
	responses := converter.AppointmentsToResponses(appointments)

	lastPage := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		lastPage++
	}
	if lastPage == 0 {
		lastPage = 1
	}

	return &dto.AppointmentListResponse{
		Appointments: responses,
		CurrentPage:  filter.Page,
		LastPage:     lastPage,
		PerPage:      filter.Limit,
		Total:        total,
	}
}

var (
	ErrInvalidStatusFilter = errors.New("invalid status filter")
	ErrInvalidIDFilter     = errors.New("invalid id filter")
)
