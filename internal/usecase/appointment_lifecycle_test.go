package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"medappoint-backend/internal/delivery/http/middleware"
	"medappoint-backend/internal/domain/entity"
	"medappoint-backend/internal/domain/repository"
	"medappoint-backend/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	_ repository.AppointmentRepository   = (*fakeAppointmentRepo)(nil)
	_ repository.DoctorProfileRepository = (*fakeDoctorRepo)(nil)
	_ service.AuditService               = (*fakeAuditService)(nil)
)

// fakeAppointmentRepo keeps appointments in a map and mirrors the
// conditional-update contract of the real repository: a status update only
// lands when the current status is in the from-set, and the affected row
// count says whether it did.
type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
	beforeUpdate func()
}

func newFakeAppointmentRepo(appointments ...*entity.Appointment) *fakeAppointmentRepo {
	r := &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
	for _, a := range appointments {
		r.appointments[a.ID] = a
	}
	return r
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter, now time.Time) ([]entity.Appointment, int64, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if filter.Matches(a, now) {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus, updates map[string]interface{}) (int64, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	a, ok := r.appointments[id]
	if !ok {
		return 0, nil
	}
	eligible := false
	for _, s := range from {
		if a.Status == s {
			eligible = true
			break
		}
	}
	if !eligible {
		return 0, nil
	}
	a.Status = to
	if reason, ok := updates["cancellation_reason"].(string); ok {
		a.CancellationReason = reason
	}
	return 1, nil
}

func (r *fakeAppointmentRepo) UpdatePaymentStatus(db *gorm.DB, id uuid.UUID, from, to entity.PaymentStatus) (int64, error) {
	a, ok := r.appointments[id]
	if !ok || a.PaymentStatus != from {
		return 0, nil
	}
	a.PaymentStatus = to
	return 1, nil
}

func (r *fakeAppointmentRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*entity.DoctorProfile
}

func newFakeDoctorRepo(doctors ...*entity.DoctorProfile) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: map[uuid.UUID]*entity.DoctorProfile{}}
	for _, d := range doctors {
		r.doctors[d.UserID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	r.doctors[profile.UserID] = profile
	return nil
}

func (r *fakeDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	d, ok := r.doctors[userID]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDoctorRepo) FindByUserIDForUpdate(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return r.FindByUserID(db, userID)
}

func (r *fakeDoctorRepo) FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) UpdateConsultationHours(db *gorm.DB, userID uuid.UUID, hours entity.AvailabilityCalendar) error {
	d, ok := r.doctors[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.ConsultationHours = hours
	return nil
}

type fakeAuditService struct {
	actions []string
	err     error
}

func (s *fakeAuditService) LogTransition(tx *gorm.DB, userID *uuid.UUID, action string, appointmentID string, oldStatus, newStatus string) error {
	if s.err != nil {
		return s.err
	}
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) LogAction(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, detail entity.JSON) error {
	if s.err != nil {
		return s.err
	}
	s.actions = append(s.actions, action)
	return nil
}

// newTransitionDB wires gorm over sqlmock so transaction begin/commit/rollback
// run for real while all data access goes through the fakes.
func newTransitionDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func actorContext(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

type lifecycleFixture struct {
	uc          AppointmentUsecase
	mock        sqlmock.Sqlmock
	repo        *fakeAppointmentRepo
	doctorRepo  *fakeDoctorRepo
	audit       *fakeAuditService
	appointment *entity.Appointment
	doctorID    uuid.UUID
	patientID   uuid.UUID
}

// newLifecycleFixture builds an appointment in the given status whose slot
// (2025-03-10 09:00 UTC) is booked on the doctor's calendar. The stored
// timestamp carries a non-UTC offset, the way a row comes back from a
// database session pinned to another zone.
func newLifecycleFixture(t *testing.T, status entity.AppointmentStatus) *lifecycleFixture {
	t.Helper()

	db, mock := newTransitionDB(t)
	doctorID := uuid.New()
	patientID := uuid.New()

	doctor := &entity.DoctorProfile{
		UserID: doctorID,
		ConsultationHours: entity.AvailabilityCalendar{
			"2025-03-10": entity.DaySchedule{
				Available: true,
				Slots: []entity.Slot{
					{Time: "09:00", Status: entity.SlotStatusBooked},
					{Time: "09:30", Status: entity.SlotStatusPending},
				},
			},
		},
	}

	paris := time.FixedZone("CET", 3600)
	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC).In(paris),
		AppointmentType: entity.AppointmentTypePresentiel,
		ReasonForVisit:  "checkup",
		Status:          status,
		PaymentStatus:   entity.PaymentStatusPending,
	}

	repo := newFakeAppointmentRepo(appointment)
	doctorRepo := newFakeDoctorRepo(doctor)
	audit := &fakeAuditService{}
	uc := NewAppointmentUsecase(db, logrus.New(), repo, doctorRepo, nil, nil, audit)

	return &lifecycleFixture{
		uc:          uc,
		mock:        mock,
		repo:        repo,
		doctorRepo:  doctorRepo,
		audit:       audit,
		appointment: appointment,
		doctorID:    doctorID,
		patientID:   patientID,
	}
}

func (f *lifecycleFixture) slotStatus(t *testing.T) entity.SlotStatus {
	t.Helper()
	doctor := f.doctorRepo.doctors[f.doctorID]
	for _, s := range doctor.ConsultationHours["2025-03-10"].Slots {
		if s.Time == "09:00" {
			return s.Status
		}
	}
	t.Fatal("slot 09:00 missing from calendar")
	return ""
}

func TestConfirmMovesRequestedToConfirmed(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusRequested)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.uc.Confirm(actorContext(f.doctorID, entity.RoleIDDoctor), f.appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)
	assert.Equal(t, entity.AppointmentStatusConfirmed, f.repo.appointments[f.appointment.ID].Status)
	assert.Equal(t, []string{entity.AuditActionAppointmentConfirm}, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestConfirmAgainIsNoOpSuccess(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusConfirmed)

	// no transaction expected at all
	resp, err := f.uc.Confirm(actorContext(f.doctorID, entity.RoleIDDoctor), f.appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)
	assert.Empty(t, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestConfirmByAnotherDoctorRejected(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusRequested)

	_, err := f.uc.Confirm(actorContext(uuid.New(), entity.RoleIDDoctor), f.appointment.ID)

	assert.ErrorIs(t, err, ErrNotAppointmentDoctor)
	assert.Equal(t, entity.AppointmentStatusRequested, f.repo.appointments[f.appointment.ID].Status)
}

func TestConfirmCompletedRejected(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusCompleted)

	_, err := f.uc.Confirm(actorContext(f.doctorID, entity.RoleIDDoctor), f.appointment.ID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelReleasesSlot(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusScheduled)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	err := f.uc.Cancel(actorContext(f.patientID, entity.RoleIDPatient), f.appointment.ID, "conflicting meeting")

	require.NoError(t, err)
	stored := f.repo.appointments[f.appointment.ID]
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
	assert.Equal(t, "conflicting meeting", stored.CancellationReason)
	// the slot goes back to pending even though the stored timestamp came
	// back in a non-UTC session zone
	assert.Equal(t, entity.SlotStatusPending, f.slotStatus(t))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCancelAgainIsNoOpSuccess(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusCancelled)

	err := f.uc.Cancel(actorContext(f.patientID, entity.RoleIDPatient), f.appointment.ID, "changed my mind")

	require.NoError(t, err)
	assert.Empty(t, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCancelRequiresReason(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusScheduled)

	assert.ErrorIs(t, f.uc.Cancel(actorContext(f.patientID, entity.RoleIDPatient), f.appointment.ID, ""), ErrCancellationReasonRequired)
	assert.ErrorIs(t, f.uc.Cancel(actorContext(f.patientID, entity.RoleIDPatient), f.appointment.ID, "   "), ErrCancellationReasonRequired)
	assert.Equal(t, entity.AppointmentStatusScheduled, f.repo.appointments[f.appointment.ID].Status)
}

func TestCancelCompletedRejected(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusCompleted)

	err := f.uc.Cancel(actorContext(f.patientID, entity.RoleIDPatient), f.appointment.ID, "too late")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, entity.SlotStatusBooked, f.slotStatus(t))
}

func TestCancelByStrangerRejected(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusScheduled)

	err := f.uc.Cancel(actorContext(uuid.New(), entity.RoleIDPatient), f.appointment.ID, "not mine")

	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCancelLostRaceResolvesIdempotently(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusConfirmed)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	// another client cancels between the load and the conditional update
	f.repo.beforeUpdate = func() {
		f.repo.appointments[f.appointment.ID].Status = entity.AppointmentStatusCancelled
	}

	err := f.uc.Cancel(actorContext(f.patientID, entity.RoleIDPatient), f.appointment.ID, "double click")

	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestMarkNoShowKeepsSlotBooked(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusScheduled)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.uc.MarkNoShow(actorContext(f.doctorID, entity.RoleIDDoctor), f.appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusNoShow), resp.Status)
	assert.Equal(t, entity.SlotStatusBooked, f.slotStatus(t))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestMarkNoShowBeforeAppointmentDateRejected(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusScheduled)
	f.appointment.AppointmentDate = time.Now().UTC().Add(48 * time.Hour)
	f.repo.appointments[f.appointment.ID] = f.appointment

	_, err := f.uc.MarkNoShow(actorContext(f.doctorID, entity.RoleIDDoctor), f.appointment.ID)

	assert.ErrorIs(t, err, ErrAppointmentNotPast)
	assert.Equal(t, entity.AppointmentStatusScheduled, f.repo.appointments[f.appointment.ID].Status)
}

func TestTransitionAbortsWhenAuditWriteFails(t *testing.T) {
	f := newLifecycleFixture(t, entity.AppointmentStatusRequested)
	f.audit.err = errors.New("audit insert failed")
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.uc.Confirm(actorContext(f.doctorID, entity.RoleIDDoctor), f.appointment.ID)

	assert.ErrorIs(t, err, f.audit.err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
