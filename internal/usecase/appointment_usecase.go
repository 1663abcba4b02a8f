package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"medappoint-backend/internal/converter"
	"medappoint-backend/internal/delivery/dto"
	"medappoint-backend/internal/delivery/http/middleware"
	"medappoint-backend/internal/domain/entity"
	"medappoint-backend/internal/domain/repository"
	"medappoint-backend/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrDoctorNotFound             = errors.New("doctor not found")
	ErrPatientNotFound            = errors.New("patient not found")
	ErrSlotNotBookable            = errors.New("slot is not offered or not open for booking")
	ErrSlotTaken                  = errors.New("slot is no longer available, please pick another")
	ErrInvalidTransition          = errors.New("illegal status transition")
	ErrCancellationReasonRequired = errors.New("cancellation reason is required")
	ErrAppointmentNotDue          = errors.New("appointment cannot start before its scheduled time")
	ErrAppointmentNotPast         = errors.New("appointment date has not passed yet")
	ErrNotAppointmentDoctor       = errors.New("only the target doctor can perform this action")
	ErrAppointmentNotOwned        = errors.New("appointment does not belong to you")
	ErrPaymentNotPending          = errors.New("payment is not in pending status")
)

// AppointmentUsecase owns the appointment lifecycle: creation against a
// published slot and every legal status transition with its side effects.
// Slot status and appointment status are only ever mutated here, inside
// database transactions; clients merely propose transitions.
type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	Start(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Pay(ctx context.Context, id uuid.UUID, method string) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	patientRepo     repository.PatientProfileRepository
	slotHold        *service.SlotHoldService
	audit           service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	slotHold *service.SlotHoldService,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		slotHold:        slotHold,
		audit:           audit,
	}
}

// Create books an appointment against an open slot.
//
// Flow:
//  1. Assemble and validate the request (pure, no side effects)
//  2. Resolve patient and doctor, check the slot is bookable
//  3. Acquire a short-lived Redis hold on the slot (serializes racing clients)
//  4. Transaction: lock the doctor row, re-check bookability, flip the slot
//     pending -> booked, insert the appointment, write the audit entry
//  5. Release the hold
//
// The partial unique index on (doctor_id, appointment_date) catches whatever
// slips past the hold, surfacing as ErrSlotTaken.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	// Patients always book for themselves; doctors may book on behalf of a
	// patient, and those appointments start out scheduled rather than requested.
	input := &AppointmentInput{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		SlotDate:        req.SlotDate,
		SlotTime:        req.SlotTime,
		AppointmentDate: req.AppointmentDate,
		AppointmentType: req.AppointmentType,
		ReasonForVisit:  req.ReasonForVisit,
		DurationMinutes: req.DurationMinutes,
		ConsultationFee: req.ConsultationFee,
		Notes:           req.Notes,
		CreatedByUserID: userID,
	}
	if roleID != entity.RoleIDDoctor {
		input.PatientID = userID.String()
	}

	appointment, validationErrs := BuildAppointmentRequest(input)
	if len(validationErrs) > 0 {
		return nil, validationErrs
	}
	if roleID == entity.RoleIDDoctor {
		appointment.Status = entity.AppointmentStatusScheduled
	}

	// Resolve patient identity
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), appointment.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", appointment.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Resolve doctor and check the slot is offered and open
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	now := time.Now().UTC()
	if !doctor.ConsultationHours.IsBookable(req.SlotDate, req.SlotTime, now) {
		if slotExistsBooked(doctor.ConsultationHours, req.SlotDate, req.SlotTime) {
			return nil, ErrSlotTaken
		}
		return nil, ErrSlotNotBookable
	}
	if appointment.ConsultationFee == 0 {
		appointment.ConsultationFee = doctor.ConsultationFee
	}

	// Redis hold: the losing side of a race fails fast with a distinct,
	// user-actionable error instead of burning a transaction.
	holdToken, err := u.slotHold.Acquire(ctx, appointment.DoctorID, req.SlotDate, req.SlotTime)
	if err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to acquire slot hold for doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if releaseErr := u.slotHold.Release(releaseCtx, appointment.DoctorID, req.SlotDate, req.SlotTime, holdToken); releaseErr != nil {
			u.log.Warnf("Failed to release slot hold for doctor %s (non-fatal): %+v", appointment.DoctorID, releaseErr)
		}
	}()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Re-check under the row lock: the cached calendar read above may be stale
	lockedDoctor, err := u.doctorRepo.FindByUserIDForUpdate(tx, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	if lockedDoctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !lockedDoctor.ConsultationHours.IsBookable(req.SlotDate, req.SlotTime, now) {
		return nil, ErrSlotTaken
	}

	if !lockedDoctor.ConsultationHours.ClaimSlot(req.SlotDate, req.SlotTime) {
		return nil, ErrSlotTaken
	}
	if err := u.doctorRepo.UpdateConsultationHours(tx, appointment.DoctorID, lockedDoctor.ConsultationHours); err != nil {
		u.log.Warnf("Failed to update consultation hours for doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		u.log.Errorf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	if err := u.audit.LogTransition(tx, &userID, entity.AuditActionAppointmentCreate, appointment.ID.String(), "", string(appointment.Status)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit booking transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s %s", appointment.ID, appointment.DoctorID, req.SlotDate, req.SlotTime)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Confirm moves a requested or scheduled appointment to confirmed. Only the
// target doctor may confirm. Repeating the call on an already-confirmed
// appointment is a no-op success.
func (u *appointmentUsecase) Confirm(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != userID {
		return nil, ErrNotAppointmentDoctor
	}

	if appointment.Status == entity.AppointmentStatusConfirmed {
		return converter.AppointmentToResponse(appointment), nil
	}
	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	from := []entity.AppointmentStatus{entity.AppointmentStatusRequested, entity.AppointmentStatusScheduled}
	return u.applyTransition(ctx, appointment, userID, entity.AuditActionAppointmentConfirm, from, entity.AppointmentStatusConfirmed, nil)
}

// Cancel moves an appointment to cancelled and releases its slot back to
// pending. A second cancel on an already-cancelled appointment is a no-op
// success, so duplicate clicks and client retries are harmless.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancellationReasonRequired
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if roleID != entity.RoleIDAdmin && appointment.PatientID != userID && appointment.DoctorID != userID {
		return ErrAppointmentNotOwned
	}

	if appointment.Status == entity.AppointmentStatusCancelled {
		return nil
	}
	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusCancelled) {
		return ErrInvalidTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, id, entity.CancellableStatuses(), entity.AppointmentStatusCancelled,
		map[string]interface{}{"cancellation_reason": reason})
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		// Lost a race: reload outside the transaction and decide
		tx.Rollback()
		return u.resolveLostRace(ctx, id, entity.AppointmentStatusCancelled)
	}

	if err := u.releaseSlot(tx, appointment); err != nil {
		return err
	}

	if err := u.audit.LogTransition(tx, &userID, entity.AuditActionAppointmentCancel, id.String(), string(appointment.Status), string(entity.AppointmentStatusCancelled)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit cancellation: %+v", err)
		return err
	}

	u.log.Infof("Appointment cancelled: id=%s, reason=%q", id, reason)
	return nil
}

// Start moves a confirmed appointment to in_progress once its scheduled time
// has arrived.
func (u *appointmentUsecase) Start(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != userID {
		return nil, ErrNotAppointmentDoctor
	}
	if appointment.AppointmentDate.After(time.Now().UTC()) {
		return nil, ErrAppointmentNotDue
	}
	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusInProgress) {
		return nil, ErrInvalidTransition
	}

	from := []entity.AppointmentStatus{entity.AppointmentStatusConfirmed}
	return u.applyTransition(ctx, appointment, userID, entity.AuditActionAppointmentStart, from, entity.AppointmentStatusInProgress, nil)
}

// Complete moves an in-progress appointment to completed. Payment collection
// is a separate, payment-collaborator-owned action (see Pay).
func (u *appointmentUsecase) Complete(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != userID {
		return nil, ErrNotAppointmentDoctor
	}
	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	from := []entity.AppointmentStatus{entity.AppointmentStatusInProgress}
	return u.applyTransition(ctx, appointment, userID, entity.AuditActionAppointmentComplete, from, entity.AppointmentStatusCompleted, nil)
}

// MarkNoShow records that the patient never turned up. The slot stays booked
// so the historical record is retained.
func (u *appointmentUsecase) MarkNoShow(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != userID {
		return nil, ErrNotAppointmentDoctor
	}
	if !appointment.IsPast(time.Now().UTC()) {
		return nil, ErrAppointmentNotPast
	}
	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusNoShow) {
		return nil, ErrInvalidTransition
	}

	return u.applyTransition(ctx, appointment, userID, entity.AuditActionAppointmentNoShow, entity.NoShowStatuses(), entity.AppointmentStatusNoShow, nil)
}

// Delete is the administrative removal. Unless the appointment already
// completed, its slot is released back to pending. Deleting a missing
// appointment is a no-op success.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return nil
	}

	if appointment.Status != entity.AppointmentStatusCompleted {
		if err := u.releaseSlot(tx, appointment); err != nil {
			return err
		}
	}

	if err := u.audit.LogTransition(tx, &userID, entity.AuditActionAppointmentDelete, id.String(), string(appointment.Status), "removed"); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit deletion: %+v", err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

// Pay records payment collection against the appointment. The lifecycle
// status is untouched; payment_status is its own small state machine.
func (u *appointmentUsecase) Pay(ctx context.Context, id uuid.UUID, method string) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointment, err := u.findVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.PaymentStatus == entity.PaymentStatusPaid {
		return converter.AppointmentToResponse(appointment), nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdatePaymentStatus(tx, id, entity.PaymentStatusPending, entity.PaymentStatusPaid)
	if err != nil {
		u.log.Warnf("Failed to update payment status for %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrPaymentNotPending
	}

	if err := u.audit.LogAction(tx, &userID, entity.AuditActionAppointmentPay, "appointment", id.String(), entity.JSON{"payment_method": method}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit payment: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil || full == nil {
		appointment.PaymentStatus = entity.PaymentStatusPaid
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// findVisible loads an appointment and enforces actor scoping: patients and
// doctors only see their own, admins see everything.
func (u *appointmentUsecase) findVisible(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if roleID != entity.RoleIDAdmin && appointment.PatientID != userID && appointment.DoctorID != userID {
		return nil, ErrAppointmentNotOwned
	}
	return appointment, nil
}

// applyTransition performs a conditional status update plus audit entry in
// one transaction, then reloads. A zero-row update means another client got
// there first; the reload decides between idempotent success and a genuine
// precondition failure.
func (u *appointmentUsecase) applyTransition(
	ctx context.Context,
	appointment *entity.Appointment,
	actor uuid.UUID,
	action string,
	from []entity.AppointmentStatus,
	to entity.AppointmentStatus,
	updates map[string]interface{},
) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.UpdateStatus(tx, appointment.ID, from, to, updates)
	if err != nil {
		u.log.Warnf("Failed to transition appointment %s to %s: %+v", appointment.ID, to, err)
		return nil, err
	}
	if rows == 0 {
		tx.Rollback()
		if err := u.resolveLostRace(ctx, appointment.ID, to); err != nil {
			return nil, err
		}
		reloaded, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
		if err != nil || reloaded == nil {
			return nil, ErrAppointmentNotFound
		}
		return converter.AppointmentToResponse(reloaded), nil
	}

	if err := u.audit.LogTransition(tx, &actor, action, appointment.ID.String(), string(appointment.Status), string(to)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transition: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %s: %s -> %s", appointment.ID, appointment.Status, to)

	reloaded, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || reloaded == nil {
		appointment.Status = to
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(reloaded), nil
}

// resolveLostRace reloads after a zero-row conditional update: landing on the
// target status means someone else applied the same transition (idempotent
// success); anything else is a precondition failure.
func (u *appointmentUsecase) resolveLostRace(ctx context.Context, id uuid.UUID, to entity.AppointmentStatus) error {
	current, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrAppointmentNotFound
	}
	if current.Status == to {
		return nil
	}
	return ErrInvalidTransition
}

// releaseSlot flips the consumed slot back to pending under the doctor row
// lock. A slot that is no longer booked (e.g. the doctor republished the
// calendar) is left alone.
func (u *appointmentUsecase) releaseSlot(tx *gorm.DB, appointment *entity.Appointment) error {
	doctor, err := u.doctorRepo.FindByUserIDForUpdate(tx, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor %s for slot release: %+v", appointment.DoctorID, err)
		return err
	}
	if doctor == nil {
		return nil
	}
	if !doctor.ConsultationHours.ReleaseSlot(appointment.SlotDate(), appointment.SlotTime()) {
		u.log.Warnf("Slot %s %s for doctor %s was not booked at release time", appointment.SlotDate(), appointment.SlotTime(), appointment.DoctorID)
		return nil
	}
	if err := u.doctorRepo.UpdateConsultationHours(tx, appointment.DoctorID, doctor.ConsultationHours); err != nil {
		u.log.Warnf("Failed to release slot for doctor %s: %+v", appointment.DoctorID, err)
		return err
	}
	return nil
}

// slotExistsBooked reports whether the slot is present but already consumed,
// so stale-selection races get their own error
func slotExistsBooked(cal entity.AvailabilityCalendar, date, slotTime string) bool {
	day, ok := cal[date]
	if !ok {
		return false
	}
	for _, s := range day.Slots {
		if s.Time == slotTime {
			return s.Status == entity.SlotStatusBooked
		}
	}
	return false
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}
