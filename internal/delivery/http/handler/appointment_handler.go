package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"medappoint-backend/internal/delivery/dto"
	"medappoint-backend/internal/usecase"
	"medappoint-backend/pkg/response"
	"medappoint-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	queryUsecase       usecase.AppointmentQueryUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	queryUsecase usecase.AppointmentQueryUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		queryUsecase:       queryUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		var validationErrs usecase.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return
		}
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSlotNotBookable:
			response.Error(w, http.StatusBadRequest, "Slot is not offered or not open for booking", nil)
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Slot is no longer available, please pick another")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseAppointmentQuery(r)

	result, err := h.queryUsecase.List(r.Context(), query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidStatusFilter, usecase.ErrInvalidIDFilter:
			response.Error(w, http.StatusBadRequest, "Invalid filter parameter", nil)
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", result.Appointments, &response.Meta{
		CurrentPage: int64(result.CurrentPage),
		LastPage:    int64(result.LastPage),
		PerPage:     int64(result.PerPage),
		Total:       result.Total,
	})
}

func (h *AppointmentHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.queryUsecase.PendingRequests(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list pending requests")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Pending requests retrieved successfully", result.Appointments, &response.Meta{
		CurrentPage: int64(result.CurrentPage),
		LastPage:    int64(result.LastPage),
		PerPage:     int64(result.PerPage),
		Total:       result.Total,
	})
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Confirm(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to confirm appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment confirmed successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), id, req.CancellationReason); err != nil {
		h.writeLifecycleError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Start(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to start appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment started successfully", appointment)
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Complete(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to complete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.MarkNoShow(r.Context(), id)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to mark no-show")
		return
	}

	response.Success(w, http.StatusOK, "Appointment marked as no-show", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		h.writeLifecycleError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAppointmentID(w, r)
	if !ok {
		return
	}

	var req dto.PayAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Pay(r.Context(), id, req.PaymentMethod)
	if err != nil {
		h.writeLifecycleError(w, err, "Failed to record payment")
		return
	}

	response.Success(w, http.StatusOK, "Payment recorded successfully", appointment)
}

func (h *AppointmentHandler) writeLifecycleError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrAppointmentNotOwned:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrNotAppointmentDoctor:
		response.Forbidden(w, "Only the target doctor can perform this action")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "Appointment status does not allow this action")
	case usecase.ErrCancellationReasonRequired:
		response.Error(w, http.StatusBadRequest, "Cancellation reason is required", nil)
	case usecase.ErrAppointmentNotDue:
		response.Error(w, http.StatusBadRequest, "Appointment cannot start before its scheduled time", nil)
	case usecase.ErrAppointmentNotPast:
		response.Error(w, http.StatusBadRequest, "Appointment date has not passed yet", nil)
	case usecase.ErrPaymentNotPending:
		response.Conflict(w, "Payment is not in pending status")
	default:
		response.InternalServerError(w, fallback)
	}
}

func parseAppointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseAppointmentQuery(r *http.Request) *dto.AppointmentQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return &dto.AppointmentQuery{
		Status:    q.Get("status"),
		DoctorID:  q.Get("doctor_id"),
		PatientID: q.Get("patient_id"),
		Upcoming:  q.Get("upcoming") == "true",
		Today:     q.Get("today") == "true",
		StartAt:   q.Get("start_at"),
		EndAt:     q.Get("end_at"),
		Page:      page,
		Limit:     limit,
	}
}
