package create_manual_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgStaffNotFound      = "сотрудник не найден"
	msgNotFound           = "услуга или промокод не найдены"
	msgInvalidAppointment = "некорректные параметры записи"
	msgConflict           = "запись не может быть создана из-за конфликта"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments/manual
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /appointments/manual - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	var req ManualAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/manual - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /appointments/manual - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments/manual - Slot not available: business_id=%d, staff_id=%d", businessID, req.StaffID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, domain.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /appointments/manual - Not found: business_id=%d, error=%v", businessID, err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrBadRequest):
			h.logger.Warn("POST /appointments/manual - Invalid appointment: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidAppointment)

		default:
			h.logger.Error("POST /appointments/manual - Failed to create appointment: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/manual - Appointment created: appointment_id=%d, business_id=%d, by user_id=%d",
		result.Appointment.ID, businessID, userID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromAppointment(result.Appointment))
}
