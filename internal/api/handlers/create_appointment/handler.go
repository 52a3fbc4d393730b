package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgDateInPast          = "нельзя записаться на прошедшее время"
	msgStaffNotFound       = "сотрудник не найден"
	msgStaffInactive       = "сотрудник не принимает записи"
	msgPromotionNotApplies = "промокод не подходит к записи"
	msgNotFound            = "услуга или промокод не найдены"
	msgInvalidAppointment  = "некорректные параметры записи"
	msgPromotionUsedUp     = "лимит использований промокода исчерпан"
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

// Handle POST /api/v1/businesses/{businessId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID, clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err, businessID, clientID)
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, business_id=%d, client_id=%d",
		result.Appointment.ID, businessID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, businessID, clientID int64) {
	switch {
	case errors.Is(err, createAppointment.ErrSlotNotAvailable):
		h.logger.Warn("POST /appointments - Slot not available: business_id=%d, client_id=%d", businessID, clientID)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, domain.ErrConflict):
		h.logger.Warn("POST /appointments - Promotion exhausted: business_id=%d, error=%v", businessID, err)
		handlers.RespondConflict(w, msgPromotionUsedUp)

	case errors.Is(err, createAppointment.ErrDateInPast):
		handlers.RespondBadRequest(w, msgDateInPast)

	case errors.Is(err, createAppointment.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, createAppointment.ErrStaffInactive):
		handlers.RespondBadRequest(w, msgStaffInactive)

	case errors.Is(err, createAppointment.ErrPromotionNotApplicable):
		handlers.RespondBadRequest(w, msgPromotionNotApplies)

	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("POST /appointments - Not found: business_id=%d, error=%v", businessID, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrBadRequest):
		h.logger.Warn("POST /appointments - Invalid appointment: business_id=%d, error=%v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidAppointment)

	default:
		h.logger.Error("POST /appointments - Failed to create appointment: business_id=%d, client_id=%d, error=%v",
			businessID, clientID, err)
		handlers.RespondInternalError(w)
	}
}
