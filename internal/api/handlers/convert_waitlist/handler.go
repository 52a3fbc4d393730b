package convert_waitlist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	convertWaitlist "github.com/m04kA/SMC-AppointmentService/internal/usecase/convert_waitlist"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidEntryID     = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgEntryNotFound      = "заявка не найдена или уже закрыта"
	msgStaffNotFound      = "сотрудник не найден"
	msgStaffRequired      = "не указан сотрудник"
	msgStaffInactive      = "сотрудник не принимает записи"
	msgDateInPast         = "нельзя предложить прошедшее время"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgInvalidRequest     = "некорректные параметры записи"
	msgServiceNotFound    = "услуга из заявки не найдена"
)

type Handler struct {
	useCase ConvertWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase ConvertWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/waitlist/{entryId}/convert
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/convert - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	entryID, err := handlers.PathInt64(r, "entryId")
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/convert - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var req ConvertWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist/{id}/convert - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID, entryID)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/convert - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, convertWaitlist.ErrSlotNotAvailable):
			h.logger.Warn("POST /waitlist/{id}/convert - Slot not available: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, convertWaitlist.ErrEntryNotFound):
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, convertWaitlist.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, convertWaitlist.ErrStaffRequired):
			handlers.RespondBadRequest(w, msgStaffRequired)

		case errors.Is(err, convertWaitlist.ErrStaffInactive):
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, convertWaitlist.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, domain.ErrBadRequest):
			h.logger.Warn("POST /waitlist/{id}/convert - Invalid request: entry_id=%d, error=%v", entryID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /waitlist/{id}/convert - Failed to convert entry: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/{id}/convert - Entry converted: entry_id=%d, appointment_id=%d", entryID, result.Appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
