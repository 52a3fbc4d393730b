package cancel_waitlist_entry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/waitlist"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidEntryID    = "некорректный ID заявки"
	msgEntryNotFound     = "заявка не найдена или уже закрыта"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/businesses/{businessId}/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("DELETE /waitlist/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	entryID, err := handlers.PathInt64(r, "entryId")
	if err != nil {
		h.logger.Warn("DELETE /waitlist/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	if err := h.service.Cancel(r.Context(), businessID, entryID); err != nil {
		if errors.Is(err, waitlist.ErrEntryNotFound) {
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("DELETE /waitlist/{id} - Failed to cancel entry: entry_id=%d, error=%v", entryID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Entry cancelled: entry_id=%d", entryID)
	w.WriteHeader(http.StatusNoContent)
}
