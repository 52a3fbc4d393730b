package get_waitlist_entry

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/waitlist"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidEntryID    = "некорректный ID заявки"
	msgEntryNotFound     = "заявка не найдена"
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

// Handle GET /api/v1/businesses/{businessId}/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /waitlist/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	entryID, err := handlers.PathInt64(r, "entryId")
	if err != nil {
		h.logger.Warn("GET /waitlist/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	entry, err := h.service.GetByID(r.Context(), businessID, entryID)
	if err != nil {
		if errors.Is(err, waitlist.ErrEntryNotFound) {
			handlers.RespondNotFound(w, msgEntryNotFound)
			return
		}
		h.logger.Error("GET /waitlist/{id} - Failed to get entry: entry_id=%d, error=%v", entryID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromWaitlistEntry(entry))
}
