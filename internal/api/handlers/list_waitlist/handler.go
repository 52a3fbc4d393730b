package list_waitlist

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidStaffID    = "некорректный ID сотрудника"
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

// Handle GET /api/v1/businesses/{businessId}/waitlist?staffId=5
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /waitlist - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	filter := domain.WaitlistFilter{BusinessID: businessID}
	if raw := r.URL.Query().Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			h.logger.Warn("GET /waitlist - Invalid staff ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		filter.StaffID = &staffID
	}

	entries, err := h.service.ListActive(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /waitlist - Failed to list entries: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromWaitlistEntries(entries))
}
