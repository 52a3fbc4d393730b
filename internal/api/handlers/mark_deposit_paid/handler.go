package mark_deposit_paid

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidBusinessID    = "некорректный ID бизнеса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgNoDeposit            = "для записи не требуется депозит"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments/{appointmentId}/deposit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/deposit - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/deposit - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	appointment, err := h.service.MarkDepositPaid(r.Context(), businessID, appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointments.ErrNoDeposit):
			h.logger.Warn("POST /appointments/{id}/deposit - No deposit: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgNoDeposit)
		default:
			h.logger.Error("POST /appointments/{id}/deposit - Failed to mark deposit: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/deposit - Deposit marked as paid: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(appointment))
}
