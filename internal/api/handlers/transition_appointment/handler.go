package transition_appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

const (
	msgInvalidBusinessID    = "некорректный ID бизнеса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnknownAction        = "неизвестное действие"
	msgInvalidTransition    = "запись не найдена или действие недоступно в текущем статусе"
	msgInvalidParams        = "некорректные параметры действия"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/appointments/{appointmentId}/actions/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/actions - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/actions - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}
	action := mux.Vars(r)["action"]

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /appointments/{id}/actions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(businessID, appointmentID, action))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownAction):
			h.logger.Warn("POST /appointments/{id}/actions - Unknown action: %q", action)
			handlers.RespondBadRequest(w, msgUnknownAction)

		case errors.Is(err, transitionAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/actions - Transition rejected: appointment_id=%d, action=%s", appointmentID, action)
			handlers.RespondNotFound(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrBadRequest):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /appointments/{id}/actions - Failed to apply action: appointment_id=%d, action=%s, error=%v", appointmentID, action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/actions - Action applied: appointment_id=%d, action=%s, status=%s", appointmentID, action, appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(appointment))
}
