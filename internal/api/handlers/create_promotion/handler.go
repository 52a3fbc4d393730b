package create_promotion

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/discounts"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPeriod      = "некорректный период действия, ожидается RFC3339"
	msgInvalidPromotion   = "некорректные параметры промоакции"
	msgDuplicateCode      = "промокод с таким кодом уже существует"
)

type Handler struct {
	service DiscountService
	logger  Logger
}

func NewHandler(service DiscountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/promotions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /promotions - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promotions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(businessID)
	if err != nil {
		h.logger.Warn("POST /promotions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	promotion, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, discounts.ErrDuplicateCode):
			h.logger.Warn("POST /promotions - Duplicate code: business_id=%d, code=%s", businessID, req.Code)
			handlers.RespondConflict(w, msgDuplicateCode)
		case errors.Is(err, discounts.ErrInvalidInput):
			h.logger.Warn("POST /promotions - Invalid promotion: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidPromotion)
		default:
			h.logger.Error("POST /promotions - Failed to create promotion: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promotions - Promotion created: promotion_id=%d, business_id=%d, code=%s", promotion.ID, businessID, promotion.Code)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromPromotion(promotion))
}
