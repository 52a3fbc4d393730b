package validate_discount

import "github.com/m04kA/SMC-AppointmentService/internal/service/discounts"

// ValidateDiscountRequest HTTP request model
type ValidateDiscountRequest struct {
	Code       string  `json:"code"`
	Subtotal   float64 `json:"subtotal"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// ValidateDiscountResponse HTTP response model; reason заполняется, когда код не применился
type ValidateDiscountResponse struct {
	Applicable     bool    `json:"applicable"`
	Reason         string  `json:"reason,omitempty"`
	PromotionID    int64   `json:"promotionId"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	FinalAmount    float64 `json:"finalAmount"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ValidateDiscountRequest) ToServiceRequest(businessID int64) discounts.ValidateRequest {
	return discounts.ValidateRequest{
		BusinessID: businessID,
		Code:       r.Code,
		Subtotal:   r.Subtotal,
		ServiceIDs: r.ServiceIDs,
	}
}

// FromValidateResult конвертирует результат проверки в HTTP ответ
func FromValidateResult(res *discounts.ValidateResult) *ValidateDiscountResponse {
	return &ValidateDiscountResponse{
		Applicable:     res.Applicable,
		Reason:         string(res.Reason),
		PromotionID:    res.Promotion.ID,
		Code:           res.Promotion.Code,
		DiscountAmount: res.DiscountAmount,
		FinalAmount:    res.FinalAmount,
	}
}
