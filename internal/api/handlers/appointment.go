package handlers

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookedServiceResponse услуга в составе записи
type BookedServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// PricingResponse денежная часть записи
type PricingResponse struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	PromotionID    *int64  `json:"promotionId,omitempty"`
	Total          float64 `json:"total"`
	DepositAmount  float64 `json:"depositAmount"`
	DepositPaid    bool    `json:"depositPaid"`
	Tip            float64 `json:"tip"`
	FinalTotal     float64 `json:"finalTotal"`
}

// CancellationResponse запись об отмене
type CancellationResponse struct {
	CancelledAt  string  `json:"cancelledAt"`
	CancelledBy  string  `json:"cancelledBy"`
	Reason       *string `json:"reason,omitempty"`
	Refunded     bool    `json:"refunded"`
	RefundAmount float64 `json:"refundAmount"`
}

// AppointmentResponse запись в ответах API
type AppointmentResponse struct {
	ID              int64                   `json:"id"`
	BusinessID      int64                   `json:"businessId"`
	StaffID         int64                   `json:"staffId"`
	StaffName       string                  `json:"staffName"`
	ClientID        *int64                  `json:"clientId,omitempty"`
	ClientInfo      *string                 `json:"clientInfo,omitempty"`
	Date            string                  `json:"date"`
	StartTime       string                  `json:"startTime"`
	EndTime         string                  `json:"endTime"`
	StartAt         string                  `json:"startAt"`
	EndAt           string                  `json:"endAt"`
	TotalDuration   int                     `json:"totalDuration"`
	Services        []BookedServiceResponse `json:"services"`
	Pricing         PricingResponse         `json:"pricing"`
	Status          string                  `json:"status"`
	Source          string                  `json:"source"`
	WaitlistEntryID *int64                  `json:"waitlistEntryId,omitempty"`
	Notes           *string                 `json:"notes,omitempty"`
	Cancellation    *CancellationResponse   `json:"cancellation,omitempty"`
	CreatedAt       string                  `json:"createdAt"`
	UpdatedAt       string                  `json:"updatedAt"`
}

// FromAppointment конвертирует доменную запись в HTTP модель
func FromAppointment(a *domain.Appointment) *AppointmentResponse {
	services := make([]BookedServiceResponse, 0, len(a.Services))
	for _, s := range a.Services {
		services = append(services, BookedServiceResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	resp := &AppointmentResponse{
		ID:            a.ID,
		BusinessID:    a.BusinessID,
		StaffID:       a.StaffID,
		StaffName:     a.StaffName,
		ClientID:      a.ClientID,
		ClientInfo:    a.ClientInfo,
		Date:          a.Date.Format(domain.DateFormat),
		StartTime:     a.StartTime.String(),
		EndTime:       a.EndTime.String(),
		StartAt:       a.StartAt.Format(time.RFC3339),
		EndAt:         a.EndAt.Format(time.RFC3339),
		TotalDuration: a.TotalDuration,
		Services:      services,
		Pricing: PricingResponse{
			Subtotal:       a.Pricing.Subtotal,
			DiscountAmount: a.Pricing.DiscountAmount,
			PromotionID:    a.Pricing.PromotionID,
			Total:          a.Pricing.Total,
			DepositAmount:  a.Pricing.DepositAmount,
			DepositPaid:    a.Pricing.DepositPaid,
			Tip:            a.Pricing.Tip,
			FinalTotal:     a.Pricing.FinalTotal,
		},
		Status:          string(a.Status),
		Source:          string(a.Source),
		WaitlistEntryID: a.WaitlistEntryID,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}

	if c := a.Cancellation; c != nil {
		resp.Cancellation = &CancellationResponse{
			CancelledAt:  c.CancelledAt.Format(time.RFC3339),
			CancelledBy:  string(c.CancelledBy),
			Reason:       c.Reason,
			Refunded:     c.Refunded,
			RefundAmount: c.RefundAmount,
		}
	}

	return resp
}

// FromAppointments конвертирует список записей
func FromAppointments(list []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromAppointment(a))
	}
	return result
}
