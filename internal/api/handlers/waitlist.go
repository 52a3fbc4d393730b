package handlers

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// WaitlistNotificationResponse предложение слота из истории заявки
type WaitlistNotificationResponse struct {
	AppointmentID *int64  `json:"appointmentId,omitempty"`
	SentAt        string  `json:"sentAt"`
	ExpiresAt     *string `json:"expiresAt,omitempty"`
	Outcome       string  `json:"outcome"`
}

// WaitlistEntryResponse заявка листа ожидания в ответах API
type WaitlistEntryResponse struct {
	ID               int64                          `json:"id"`
	BusinessID       int64                          `json:"businessId"`
	ClientID         int64                          `json:"clientId"`
	ServiceIDs       []int64                        `json:"serviceIds"`
	PreferredStaffID *int64                         `json:"preferredStaffId,omitempty"`
	DateFrom         *string                        `json:"dateFrom,omitempty"`
	DateTo           *string                        `json:"dateTo,omitempty"`
	TimeFrom         *string                        `json:"timeFrom,omitempty"`
	TimeTo           *string                        `json:"timeTo,omitempty"`
	DaysOfWeek       []int                          `json:"daysOfWeek"`
	Priority         string                         `json:"priority"`
	Status           string                         `json:"status"`
	AppointmentID    *int64                         `json:"appointmentId,omitempty"`
	Notes            *string                        `json:"notes,omitempty"`
	Notifications    []WaitlistNotificationResponse `json:"notifications"`
	CreatedAt        string                         `json:"createdAt"`
}

func FromWaitlistEntry(e *domain.WaitlistEntry) *WaitlistEntryResponse {
	resp := &WaitlistEntryResponse{
		ID:               e.ID,
		BusinessID:       e.BusinessID,
		ClientID:         e.ClientID,
		ServiceIDs:       e.ServiceIDs,
		PreferredStaffID: e.PreferredStaffID,
		DaysOfWeek:       e.DaysOfWeek,
		Priority:         string(e.Priority),
		Status:           string(e.Status),
		AppointmentID:    e.AppointmentID,
		Notes:            e.Notes,
		Notifications:    make([]WaitlistNotificationResponse, 0, len(e.Notifications)),
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
	}
	if resp.DaysOfWeek == nil {
		resp.DaysOfWeek = []int{}
	}

	if e.DateFrom != nil {
		s := e.DateFrom.Format(domain.DateFormat)
		resp.DateFrom = &s
	}
	if e.DateTo != nil {
		s := e.DateTo.Format(domain.DateFormat)
		resp.DateTo = &s
	}
	if e.TimeFrom != nil {
		s := e.TimeFrom.String()
		resp.TimeFrom = &s
	}
	if e.TimeTo != nil {
		s := e.TimeTo.String()
		resp.TimeTo = &s
	}

	for _, n := range e.Notifications {
		item := WaitlistNotificationResponse{
			AppointmentID: n.AppointmentID,
			SentAt:        n.SentAt.Format(time.RFC3339),
			Outcome:       string(n.Outcome),
		}
		if n.ExpiresAt != nil {
			s := n.ExpiresAt.Format(time.RFC3339)
			item.ExpiresAt = &s
		}
		resp.Notifications = append(resp.Notifications, item)
	}

	return resp
}

func FromWaitlistEntries(list []*domain.WaitlistEntry) []*WaitlistEntryResponse {
	result := make([]*WaitlistEntryResponse, 0, len(list))
	for _, e := range list {
		result = append(result, FromWaitlistEntry(e))
	}
	return result
}
