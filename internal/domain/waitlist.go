package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WaitlistStatus статус заявки в листе ожидания
type WaitlistStatus string

const (
	WaitlistActive    WaitlistStatus = "active"
	WaitlistFulfilled WaitlistStatus = "fulfilled"
	WaitlistCancelled WaitlistStatus = "cancelled"
	WaitlistExpired   WaitlistStatus = "expired"
)

// WaitlistPriority приоритет заявки
type WaitlistPriority string

const (
	PriorityNormal WaitlistPriority = "normal"
	PriorityVIP    WaitlistPriority = "vip"
)

// IsValid returns true for known priorities
func (p WaitlistPriority) IsValid() bool {
	return p == PriorityNormal || p == PriorityVIP
}

// NotificationOutcome результат предложения слота
type NotificationOutcome string

const (
	OutcomePending  NotificationOutcome = "pending"
	OutcomeAccepted NotificationOutcome = "accepted"
	OutcomeDeclined NotificationOutcome = "declined"
	OutcomeExpired  NotificationOutcome = "expired"
)

// WaitlistNotification запись истории предложений; история только дополняется
type WaitlistNotification struct {
	AppointmentID *int64              `json:"appointmentId,omitempty"`
	SentAt        time.Time           `json:"sentAt"`
	ExpiresAt     *time.Time          `json:"expiresAt,omitempty"`
	Outcome       NotificationOutcome `json:"outcome"`
}

// WaitlistEntry заявка клиента на свободное время
type WaitlistEntry struct {
	ID         int64
	BusinessID int64
	ClientID   int64

	ServiceIDs       []int64
	PreferredStaffID *int64
	DateFrom         *time.Time
	DateTo           *time.Time
	TimeFrom         *types.TimeString
	TimeTo           *types.TimeString
	DaysOfWeek       []int // 0 = воскресенье, как time.Weekday

	Priority      WaitlistPriority
	Status        WaitlistStatus
	AppointmentID *int64
	Notes         *string
	Notifications []WaitlistNotification

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the entry can still be converted
func (e *WaitlistEntry) IsActive() bool {
	return e.Status == WaitlistActive
}

// WaitlistFilter фильтр активных заявок
type WaitlistFilter struct {
	BusinessID int64
	StaffID    *int64 // заявки без предпочтения сотрудника тоже попадают в выборку
}

// FulfillCommand условное закрытие заявки созданной записью
type FulfillCommand struct {
	EntryID       int64
	BusinessID    int64
	AppointmentID int64
	Notification  WaitlistNotification
}
