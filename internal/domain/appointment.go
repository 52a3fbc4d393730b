package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusCheckedIn  AppointmentStatus = "checked_in"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal returns true if no action can move the appointment further
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// OccupiesSlot returns true if an appointment in this status blocks the staff calendar
func (s AppointmentStatus) OccupiesSlot() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus converts a string into a known status
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// AppointmentSource откуда пришла запись
type AppointmentSource string

const (
	SourceOnline   AppointmentSource = "online"
	SourceManual   AppointmentSource = "manual"
	SourceWaitlist AppointmentSource = "waitlist"
)

// CancelledBy инициатор отмены
type CancelledBy string

const (
	CancelledByClient   CancelledBy = "client"
	CancelledByBusiness CancelledBy = "business"
)

// BookedService снимок услуги на момент записи; последующие изменения каталога на него не влияют
type BookedService struct {
	ServiceID       int64   `json:"serviceId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// Cancellation запись об отмене
type Cancellation struct {
	CancelledAt  time.Time
	CancelledBy  CancelledBy
	Reason       *string
	Refunded     bool
	RefundAmount float64
}

// Appointment одна запись клиента к сотруднику
type Appointment struct {
	ID         int64
	BusinessID int64
	StaffID    int64
	StaffName  string
	ClientID   *int64
	ClientInfo *string // свободный текст для клиентов без аккаунта

	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	StartAt       time.Time
	EndAt         time.Time
	TotalDuration int // длительность услуг + буфер, минуты

	Services []BookedService
	Pricing  Pricing

	Status          AppointmentStatus
	Source          AppointmentSource
	WaitlistEntryID *int64
	Notes           *string

	Cancellation *Cancellation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the interval the appointment occupies on the staff calendar
func (a *Appointment) Slot() Slot {
	return Slot{Start: a.StartAt, End: a.EndAt}
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status.OccupiesSlot()
}

// ServiceIDs returns the ids of booked services in booking order
func (a *Appointment) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(a.Services))
	for _, s := range a.Services {
		ids = append(ids, s.ServiceID)
	}
	return ids
}

// RefundableDeposit returns the deposit amount that is subject to refund
func (a *Appointment) RefundableDeposit() float64 {
	if !a.Pricing.DepositPaid {
		return 0
	}
	return a.Pricing.DepositAmount
}

// StaffDayFilter фильтр записей сотрудника на дату
type StaffDayFilter struct {
	BusinessID      int64
	StaffID         int64
	Date            time.Time
	ExcludeID       *int64 // запись, которую переносят
	IncludeInactive bool   // включать завершённые и отменённые
}

// TransitionCommand условное изменение статуса
type TransitionCommand struct {
	AppointmentID int64
	BusinessID    int64
	From          []AppointmentStatus
	To            AppointmentStatus
	Cancellation  *Cancellation // только для перехода в cancelled
	Tip           *float64      // только для перехода в completed
}

// RescheduleCommand перенос записи на другое время
type RescheduleCommand struct {
	AppointmentID int64
	BusinessID    int64
	From          []AppointmentStatus
	StaffID       int64
	StaffName     string
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	StartAt       time.Time
	EndAt         time.Time
	TotalDuration int
}
