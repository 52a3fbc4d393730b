package domain

// Default configuration values
const (
	DefaultBufferMinutes        = 0
	DefaultTimezone             = "UTC"
	DefaultCancellationHours    = 24
	DefaultFreeSlotsStepMinutes = 15
)

// Business validation constants
const (
	MaxBufferMinutes            = 240
	MaxCancellationHours        = 720 // 30 days
	MaxServicesPerAppointment   = 20
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientInfoLength         = 255
	MaxPromotionCodeLength      = 32
	MaxPromotionNameLength      = 255
	MinFreeSlotsStepMinutes     = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, в которых запись занимает слот и участвует в проверке пересечений
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
}

// InactiveStatuses статусы, освободившие слот
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ReschedulableStatuses статусы, из которых запись можно перенести
var ReschedulableStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
