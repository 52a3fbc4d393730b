package domain

// NotificationKind тип уведомления
type NotificationKind string

const (
	NotificationAppointmentBooked      NotificationKind = "appointment.booked"
	NotificationAppointmentConfirmed   NotificationKind = "appointment.confirmed"
	NotificationAppointmentCancelled   NotificationKind = "appointment.cancelled"
	NotificationAppointmentRescheduled NotificationKind = "appointment.rescheduled"
	NotificationWaitlistConverted      NotificationKind = "waitlist.converted"
)

// Recipient получатель уведомления
type Recipient struct {
	BusinessID int64
	StaffID    int64
	ClientID   *int64
}

// RecipientOf адресаты уведомления о записи
func RecipientOf(a *Appointment) Recipient {
	return Recipient{
		BusinessID: a.BusinessID,
		StaffID:    a.StaffID,
		ClientID:   a.ClientID,
	}
}
