package cancel_appointment

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request запрос клиента на отмену своей записи
type Request struct {
	BusinessID    int64
	AppointmentID int64
	ClientID      int64
	Reason        *string
}

// Response отменённая запись и расчёт возврата депозита
type Response struct {
	Appointment *domain.Appointment
	Refund      domain.RefundResult
}
