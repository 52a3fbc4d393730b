package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID    int64
	StaffID       int64
	ServiceIDs    []int64                  // порядок сохраняется
	Date          time.Time                // дата записи (без времени)
	StartTime     types.TimeString         // время начала, например "10:00"
	Source        domain.AppointmentSource // online или manual
	ClientID      *int64                   // обязателен для online
	ClientInfo    *string                  // клиент без аккаунта, только manual
	PromotionCode *string
	Notes         *string
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment     *domain.Appointment
	ServiceDuration int
	BufferMinutes   int
}

// initialStatus онлайн-запись ждёт подтверждения, ручную бизнес создаёт подтверждённой
func initialStatus(source domain.AppointmentSource) domain.AppointmentStatus {
	if source == domain.SourceManual {
		return domain.StatusConfirmed
	}
	return domain.StatusPending
}
