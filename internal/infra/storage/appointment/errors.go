package appointment

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда интервал пересекается с активной записью сотрудника
	// (ограничение appointments_no_overlap) или транзакция проиграла конкурентной записи
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации услуг записи
	ErrEncode = errors.New("appointment.repository: failed to encode services")
)

const pgExclusionViolation = "23P01"

// classifyWriteErr превращает нарушение ограничения пересечений и конфликт сериализации в ErrSlotTaken
func classifyWriteErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
		return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
	}
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}
