package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Драйверы уведомлений
const (
	DriverKafka = "kafka"
	DriverAsynq = "asynq"
	DriverLog   = "log"
)

// Notifier общий контракт драйверов
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, recipient domain.Recipient, appointmentID int64, payload map[string]interface{}) error
	Close() error
}

// Config настройки выбора драйвера
type Config struct {
	Driver        string
	KafkaBrokers  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Queue         string
}

// New создает драйвер по конфигурации
func New(cfg Config, log Logger) (Notifier, error) {
	switch cfg.Driver {
	case DriverKafka:
		brokers := SplitBrokers(cfg.KafkaBrokers)
		if len(brokers) == 0 {
			return nil, fmt.Errorf("%w: kafka driver requires brokers", ErrMisconfigured)
		}
		return NewKafkaNotifier(brokers, log), nil
	case DriverAsynq:
		return NewAsynqNotifier(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.Queue, log), nil
	case DriverLog, "":
		return NewLogNotifier(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
