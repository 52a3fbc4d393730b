package catalog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Source источник данных каталога (HTTP клиент CatalogService)
type Source interface {
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error)
}

// RedisClient подмножество redis.Cmdable, используемое кэшем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
