package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	defaultLocalSize = 1024
	defaultLocalTTL  = 30 * time.Second
	defaultRedisTTL  = 5 * time.Minute

	keyPrefix = "appointments:catalog"
)

// Config настройки уровней кэша
type Config struct {
	LocalSize int
	LocalTTL  time.Duration
	RedisTTL  time.Duration
}

// Cache кэширует ответы каталога: локальный LRU, затем Redis, затем источник.
// Ошибки источника (включая "не найдено") не кэшируются.
type Cache struct {
	source   Source
	redis    RedisClient
	log      Logger
	redisTTL time.Duration

	services *expirable.LRU[string, domain.Service]
	staff    *expirable.LRU[string, domain.Staff]
}

// New создает кэш; redis может быть nil, тогда используется только локальный уровень
func New(source Source, redisClient RedisClient, cfg Config, log Logger) *Cache {
	if cfg.LocalSize <= 0 {
		cfg.LocalSize = defaultLocalSize
	}
	if cfg.LocalTTL <= 0 {
		cfg.LocalTTL = defaultLocalTTL
	}
	if cfg.RedisTTL <= 0 {
		cfg.RedisTTL = defaultRedisTTL
	}

	return &Cache{
		source:   source,
		redis:    redisClient,
		log:      log,
		redisTTL: cfg.RedisTTL,
		services: expirable.NewLRU[string, domain.Service](cfg.LocalSize, nil, cfg.LocalTTL),
		staff:    expirable.NewLRU[string, domain.Staff](cfg.LocalSize, nil, cfg.LocalTTL),
	}
}

// GetService возвращает услугу бизнеса
func (c *Cache) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	key := fmt.Sprintf("%s:service:%d:%d", keyPrefix, businessID, serviceID)

	if cached, ok := c.services.Get(key); ok {
		return &cached, nil
	}

	var service domain.Service
	if c.readShared(ctx, key, &service) {
		c.services.Add(key, service)
		return &service, nil
	}

	fetched, err := c.source.GetService(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}

	c.services.Add(key, *fetched)
	c.writeShared(ctx, key, fetched)

	result := *fetched
	return &result, nil
}

// GetStaff возвращает сотрудника бизнеса
func (c *Cache) GetStaff(ctx context.Context, businessID, staffID int64) (*domain.Staff, error) {
	key := fmt.Sprintf("%s:staff:%d:%d", keyPrefix, businessID, staffID)

	if cached, ok := c.staff.Get(key); ok {
		return &cached, nil
	}

	var staff domain.Staff
	if c.readShared(ctx, key, &staff) {
		c.staff.Add(key, staff)
		return &staff, nil
	}

	fetched, err := c.source.GetStaff(ctx, businessID, staffID)
	if err != nil {
		return nil, err
	}

	c.staff.Add(key, *fetched)
	c.writeShared(ctx, key, fetched)

	result := *fetched
	return &result, nil
}

// readShared читает значение из Redis; любые ошибки Redis означают промах
func (c *Cache) readShared(ctx context.Context, key string, out interface{}) bool {
	if c.redis == nil {
		return false
	}

	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("CatalogCache: redis get %s failed: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("CatalogCache: corrupted entry %s: %v", key, err)
		return false
	}

	return true
}

func (c *Cache) writeShared(ctx context.Context, key string, value interface{}) {
	if c.redis == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("CatalogCache: failed to encode %s: %v", key, err)
		return
	}

	if err := c.redis.Set(ctx, key, raw, c.redisTTL).Err(); err != nil {
		c.log.Warn("CatalogCache: redis set %s failed: %v", key, err)
	}
}
