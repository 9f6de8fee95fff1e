// Package cache adaptadores de caché sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Gestion-api/pkg/config"
)

const keyPrefix = "gestion:company:"

// BusinessTypeCache guarda companyID -> tipo de negocio con TTL.
// Implementa usecase.BusinessTypeCache.
type BusinessTypeCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewBusinessTypeCache construye la caché sobre un cliente existente.
func NewBusinessTypeCache(rdb redis.UniversalClient, ttl time.Duration) *BusinessTypeCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &BusinessTypeCache{rdb: rdb, ttl: ttl}
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func key(companyID string) string {
	return keyPrefix + companyID + ":business_type"
}

// Get devuelve ("", false, nil) si no hay entrada.
func (c *BusinessTypeCache) Get(ctx context.Context, companyID string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key(companyID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

// Set guarda el tipo de negocio con el TTL configurado.
func (c *BusinessTypeCache) Set(ctx context.Context, companyID, businessType string) error {
	if err := c.rdb.Set(ctx, key(companyID), businessType, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate elimina la entrada de la empresa.
func (c *BusinessTypeCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.rdb.Del(ctx, key(companyID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
