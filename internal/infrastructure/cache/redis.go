// Package cache implementa la caché del dashboard sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
)

var _ ports.DashboardCache = (*DashboardCache)(nil)

const dashboardKey = "zola:dashboard:summary"

// NewRedis crea el cliente y valida la conexión al arrancar.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// DashboardCache guarda el resumen del dashboard como JSON con TTL.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDashboardCache construye la caché. ttl <= 0 usa 60 segundos.
func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

// Get devuelve nil, nil cuando la clave no existe o expiró.
func (c *DashboardCache) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	raw, err := c.rdb.Get(ctx, dashboardKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get dashboard: %w", err)
	}
	var out dto.DashboardResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("redis: decode dashboard: %w", err)
	}
	return &out, nil
}

// Set guarda el resumen.
func (c *DashboardCache) Set(ctx context.Context, v *dto.DashboardResponse) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis: encode dashboard: %w", err)
	}
	if err := c.rdb.Set(ctx, dashboardKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set dashboard: %w", err)
	}
	return nil
}

// Invalidate descarta el resumen cacheado.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, dashboardKey).Err(); err != nil {
		return fmt.Errorf("redis: invalidate dashboard: %w", err)
	}
	return nil
}
