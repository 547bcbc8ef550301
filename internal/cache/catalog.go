// Package cache keeps the read-mostly barber and service catalogs in Redis
// in front of Postgres. A nil Redis client degrades to DB-only reads.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/nallenclassics/barber-booking/internal/models"
)

const (
	keyBarbers  = "catalog:barbers"
	keyServices = "catalog:services"
)

type Catalog struct {
	db  *gorm.DB
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalog(db *gorm.DB, rdb *redis.Client) *Catalog {
	return &Catalog{db: db, rdb: rdb, ttl: 30 * time.Second}
}

// NewRedisClient connects to Redis, or returns nil (cache disabled) when no
// address is configured or the server is unreachable.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, catalog cache disabled: %v", err)
		return nil
	}
	return client
}

func (c *Catalog) Barbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if c.cached(ctx, keyBarbers, &barbers) {
		return barbers, nil
	}

	if err := c.db.WithContext(ctx).Order("name ASC").Find(&barbers).Error; err != nil {
		return nil, err
	}
	c.store(ctx, keyBarbers, barbers)
	return barbers, nil
}

func (c *Catalog) Services(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if c.cached(ctx, keyServices, &services) {
		return services, nil
	}

	if err := c.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	c.store(ctx, keyServices, services)
	return services, nil
}

// Invalidate drops both catalog keys; called after any barber/service write.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keyBarbers, keyServices).Err(); err != nil {
		log.Printf("catalog cache invalidation failed: %v", err)
	}
}

func (c *Catalog) cached(ctx context.Context, key string, out any) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("catalog cache read failed: %v", err)
		}
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func (c *Catalog) store(ctx context.Context, key string, v any) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Printf("catalog cache write failed: %v", err)
	}
}
