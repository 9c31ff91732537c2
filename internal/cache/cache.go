package cache

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/restobook/booking-api/internal/config"
)

const availabilityTTL = 60 * time.Second

func NewClient(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		// availability falls back to direct computation without redis
		log.Printf("redis unavailable at %s: %v", cfg.RedisAddr, err)
	}

	return rdb
}

// AvailabilityCache keeps computed slot lists per branch/date.
// Every error path degrades to a cache miss, never to a request failure.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: availabilityTTL}
}

func (c *AvailabilityCache) key(branchID uint, date string) string {
	return "avail:" + strconv.FormatUint(uint64(branchID), 10) + ":" + date
}

func (c *AvailabilityCache) Get(ctx context.Context, branchID uint, date string, out any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, c.key(branchID, date)).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, out) == nil
}

func (c *AvailabilityCache) Set(ctx context.Context, branchID uint, date string, value any) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.key(branchID, date), raw, c.ttl).Err(); err != nil {
		log.Printf("availability cache set failed: %v", err)
	}
}

// Invalidate drops the cached day for a branch after a booking or
// settings mutation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, branchID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, c.key(branchID, date)).Err(); err != nil {
		log.Printf("availability cache invalidate failed: %v", err)
	}
}

// InvalidateBranch drops every cached day for a branch. Used when
// settings or overrides change hours/capacity wholesale.
func (c *AvailabilityCache) InvalidateBranch(ctx context.Context, branchID uint) {
	if c == nil || c.rdb == nil {
		return
	}

	pattern := "avail:" + strconv.FormatUint(uint64(branchID), 10) + ":*"
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("availability cache invalidate failed: %v", err)
		}
	}
}
