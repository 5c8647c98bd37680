package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/counselbook/counsel-booking/services"
)

// availabilityTTL keeps the cached listing short-lived; the cache is a
// convenience view, the locked booking transaction is authoritative.
const availabilityTTL = 30 * time.Second

// AvailabilityCache caches availability listings per counselor in a
// Redis hash keyed by date, so one DEL invalidates every date at once
// when a booking or schedule mutation lands.
type AvailabilityCache struct {
	client *redis.Client
}

func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

func key(counselorID uuid.UUID) string {
	return "availability:" + counselorID.String()
}

func field(date string) string {
	if date == "" {
		return "all"
	}
	return date
}

func (c *AvailabilityCache) Get(ctx context.Context, counselorID uuid.UUID, date string) ([]services.AvailableSlot, bool) {
	raw, err := c.client.HGet(ctx, key(counselorID), field(date)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []services.AvailableSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, counselorID uuid.UUID, date string, slots []services.AvailableSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key(counselorID), field(date), raw)
	pipe.Expire(ctx, key(counselorID), availabilityTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("availability cache set failed: %v", err)
	}
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, counselorID uuid.UUID) {
	if err := c.client.Del(ctx, key(counselorID)).Err(); err != nil {
		log.Printf("availability cache invalidate failed: %v", err)
	}
}
