package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// SeatCache は上映回ごとの空席数キャッシュ
type SeatCache struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultCacheTTL はロックの遅延失効を反映するため短めにしている
const DefaultCacheTTL = 5 * time.Second

func NewSeatCache(client *redis.Client) *SeatCache {
	return &SeatCache{client: client, ttl: DefaultCacheTTL}
}

// TTL は保存時の有効期限を返す
func (c *SeatCache) TTL() time.Duration {
	return c.ttl
}

// GetAvailableCount は上映回の空席数をキャッシュから取得する
func (c *SeatCache) GetAvailableCount(ctx context.Context, scheduleID string) (int, error) {
	val, err := c.client.Get(ctx, availableCountKey(scheduleID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetAvailableCount は上映回の空席数をキャッシュに保存する
func (c *SeatCache) SetAvailableCount(ctx context.Context, scheduleID string, count int, ttl time.Duration) error {
	if err := c.client.Set(ctx, availableCountKey(scheduleID), count, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate は上映回のキャッシュを無効化する
func (c *SeatCache) Invalidate(ctx context.Context, scheduleID string) error {
	if err := c.client.Del(ctx, availableCountKey(scheduleID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func availableCountKey(scheduleID string) string {
	return fmt.Sprintf("schedules:available:%s", scheduleID)
}
