package redis

import (
	"context"
	"errors"
	"time"
)

// PurchaseLocker は購入処理中の座席をプロセス間で排他する
// 座席ごとのキーをソート順に取得するため、重なりのある購入同士でもデッドロックしない
type PurchaseLocker struct {
	manager    *LockManager
	ttl        time.Duration
	maxRetries int
	retryDelay time.Duration
}

func NewPurchaseLocker(manager *LockManager, ttl time.Duration) *PurchaseLocker {
	return &PurchaseLocker{
		manager:    manager,
		ttl:        ttl,
		maxRetries: 3,
		retryDelay: 100 * time.Millisecond,
	}
}

// Acquire は上映回の指定座席すべてのロックを取得し、解放関数を返す
func (p *PurchaseLocker) Acquire(ctx context.Context, scheduleID string, seatIDs []string) (func(context.Context), error) {
	keys := SeatLockKeys(scheduleID, seatIDs)

	var lastErr error
	for i := 0; i < p.maxRetries; i++ {
		locks, err := p.manager.AcquireAll(ctx, keys, p.ttl)
		if err == nil {
			return func(ctx context.Context) { ReleaseAll(ctx, locks) }, nil
		}
		lastErr = err
		if !errors.Is(err, ErrLockNotAcquired) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.retryDelay):
		}
	}
	return nil, lastErr
}
