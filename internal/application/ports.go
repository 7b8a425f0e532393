package application

import (
	"context"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
)

// PurchaseLocker は購入処理中の座席をプロセス間で排他する
type PurchaseLocker interface {
	Acquire(ctx context.Context, scheduleID string, seatIDs []string) (release func(context.Context), err error)
}

// AvailabilityCache は上映回ごとの空席数キャッシュ
type AvailabilityCache interface {
	GetAvailableCount(ctx context.Context, scheduleID string) (int, error)
	SetAvailableCount(ctx context.Context, scheduleID string, count int, ttl time.Duration) error
	Invalidate(ctx context.Context, scheduleID string) error
}

// TicketPublisher はチケット発行を外部へ通知する
type TicketPublisher interface {
	PublishTicketIssued(ctx context.Context, t *ticket.Ticket) error
}
