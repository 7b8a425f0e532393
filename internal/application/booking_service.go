package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
	redisinfra "github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
)

type BookingService struct {
	schedules schedule.Repository
	users     catalog.UserDirectory
	clock     clockwork.Clock

	locker    PurchaseLocker
	cache     AvailabilityCache
	cacheTTL  time.Duration
	publisher TicketPublisher
	metrics   *metrics.Metrics
}

// ServiceOption は BookingService の任意の依存を設定する
type ServiceOption func(*BookingService)

func WithPurchaseLocker(l PurchaseLocker) ServiceOption {
	return func(s *BookingService) { s.locker = l }
}

func WithAvailabilityCache(c AvailabilityCache, ttl time.Duration) ServiceOption {
	return func(s *BookingService) {
		s.cache = c
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithTicketPublisher(p TicketPublisher) ServiceOption {
	return func(s *BookingService) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BookingService) { s.metrics = m }
}

func NewBookingService(sr schedule.Repository, users catalog.UserDirectory, clock clockwork.Clock, opts ...ServiceOption) *BookingService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &BookingService{
		schedules: sr,
		users:     users,
		clock:     clock,
		cacheTTL:  redisinfra.DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BookingService) ListSchedules(ctx context.Context) ([]*schedule.Schedule, error) {
	return s.schedules.List(ctx)
}

func (s *BookingService) GetSchedule(ctx context.Context, id string) (*schedule.Schedule, error) {
	if id == "" {
		return nil, ErrScheduleIDRequired
	}
	return s.schedules.GetByID(ctx, id)
}

// ListSeats は座席ごとの空き状況と料金を返す
func (s *BookingService) ListSeats(ctx context.Context, scheduleID string) ([]schedule.SeatAvailability, error) {
	sched, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return sched.Availability(s.clock.Now()), nil
}

// CountAvailableSeats は空席数を返す（キャッシュ対応）
func (s *BookingService) CountAvailableSeats(ctx context.Context, scheduleID string) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetAvailableCount(ctx, scheduleID)
		if err == nil {
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("空席数キャッシュの取得に失敗しました", zap.String("schedule_id", scheduleID), zap.Error(err))
		}
	}

	sched, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return 0, err
	}
	count := sched.CountAvailable(s.clock.Now())

	if s.cache != nil {
		if err := s.cache.SetAvailableCount(ctx, scheduleID, count, s.cacheTTL); err != nil {
			logger.Warn("空席数キャッシュの保存に失敗しました", zap.String("schedule_id", scheduleID), zap.Error(err))
		}
	}
	return count, nil
}

// LockSeat は座席予約を取得または作成し、userID の利用者として仮押さえする
// 期限内は他の利用者が確定・取消できない
func (s *BookingService) LockSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error) {
	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	sched, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	now := s.clock.Now()

	b, err := sched.RequestBookingAt(seatID, now)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	_, err = b.LockHoldFor(user.ID, now)
	s.afterTransition(ctx, "lock", sched.ID, seatID, err)
	return b.Snapshot(now), err
}

// ConfirmSeat は仮押さえ中の座席を購入者で確定する
// 仮押さえした利用者以外は schedule.ErrNotLockHolder
func (s *BookingService) ConfirmSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error) {
	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	sched, b, err := s.existingBooking(ctx, scheduleID, seatID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	now := s.clock.Now()

	err = b.Confirm(user, now)
	s.afterTransition(ctx, "confirm", sched.ID, seatID, err)
	return b.Snapshot(now), err
}

// CancelSeat は userID の利用者として座席予約を取り消す
func (s *BookingService) CancelSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error) {
	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	sched, b, err := s.existingBooking(ctx, scheduleID, seatID)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	now := s.clock.Now()

	err = b.CancelBy(user.ID, now)
	s.afterTransition(ctx, "cancel", sched.ID, seatID, err)
	return b.Snapshot(now), err
}

type PurchaseInput struct {
	ScheduleID string
	UserID     string
	SeatIDs    []string
}

// PurchaseTickets は複数座席をまとめて確定し、チケットを発行する
// いずれかの座席が確保できない場合、この呼び出しで仮押さえした座席は取り消される
func (s *BookingService) PurchaseTickets(ctx context.Context, input PurchaseInput) (*ticket.Ticket, error) {
	user, err := s.lookupUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	sched, err := s.GetSchedule(ctx, input.ScheduleID)
	if err != nil {
		return nil, err
	}

	if s.locker != nil && len(input.SeatIDs) > 0 {
		start := time.Now()
		release, err := s.locker.Acquire(ctx, sched.ID, input.SeatIDs)
		s.observeLock("acquire", start, err)
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				s.metrics.RecordTicket(metrics.TicketStatusLockFailed)
				return nil, fmt.Errorf("%w: %v", ErrPurchaseInProgress, input.SeatIDs)
			}
			s.metrics.RecordTicket(metrics.TicketStatusError)
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer func() {
			start := time.Now()
			release(ctx)
			s.observeLock("release", start, nil)
		}()
	}

	t, err := ticket.Finalize(sched, input.SeatIDs, user, s.clock.Now())
	s.invalidate(ctx, sched.ID)
	if err != nil {
		s.metrics.RecordTicket(ticketStatus(err))
		logger.Info("チケット発行に失敗しました",
			zap.String("schedule_id", sched.ID),
			zap.String("user_id", user.ID),
			zap.Strings("seat_ids", input.SeatIDs),
			zap.Error(err),
		)
		return nil, err
	}
	s.metrics.RecordTicket(metrics.TicketStatusSuccess)

	logger.Info("チケットを発行しました",
		zap.String("ticket_id", t.ID()),
		zap.String("schedule_id", sched.ID),
		zap.String("user_id", user.ID),
		zap.Strings("seat_ids", t.SeatIDs()),
		zap.Int("total_amount", t.TotalAmount()),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishTicketIssued(ctx, t); err != nil {
			logger.Warn("チケット発行イベントの送信に失敗しました",
				zap.String("ticket_id", t.ID()),
				zap.Error(err),
			)
		}
	}
	return t, nil
}

// BookingStats は全上映回の状態別予約数を返す。予約の状態は変更しない
func (s *BookingService) BookingStats(ctx context.Context) (map[schedule.Status]int, error) {
	list, err := s.schedules.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	stats := make(map[schedule.Status]int, len(schedule.AllStatuses))
	for _, st := range schedule.AllStatuses {
		stats[st] = 0
	}
	for _, sched := range list {
		for st, n := range sched.Stats(now) {
			stats[st] += n
		}
	}
	return stats, nil
}

func (s *BookingService) lookupUser(ctx context.Context, userID string) (*catalog.User, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.users.GetUser(ctx, userID)
}

func (s *BookingService) existingBooking(ctx context.Context, scheduleID, seatID string) (*schedule.Schedule, *schedule.SeatBooking, error) {
	sched, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := sched.Seat(seatID); !ok {
		return nil, nil, fmt.Errorf("%w: %s", schedule.ErrSeatNotFound, seatID)
	}
	b, ok := sched.Booking(seatID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %w: %s", schedule.ErrInvalidTransition, ErrSeatNotLocked, seatID)
	}
	return sched, b, nil
}

func (s *BookingService) afterTransition(ctx context.Context, op, scheduleID, seatID string, err error) {
	s.metrics.RecordTransition(op, err)
	s.invalidate(ctx, scheduleID)
	if err != nil {
		logger.Debug("座席予約の状態遷移に失敗しました",
			zap.String("operation", op),
			zap.String("schedule_id", scheduleID),
			zap.String("seat_id", seatID),
			zap.Error(err),
		)
	}
}

func (s *BookingService) invalidate(ctx context.Context, scheduleID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, scheduleID); err != nil {
		logger.Warn("空席数キャッシュの無効化に失敗しました", zap.String("schedule_id", scheduleID), zap.Error(err))
	}
}

func (s *BookingService) observeLock(op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	s.metrics.DistributedLockDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}

func ticketStatus(err error) string {
	switch {
	case errors.Is(err, ticket.ErrSeatUnavailable):
		return metrics.TicketStatusUnavailable
	case errors.Is(err, ticket.ErrBookingFailed):
		return metrics.TicketStatusFailed
	default:
		return metrics.TicketStatusError
	}
}
