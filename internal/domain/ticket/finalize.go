package ticket

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

type finalizeConfig struct {
	newID func() string
}

// Option は Finalize の設定を変更する
type Option func(*finalizeConfig)

// WithIDGenerator はチケットIDの生成関数を指定する
func WithIDGenerator(fn func() string) Option {
	return func(c *finalizeConfig) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// Finalize は座席を仮押さえしてから確定し、チケットを発行する
//  1. 全座席を仮押さえする。1席でも失敗したら今回の仮押さえを解除して ErrSeatUnavailable
//  2. 全座席をまとめて確定する。失敗したら解除して ErrBookingFailed
//  3. 料金を合計してチケットを作成する
func Finalize(sched *schedule.Schedule, seatIDs []string, user *catalog.User, now time.Time, opts ...Option) (*Ticket, error) {
	cfg := finalizeConfig{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&cfg)
	}
	if user == nil {
		return nil, schedule.ErrPurchaserRequired
	}
	if err := validateSelection(sched, seatIDs); err != nil {
		return nil, err
	}

	holds := make([]schedule.Hold, 0, len(seatIDs))
	for _, id := range seatIDs {
		b, err := sched.RequestBookingAt(id, now)
		if err != nil {
			release(holds)
			return nil, err
		}
		h, err := b.LockHoldFor(user.ID, now)
		if err != nil {
			release(holds)
			return nil, fmt.Errorf("%w: 座席 %s: %w", ErrSeatUnavailable, id, err)
		}
		holds = append(holds, h)
	}

	if err := sched.ConfirmBatch(holds, user, now); err != nil {
		release(holds)
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	t := &Ticket{
		id:         cfg.newID(),
		movie:      sched.Movie,
		user:       user,
		scheduleID: sched.ID,
		startTime:  sched.StartTime,
		date:       sched.Date,
		seats:      make([]seat.Seat, 0, len(holds)),
		bookingIDs: make([]string, 0, len(holds)),
		issuedAt:   now,
	}
	for _, h := range holds {
		t.seats = append(t.seats, h.Booking.Seat())
		t.bookingIDs = append(t.bookingIDs, h.Booking.ID())
		t.totalAmount += h.Booking.Price()
	}
	return t, nil
}

func validateSelection(sched *schedule.Schedule, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: 座席が選択されていません", ErrInvalidSeatSelection)
	}
	seen := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: 座席 %s が重複しています", ErrInvalidSeatSelection, id)
		}
		seen[id] = struct{}{}
		if _, ok := sched.Seat(id); !ok {
			return fmt.Errorf("%w: %s", schedule.ErrSeatNotFound, id)
		}
	}
	return nil
}

// release は今回取得した仮押さえのみ取り消す
func release(holds []schedule.Hold) {
	for _, h := range holds {
		_ = h.Release()
	}
}
