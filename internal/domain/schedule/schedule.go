package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/pricing"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

// DefaultLockDuration は仮押さえの有効期間（10分）
const DefaultLockDuration = 600 * time.Second

// Schedule は映画の1上映回を表し、座席ごとの予約を所有する
type Schedule struct {
	ID        string
	Movie     *catalog.Movie
	StartTime string
	Date      time.Time

	seats        []seat.Seat
	seatIndex    map[string]seat.Seat
	strategy     pricing.Strategy
	lockDuration time.Duration
	clock        clockwork.Clock
	newID        func() string

	mu       sync.Mutex
	bookings map[string]*SeatBooking
}

// Option はスケジュールの設定を変更する
type Option func(*Schedule)

// WithPricing は座席予約に割り当てる料金戦略を指定する
func WithPricing(s pricing.Strategy) Option {
	return func(sc *Schedule) {
		sc.strategy = s
	}
}

// WithLockDuration は仮押さえの有効期間を指定する
func WithLockDuration(d time.Duration) Option {
	return func(sc *Schedule) {
		if d > 0 {
			sc.lockDuration = d
		}
	}
}

// WithClock は期限切れ判定に使う時計を指定する
func WithClock(c clockwork.Clock) Option {
	return func(sc *Schedule) {
		if c != nil {
			sc.clock = c
		}
	}
}

// WithIDGenerator は座席予約IDの生成関数を指定する
func WithIDGenerator(fn func() string) Option {
	return func(sc *Schedule) {
		if fn != nil {
			sc.newID = fn
		}
	}
}

// NewSchedule は座席配置を持つ上映スケジュールを作成する
func NewSchedule(id string, movie *catalog.Movie, startTime string, date time.Time, seats []seat.Seat, opts ...Option) (*Schedule, error) {
	if id == "" {
		return nil, ErrScheduleIDRequired
	}
	if movie == nil {
		return nil, ErrMovieRequired
	}
	s := &Schedule{
		ID:           id,
		Movie:        movie,
		StartTime:    startTime,
		Date:         date,
		seats:        make([]seat.Seat, 0, len(seats)),
		seatIndex:    make(map[string]seat.Seat, len(seats)),
		strategy:     pricing.Regular(pricing.DefaultBasePrice),
		lockDuration: DefaultLockDuration,
		clock:        clockwork.NewRealClock(),
		newID:        uuid.NewString,
		bookings:     make(map[string]*SeatBooking),
	}
	for _, se := range seats {
		if err := se.Validate(); err != nil {
			return nil, fmt.Errorf("座席 %q: %w", se.ID, err)
		}
		if _, ok := s.seatIndex[se.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSeat, se.ID)
		}
		s.seatIndex[se.ID] = se
		s.seats = append(s.seats, se)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Seats は座席配置を返す
func (s *Schedule) Seats() []seat.Seat {
	out := make([]seat.Seat, len(s.seats))
	copy(out, s.seats)
	return out
}

// Seat はIDから座席を返す
func (s *Schedule) Seat(id string) (seat.Seat, bool) {
	se, ok := s.seatIndex[id]
	return se, ok
}

// Pricing はスケジュールの料金戦略を返す
func (s *Schedule) Pricing() pricing.Strategy {
	return s.strategy
}

// LockDuration は仮押さえの有効期間を返す
func (s *Schedule) LockDuration() time.Duration {
	return s.lockDuration
}

// RequestBooking は座席の予約を取得または作成する
// 期限判定にはスケジュールの時計を使う
func (s *Schedule) RequestBooking(seatID string) (*SeatBooking, error) {
	return s.RequestBookingAt(seatID, s.clock.Now())
}

// RequestBookingAt は now 時点で座席の予約を取得または作成する
//   - 予約がなければ pending で作成する
//   - 取消済み・期限切れなら同じ予約を pending に戻して返す
//   - それ以外は既存の予約をそのまま返す（呼び出し側が状態を確認する）
func (s *Schedule) RequestBookingAt(seatID string, now time.Time) (*SeatBooking, error) {
	se, ok := s.seatIndex[seatID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSeatNotFound, seatID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.bookings[seatID]; ok {
		b.resetIfReusable(now)
		return b, nil
	}
	b := newSeatBooking(s.newID(), se, s)
	s.bookings[seatID] = b
	return b, nil
}

// Booking は既存の座席予約を返す。作成はしない
func (s *Schedule) Booking(seatID string) (*SeatBooking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[seatID]
	return b, ok
}

// SeatAvailability は座席の空き状況
type SeatAvailability struct {
	Seat      seat.Seat
	Status    Status // 予約が存在しない場合は空
	Available bool
	Price     int
}

// Availability は座席配置順に now 時点の空き状況を返す。状態は変更しない
func (s *Schedule) Availability(now time.Time) []SeatAvailability {
	bookings := s.snapshotBookings()

	out := make([]SeatAvailability, 0, len(s.seats))
	for _, se := range s.seats {
		a := SeatAvailability{
			Seat:      se,
			Available: true,
			Price:     s.strategy.Price(se, s.Date),
		}
		if b, ok := bookings[se.ID]; ok {
			snap := b.Snapshot(now)
			a.Status = snap.Status
			a.Price = snap.Price
			a.Available = snap.Status != StatusLocked && snap.Status != StatusConfirmed
		}
		out = append(out, a)
	}
	return out
}

// CountAvailable は now 時点の空席数を返す
func (s *Schedule) CountAvailable(now time.Time) int {
	count := 0
	for _, a := range s.Availability(now) {
		if a.Available {
			count++
		}
	}
	return count
}

// Stats は now 時点の状態別予約数を返す
func (s *Schedule) Stats(now time.Time) map[Status]int {
	stats := make(map[Status]int, len(AllStatuses))
	for _, b := range s.snapshotBookings() {
		stats[b.Snapshot(now).Status]++
	}
	return stats
}

func (s *Schedule) snapshotBookings() map[string]*SeatBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*SeatBooking, len(s.bookings))
	for id, b := range s.bookings {
		out[id] = b
	}
	return out
}
