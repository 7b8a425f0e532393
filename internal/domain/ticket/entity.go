package ticket

import (
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

// Ticket は確定済みの販売記録を表す
// 作成後は変更できない
type Ticket struct {
	id          string
	movie       *catalog.Movie
	user        *catalog.User
	scheduleID  string
	startTime   string
	date        time.Time
	seats       []seat.Seat
	bookingIDs  []string
	totalAmount int
	issuedAt    time.Time
}

func (t *Ticket) ID() string { return t.id }
func (t *Ticket) Movie() *catalog.Movie { return t.movie }
func (t *Ticket) User() *catalog.User { return t.user }
func (t *Ticket) ScheduleID() string { return t.scheduleID }
func (t *Ticket) StartTime() string { return t.startTime }
func (t *Ticket) Date() time.Time { return t.date }
func (t *Ticket) TotalAmount() int { return t.totalAmount }
func (t *Ticket) IssuedAt() time.Time { return t.issuedAt }

// Seats は購入順の座席を返す
func (t *Ticket) Seats() []seat.Seat {
	out := make([]seat.Seat, len(t.seats))
	copy(out, t.seats)
	return out
}

// SeatIDs は購入順の座席IDを返す
func (t *Ticket) SeatIDs() []string {
	ids := make([]string, len(t.seats))
	for i, s := range t.seats {
		ids[i] = s.ID
	}
	return ids
}

// BookingIDs は確定した座席予約のIDを返す
func (t *Ticket) BookingIDs() []string {
	out := make([]string, len(t.bookingIDs))
	copy(out, t.bookingIDs)
	return out
}

// MovieTitle は映画タイトルを返す
func (t *Ticket) MovieTitle() string {
	if t.movie == nil {
		return ""
	}
	return t.movie.Title
}
