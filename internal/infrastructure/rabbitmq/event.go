package rabbitmq

import (
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
)

// TicketIssuedEvent はチケット発行時に送信するメッセージ
type TicketIssuedEvent struct {
	TicketID    string    `json:"ticket_id"`
	ScheduleID  string    `json:"schedule_id"`
	MovieID     string    `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	UserID      string    `json:"user_id"`
	SeatIDs     []string  `json:"seat_ids"`
	BookingIDs  []string  `json:"booking_ids"`
	TotalAmount int       `json:"total_amount"`
	StartTime   string    `json:"start_time"`
	Date        string    `json:"date"`
	IssuedAt    time.Time `json:"issued_at"`
}

// NewTicketIssuedEvent はチケットからイベントを作成する
func NewTicketIssuedEvent(t *ticket.Ticket) TicketIssuedEvent {
	e := TicketIssuedEvent{
		TicketID:    t.ID(),
		ScheduleID:  t.ScheduleID(),
		MovieTitle:  t.MovieTitle(),
		SeatIDs:     t.SeatIDs(),
		BookingIDs:  t.BookingIDs(),
		TotalAmount: t.TotalAmount(),
		StartTime:   t.StartTime(),
		Date:        t.Date().Format("2006-01-02"),
		IssuedAt:    t.IssuedAt(),
	}
	if m := t.Movie(); m != nil {
		e.MovieID = m.ID
	}
	if u := t.User(); u != nil {
		e.UserID = u.ID
	}
	return e
}
