package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
)

// FormatAmount は最小単位の金額を "$10.00" 形式にする
func FormatAmount(minor int) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s$%d.%02d", sign, minor/100, minor%100)
}

// RenderTicket は発行済みチケットを出力する
func RenderTicket(w io.Writer, t *ticket.Ticket) error {
	if _, err := fmt.Fprintf(w, "Booking successful for movie: %s\n", t.MovieTitle()); err != nil {
		return err
	}
	for _, s := range t.Seats() {
		if _, err := fmt.Fprintf(w, "  Seat %s (%s)\n", s.ID, s.Type); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total amount: %s\n", FormatAmount(t.TotalAmount()))
	return err
}

// RenderError は購入失敗の理由を利用者向けに出力する
func RenderError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "Booking failed: %s\n", errorMessage(err))
	return werr
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, ticket.ErrSeatUnavailable):
		return "one or more seats are no longer available"
	case errors.Is(err, ticket.ErrBookingFailed):
		return "the seats could not be confirmed, please try again"
	case errors.Is(err, ticket.ErrInvalidSeatSelection):
		return "invalid seat selection"
	case errors.Is(err, schedule.ErrSeatNotFound):
		return "seat does not exist"
	case errors.Is(err, schedule.ErrLockExpired):
		return "seat hold has expired"
	case errors.Is(err, schedule.ErrPurchaserRequired):
		return "a purchaser is required"
	}
	return "unexpected error"
}
