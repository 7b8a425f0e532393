package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/pricing"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

// 2025-01-06 は月曜日
var testNow = time.Date(2025, 1, 6, 19, 30, 0, 0, time.UTC)

var (
	testMovie = &catalog.Movie{ID: "movie-1", Title: "Inception"}
	testUser  = &catalog.User{ID: "user-1", Name: "John Doe"}
	otherUser = &catalog.User{ID: "user-2", Name: "Jane Roe"}
)

func testSeats() []seat.Seat {
	return []seat.Seat{
		{ID: "A1", Type: seat.TypeNormal},
		{ID: "A2", Type: seat.TypeRecliner},
		{ID: "A3", Type: seat.TypeNormal},
	}
}

func createTestSchedule(t *testing.T, opts ...Option) (*Schedule, *clockwork.FakeClock) {
	t.Helper()
	clk := clockwork.NewFakeClockAt(testNow)
	seq := 0
	base := []Option{
		WithClock(clk),
		WithPricing(pricing.Regular(pricing.DefaultBasePrice)),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("booking-%d", seq)
		}),
	}
	sc, err := NewSchedule("schedule-1", testMovie, "20:00", testNow, testSeats(), append(base, opts...)...)
	require.NoError(t, err)
	return sc, clk
}

func requestBooking(t *testing.T, sc *Schedule, seatID string) *SeatBooking {
	t.Helper()
	b, err := sc.RequestBooking(seatID)
	require.NoError(t, err)
	return b
}
