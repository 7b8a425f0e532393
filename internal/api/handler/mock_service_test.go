package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
)

// MockBookingService はBookingServiceInterfaceのモック
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ListSchedules(ctx context.Context) ([]*schedule.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.Schedule), args.Error(1)
}

func (m *MockBookingService) ListSeats(ctx context.Context, scheduleID string) ([]schedule.SeatAvailability, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schedule.SeatAvailability), args.Error(1)
}

func (m *MockBookingService) CountAvailableSeats(ctx context.Context, scheduleID string) (int, error) {
	args := m.Called(ctx, scheduleID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingService) LockSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error) {
	args := m.Called(ctx, scheduleID, seatID, userID)
	return args.Get(0).(schedule.Snapshot), args.Error(1)
}

func (m *MockBookingService) ConfirmSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error) {
	args := m.Called(ctx, scheduleID, seatID, userID)
	return args.Get(0).(schedule.Snapshot), args.Error(1)
}

func (m *MockBookingService) CancelSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error) {
	args := m.Called(ctx, scheduleID, seatID, userID)
	return args.Get(0).(schedule.Snapshot), args.Error(1)
}

func (m *MockBookingService) PurchaseTickets(ctx context.Context, input application.PurchaseInput) (*ticket.Ticket, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticket.Ticket), args.Error(1)
}

var testDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func newTestSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	s, err := schedule.NewSchedule("sched-1", &catalog.Movie{ID: "movie-inception", Title: "Inception"}, "19:30", testDate,
		[]seat.Seat{{ID: "A1", Type: seat.TypeNormal}, {ID: "B1", Type: seat.TypeRecliner}})
	require.NoError(t, err)
	return s
}

func issueTestTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.Finalize(newTestSchedule(t), []string{"A1", "B1"}, &catalog.User{ID: "user-1", Name: "John Doe"},
		testDate.Add(19*time.Hour), ticket.WithIDGenerator(func() string { return "ticket-1" }))
	require.NoError(t, err)
	return tk
}
