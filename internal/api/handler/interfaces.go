package handler

import (
	"context"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
)

// BookingServiceInterface は座席予約サービスのインターフェース
type BookingServiceInterface interface {
	ListSchedules(ctx context.Context) ([]*schedule.Schedule, error)
	ListSeats(ctx context.Context, scheduleID string) ([]schedule.SeatAvailability, error)
	CountAvailableSeats(ctx context.Context, scheduleID string) (int, error)
	LockSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error)
	ConfirmSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error)
	CancelSeat(ctx context.Context, scheduleID, seatID, userID string) (schedule.Snapshot, error)
	PurchaseTickets(ctx context.Context, input application.PurchaseInput) (*ticket.Ticket, error)
}
