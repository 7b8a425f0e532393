package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
)

// MockPurchaseLocker implements PurchaseLocker
type MockPurchaseLocker struct {
	mock.Mock
	released int
}

func (m *MockPurchaseLocker) Acquire(ctx context.Context, scheduleID string, seatIDs []string) (func(context.Context), error) {
	args := m.Called(ctx, scheduleID, seatIDs)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) { m.released++ }, nil
}

// MockAvailabilityCache implements AvailabilityCache
type MockAvailabilityCache struct {
	mock.Mock
}

func (m *MockAvailabilityCache) GetAvailableCount(ctx context.Context, scheduleID string) (int, error) {
	args := m.Called(ctx, scheduleID)
	return args.Int(0), args.Error(1)
}

func (m *MockAvailabilityCache) SetAvailableCount(ctx context.Context, scheduleID string, count int, ttl time.Duration) error {
	args := m.Called(ctx, scheduleID, count, ttl)
	return args.Error(0)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

// MockTicketPublisher implements TicketPublisher
type MockTicketPublisher struct {
	mock.Mock
}

func (m *MockTicketPublisher) PublishTicketIssued(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
