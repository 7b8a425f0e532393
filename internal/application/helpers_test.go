package application

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/memory"
)

// 2025-01-06 は月曜日
var testNow = time.Date(2025, 1, 6, 19, 0, 0, 0, time.UTC)

type testEnv struct {
	service *BookingService
	repo    *memory.ScheduleRepository
	clock   *clockwork.FakeClock
	sched   *schedule.Schedule
}

func setupTestEnv(t *testing.T, opts ...ServiceOption) *testEnv {
	t.Helper()
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(testNow)
	catalog := memory.NewSeededCatalog()
	repo := memory.NewScheduleRepository()

	created, err := memory.SeedSchedules(ctx, catalog, repo, memory.SeedOptions{
		Date:         testNow,
		SeatsPerRow:  2,
		ScheduleOpts: []schedule.Option{schedule.WithClock(clock)},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	return &testEnv{
		service: NewBookingService(repo, catalog, clock, opts...),
		repo:    repo,
		clock:   clock,
		sched:   created[0],
	}
}
