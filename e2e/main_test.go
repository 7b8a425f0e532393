package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/middleware"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/router"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/pricing"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/memory"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
)

const (
	scheduleID = "movie-inception-1930"
	userID     = "user-1"
	strangerID = "user-2"
)

// 2025-01-06 は月曜日
var testNow = time.Date(2025, 1, 6, 19, 0, 0, 0, time.UTC)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo     *echo.Echo
	Clock    *clockwork.FakeClock
	Registry *prometheus.Registry
}

// NewTestServer はインメモリ構成でテスト用サーバーを作成する
// 上映回 movie-inception-1930 に A1, A2（通常席）と B1, B2（リクライニング席）を持つ
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testNow)
	catalog := memory.NewSeededCatalog()
	schedules := memory.NewScheduleRepository()

	_, err := memory.SeedSchedules(context.Background(), catalog, schedules, memory.SeedOptions{
		Date: testNow,
		ScheduleOpts: []schedule.Option{
			schedule.WithPricing(pricing.Regular(pricing.DefaultBasePrice)),
			schedule.WithLockDuration(schedule.DefaultLockDuration),
			schedule.WithClock(clock),
		},
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	svc := application.NewBookingService(schedules, catalog, clock, application.WithMetrics(m))

	e := router.New(router.Deps{
		Service:  svc,
		Clock:    clock,
		Metrics:  m,
		Gatherer: reg,
		Auth:     middleware.MetricsConfig{},
	})
	return &TestServer{Echo: e, Clock: clock, Registry: reg}
}

// Request はHTTPリクエストを実行する
func (s *TestServer) Request(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func withUser(id string) map[string]string {
	return map[string]string{"X-User-ID": id}
}
