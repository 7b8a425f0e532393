package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// チケット発行結果のラベル
const (
	TicketStatusSuccess     = "success"
	TicketStatusUnavailable = "unavailable"
	TicketStatusFailed      = "booking_failed"
	TicketStatusLockFailed  = "lock_failed"
	TicketStatusError       = "error"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// チケット発行の試行数（status: success, unavailable, booking_failed, lock_failed, error）
	TicketsTotal *prometheus.CounterVec

	// 座席予約の状態遷移数（operation: lock/confirm/cancel, result: success/failed）
	BookingTransitionsTotal *prometheus.CounterVec

	// 分散ロックの操作時間（operation: acquire/release, status: success/failed）
	DistributedLockDuration *prometheus.HistogramVec

	// 状態ごとの座席予約数
	ActiveBookings *prometheus.GaugeVec
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		TicketsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tickets_total",
				Help: "Total number of ticket purchase attempts",
			},
			[]string{"status"},
		),
		BookingTransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_transitions_total",
				Help: "Total number of seat booking state transitions",
			},
			[]string{"operation", "result"},
		),
		DistributedLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distributed_lock_duration_seconds",
				Help:    "Time spent on distributed lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		ActiveBookings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "active_bookings",
				Help: "Current number of seat bookings by status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TicketsTotal,
		m.BookingTransitionsTotal,
		m.DistributedLockDuration,
		m.ActiveBookings,
	)

	return m
}

// RecordTransition は状態遷移の結果を記録する
func (m *Metrics) RecordTransition(operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failed"
	}
	m.BookingTransitionsTotal.WithLabelValues(operation, result).Inc()
}

// RecordTicket はチケット発行結果を記録する
func (m *Metrics) RecordTicket(status string) {
	if m == nil {
		return
	}
	m.TicketsTotal.WithLabelValues(status).Inc()
}

var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

func Get() *Metrics {
	return defaultMetrics
}
