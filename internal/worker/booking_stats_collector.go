package worker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
)

// StatsSource は状態別の座席予約数を提供する
type StatsSource interface {
	BookingStats(ctx context.Context) (map[schedule.Status]int, error)
}

// BookingStatsCollector は座席予約数を定期的にゲージへ反映するワーカー
// 予約の状態は変更しない（期限切れは参照時に判定される）
type BookingStatsCollector struct {
	source   StatsSource
	gauge    *metrics.Metrics
	clock    clockwork.Clock
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewBookingStatsCollector(src StatsSource, m *metrics.Metrics, clock clockwork.Clock, interval time.Duration) *BookingStatsCollector {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BookingStatsCollector{
		source:   src,
		gauge:    m,
		clock:    clock,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start は収集を開始する。起動直後に1回収集する
func (c *BookingStatsCollector) Start(ctx context.Context) {
	logger.Info("予約統計コレクター開始", zap.Duration("interval", c.interval))

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	c.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("予約統計コレクター停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("予約統計コレクター停止（シグナル受信）")
			return
		case <-ticker.Chan():
			c.collect(ctx)
		}
	}
}

// Stop はコレクターを停止し、ループの終了を待つ
func (c *BookingStatsCollector) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

func (c *BookingStatsCollector) collect(ctx context.Context) {
	stats, err := c.source.BookingStats(ctx)
	if err != nil {
		logger.Error("予約統計の取得に失敗", zap.Error(err))
		return
	}
	if c.gauge == nil {
		return
	}
	for _, st := range schedule.AllStatuses {
		c.gauge.ActiveBookings.WithLabelValues(string(st)).Set(float64(stats[st]))
	}
	logger.Debug("予約統計を更新", zap.Any("stats", stats))
}
