package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/middleware"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/router"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/config"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/pricing"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/memory"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/postgres"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/rabbitmq"
	redisinfra "github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/worker"
)

type catalogSource interface {
	catalog.Catalog
	catalog.UserDirectory
}

func main() {
	cfg := config.Load()

	log := logger.New(cfg.App)
	logger.Set(log)
	defer func() { _ = logger.Sync() }()

	m := metrics.Init()
	clock := clockwork.NewRealClock()
	ctx := context.Background()

	// カタログ
	var movies catalogSource
	if cfg.Database.UsePostgres() {
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			logger.Fatal("データベース接続に失敗しました", zap.Error(err))
		}
		defer db.Close()
		if _, err := postgres.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
		}
		movies = postgres.NewCatalogRepository(db)
		logger.Info("カタログ: PostgreSQL", zap.String("host", cfg.Database.Host))
	} else {
		movies = memory.NewSeededCatalog()
		logger.Info("カタログ: インメモリ")
	}

	// 料金戦略と上映回
	weekendDays, err := pricing.ParseWeekdays(cfg.Booking.WeekendDays)
	if err != nil {
		logger.Fatal("週末の曜日設定が不正です", zap.Error(err))
	}
	strategy, err := pricing.New(pricing.Kind(cfg.Booking.Pricing), cfg.Booking.BasePrice, weekendDays...)
	if err != nil {
		logger.Fatal("料金戦略の設定が不正です", zap.Error(err))
	}

	schedules := memory.NewScheduleRepository()
	seeded, err := memory.SeedSchedules(ctx, movies, schedules, memory.SeedOptions{
		Date:       clock.Now(),
		StartTimes: []string{"19:30", "22:00"},
		ScheduleOpts: []schedule.Option{
			schedule.WithPricing(strategy),
			schedule.WithLockDuration(cfg.Booking.LockDuration),
			schedule.WithClock(clock),
		},
	})
	if err != nil {
		logger.Fatal("上映スケジュールの作成に失敗しました", zap.Error(err))
	}
	logger.Info("上映スケジュールを作成しました", zap.Int("count", len(seeded)))

	opts := []application.ServiceOption{application.WithMetrics(m)}

	// Redis（任意）
	if cfg.Redis.Enabled {
		client, err := redisinfra.Connect(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal("Redis接続に失敗しました", zap.Error(err))
		}
		defer client.Close()
		cache := redisinfra.NewSeatCache(client)
		opts = append(opts,
			application.WithPurchaseLocker(redisinfra.NewPurchaseLocker(redisinfra.NewLockManager(client), 30*time.Second)),
			application.WithAvailabilityCache(cache, cache.TTL()),
		)
		logger.Info("Redisを有効化しました", zap.String("addr", cfg.Redis.Addr()))
	}

	// チケット発行通知（任意）
	if cfg.AMQP.Enabled() {
		pub := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		opts = append(opts, application.WithTicketPublisher(pub))
		logger.Info("チケット発行通知を有効化しました", zap.String("queue", pub.Queue()))
	}

	svc := application.NewBookingService(schedules, movies, clock, opts...)

	collector := worker.NewBookingStatsCollector(svc, m, clock, cfg.Booking.StatsInterval)
	go collector.Start(ctx)

	e := router.New(router.Deps{
		Service: svc,
		Clock:   clock,
		Metrics: m,
		Auth:    middleware.LoadMetricsConfig(),
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("サーバーを起動します", zap.String("addr", addr), zap.String("env", cfg.App.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")
	collector.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
	}
	logger.Info("サーバーが正常にシャットダウンしました")
}
