package main

import (
	"context"
	"os"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/config"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/pricing"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/infrastructure/memory"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/presentation/console"
)

// 映画 Inception の 20:00 の回で、通常席 A1 とリクライニング席 A2 を購入する
func main() {
	cfg := config.Load()
	logger.Set(logger.New(cfg.App))
	defer logger.Sync()

	ctx := context.Background()
	clock := clockwork.NewRealClock()
	catalog := memory.NewSeededCatalog()

	movie, err := catalog.GetMovie(ctx, "movie-inception")
	if err != nil {
		logger.Fatal("映画の取得に失敗しました", zap.Error(err))
	}
	user, err := catalog.GetUser(ctx, "user-1")
	if err != nil {
		logger.Fatal("ユーザーの取得に失敗しました", zap.Error(err))
	}

	sched, err := schedule.NewSchedule("demo-2000", movie, "20:00", clock.Now(),
		[]seat.Seat{{ID: "A1", Type: seat.TypeNormal}, {ID: "A2", Type: seat.TypeRecliner}},
		schedule.WithPricing(pricing.Regular(pricing.DefaultBasePrice)),
		schedule.WithClock(clock),
	)
	if err != nil {
		logger.Fatal("上映スケジュールの作成に失敗しました", zap.Error(err))
	}

	t, err := ticket.Finalize(sched, []string{"A1", "A2"}, user, clock.Now())
	if err != nil {
		_ = console.RenderError(os.Stdout, err)
		// os.Exit は defer を実行しない
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = console.RenderTicket(os.Stdout, t)
}
