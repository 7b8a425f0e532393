package router

import (
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/handler"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/api/middleware"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
)

// Deps はルーティングに必要な依存
type Deps struct {
	Service  handler.BookingServiceInterface
	Clock    clockwork.Clock
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // nil の場合はデフォルトレジストリ
	Auth     middleware.MetricsConfig
}

// New はミドルウェアとルートを設定した Echo を返す
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Validator = api.NewValidator()
	middleware.SetupMiddleware(e, d.Metrics)

	healthHandler := handler.NewHealthHandler(d.Clock)
	scheduleHandler := handler.NewScheduleHandler(d.Service)
	ticketHandler := handler.NewTicketHandler(d.Service)

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		middleware.MetricsBasicAuth(d.Auth))

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.GET("/schedules", scheduleHandler.List)
	v1.GET("/schedules/:id/seats", scheduleHandler.ListSeats)
	v1.GET("/schedules/:id/seats/count", scheduleHandler.CountSeats)
	v1.POST("/schedules/:id/seats/:seatId/lock", scheduleHandler.Lock)
	v1.POST("/schedules/:id/seats/:seatId/confirm", scheduleHandler.Confirm)
	v1.POST("/schedules/:id/seats/:seatId/cancel", scheduleHandler.Cancel)

	v1.POST("/schedules/:id/tickets", ticketHandler.Purchase)

	return e
}
