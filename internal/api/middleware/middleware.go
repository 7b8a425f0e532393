package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/metrics"
)

// SetupMiddleware は共通ミドルウェアを設定する
// m が nil の場合は HTTP メトリクスを収集しない
func SetupMiddleware(e *echo.Echo, m *metrics.Metrics) {
	e.Use(RequestIDMiddleware())
	e.Use(RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType, HeaderUserID, echo.HeaderXRequestID},
	}))
	if m != nil {
		e.Use(PrometheusMiddleware(m))
	}
}
