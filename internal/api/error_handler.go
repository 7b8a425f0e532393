package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// StatusCode はドメインエラーに対応するHTTPステータスを返す
func StatusCode(err error) int {
	switch {
	case errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, schedule.ErrSeatNotFound),
		errors.Is(err, catalog.ErrUserNotFound),
		errors.Is(err, catalog.ErrMovieNotFound):
		return http.StatusNotFound

	// 購入処理の失敗は原因に関係なく競合として扱う
	case errors.Is(err, ticket.ErrSeatUnavailable),
		errors.Is(err, ticket.ErrBookingFailed),
		errors.Is(err, application.ErrPurchaseInProgress):
		return http.StatusConflict

	case errors.Is(err, schedule.ErrNotLockHolder):
		return http.StatusForbidden

	case errors.Is(err, schedule.ErrLockExpired):
		return http.StatusGone

	case errors.Is(err, schedule.ErrInvalidTransition),
		errors.Is(err, schedule.ErrLockLost):
		return http.StatusConflict

	case errors.Is(err, ticket.ErrInvalidSeatSelection),
		errors.Is(err, application.ErrUserIDRequired),
		errors.Is(err, application.ErrScheduleIDRequired),
		errors.Is(err, schedule.ErrPurchaserRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ToHTTPError はドメインエラーを echo.HTTPError に変換する
// 5xx の場合は内部のメッセージを返さない
func ToHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	code := StatusCode(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		message = "内部サーバーエラー"
	}
	return echo.NewHTTPError(code, message).SetInternal(err)
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he := ToHTTPError(err)
	code := he.Code
	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(code)
	}

	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
