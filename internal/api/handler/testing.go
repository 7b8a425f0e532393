package handler

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api"
)

// NewTestEcho は本番と同じバリデーターとエラーハンドラーを持つテスト用Echoを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	return e
}

// NewTestContext はリクエストとパスパラメータを設定したコンテキストを作成する
// names と values は同じ順序で指定する
func NewTestContext(e *echo.Echo, method, target, body string, names, values []string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}
