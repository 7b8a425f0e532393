package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Check(t *testing.T) {
	e := NewTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(clockwork.NewFakeClockAt(time.Date(2025, 1, 6, 19, 0, 0, 0, time.UTC)))

	err := h.Check(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"timestamp":"2025-01-06T19:00:00Z"`)
}

func TestNewHealthHandler(t *testing.T) {
	h := NewHealthHandler(nil)
	assert.NotNil(t, h)
	assert.NotNil(t, h.clock)
}
