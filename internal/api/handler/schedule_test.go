package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

func newScheduleContext(e *echo.Echo, method, path string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for _, k := range []string{"id", "seatId"} {
		if v, ok := params[k]; ok {
			names = append(names, k)
			values = append(values, v)
		}
	}
	return NewTestContext(e, method, path, "", names, values)
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, code, he.Code)
}

func TestScheduleHandler_List(t *testing.T) {
	e := NewTestEcho()
	mockService := new(MockBookingService)
	mockService.On("ListSchedules", mock.Anything).Return([]*schedule.Schedule{newTestSchedule(t)}, nil)

	c, rec := newScheduleContext(e, http.MethodGet, "/api/v1/schedules", nil)
	err := NewScheduleHandler(mockService).List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "sched-1", resp[0].ID)
	assert.Equal(t, "Inception", resp[0].MovieTitle)
	assert.Equal(t, "2025-01-06", resp[0].Date)
	assert.Equal(t, 2, resp[0].TotalSeats)
	assert.Equal(t, "regular", resp[0].Pricing)
}

func TestScheduleHandler_ListSeats(t *testing.T) {
	e := NewTestEcho()

	t.Run("空き状況を返す", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ListSeats", mock.Anything, "sched-1").Return([]schedule.SeatAvailability{
			{Seat: seat.Seat{ID: "A1", Type: seat.TypeNormal}, Status: schedule.StatusLocked, Available: false, Price: 1000},
			{Seat: seat.Seat{ID: "B1", Type: seat.TypeRecliner}, Available: true, Price: 1000},
		}, nil)

		c, rec := newScheduleContext(e, http.MethodGet, "/", map[string]string{"id": "sched-1"})
		require.NoError(t, NewScheduleHandler(mockService).ListSeats(c))

		var resp []SeatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "locked", resp[0].Status)
		assert.False(t, resp[0].Available)
		assert.Equal(t, "recliner", resp[1].Type)
		assert.True(t, resp[1].Available)
	})

	t.Run("存在しないスケジュールは404", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ListSeats", mock.Anything, "unknown").Return(nil, schedule.ErrScheduleNotFound)

		c, _ := newScheduleContext(e, http.MethodGet, "/", map[string]string{"id": "unknown"})
		err := NewScheduleHandler(mockService).ListSeats(c)
		assertHTTPError(t, err, http.StatusNotFound)
	})
}

func TestScheduleHandler_CountSeats(t *testing.T) {
	e := NewTestEcho()
	mockService := new(MockBookingService)
	mockService.On("CountAvailableSeats", mock.Anything, "sched-1").Return(3, nil)

	c, rec := newScheduleContext(e, http.MethodGet, "/", map[string]string{"id": "sched-1"})
	require.NoError(t, NewScheduleHandler(mockService).CountSeats(c))

	var resp CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, CountResponse{ScheduleID: "sched-1", Available: 3}, resp)
}

func TestScheduleHandler_Lock(t *testing.T) {
	e := NewTestEcho()
	params := map[string]string{"id": "sched-1", "seatId": "A1"}

	t.Run("ユーザーIDなしは401", func(t *testing.T) {
		mockService := new(MockBookingService)
		c, _ := newScheduleContext(e, http.MethodPost, "/", params)

		assertHTTPError(t, NewScheduleHandler(mockService).Lock(c), http.StatusUnauthorized)
		mockService.AssertNotCalled(t, "LockSeat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("仮押さえできる", func(t *testing.T) {
		exp := time.Date(2025, 1, 6, 19, 10, 0, 0, time.UTC)
		mockService := new(MockBookingService)
		mockService.On("LockSeat", mock.Anything, "sched-1", "A1", "user-1").Return(schedule.Snapshot{
			ID: "booking-1", SeatID: "A1", Status: schedule.StatusLocked, LockExpiry: &exp, HolderID: "user-1", Price: 1000,
		}, nil)

		c, rec := newScheduleContext(e, http.MethodPost, "/", params)
		c.Request().Header.Set("X-User-ID", "user-1")
		require.NoError(t, NewScheduleHandler(mockService).Lock(c))

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "locked", resp.Status)
		assert.Equal(t, "user-1", resp.HolderID)
		require.NotNil(t, resp.LockExpiry)
		assert.True(t, exp.Equal(*resp.LockExpiry))
	})

	t.Run("仮押さえ済みは409", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("LockSeat", mock.Anything, "sched-1", "A1", "user-1").
			Return(schedule.Snapshot{}, fmt.Errorf("%w: locked → locked", schedule.ErrInvalidTransition))

		c, _ := newScheduleContext(e, http.MethodPost, "/", params)
		c.Request().Header.Set("X-User-ID", "user-1")
		assertHTTPError(t, NewScheduleHandler(mockService).Lock(c), http.StatusConflict)
	})
}

func TestScheduleHandler_Confirm(t *testing.T) {
	e := NewTestEcho()
	params := map[string]string{"id": "sched-1", "seatId": "A1"}

	t.Run("ユーザーIDなしは401", func(t *testing.T) {
		mockService := new(MockBookingService)
		c, _ := newScheduleContext(e, http.MethodPost, "/", params)

		assertHTTPError(t, NewScheduleHandler(mockService).Confirm(c), http.StatusUnauthorized)
		mockService.AssertNotCalled(t, "ConfirmSeat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("確定できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ConfirmSeat", mock.Anything, "sched-1", "A1", "user-1").Return(schedule.Snapshot{
			ID: "booking-1", SeatID: "A1", Status: schedule.StatusConfirmed, PurchaserID: "user-1", Price: 1000,
		}, nil)

		c, rec := newScheduleContext(e, http.MethodPost, "/", params)
		c.Request().Header.Set("X-User-ID", "user-1")
		require.NoError(t, NewScheduleHandler(mockService).Confirm(c))

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, "user-1", resp.PurchaserID)
	})

	t.Run("期限切れは410", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("ConfirmSeat", mock.Anything, "sched-1", "A1", "user-1").
			Return(schedule.Snapshot{Status: schedule.StatusExpired}, schedule.ErrLockExpired)

		c, _ := newScheduleContext(e, http.MethodPost, "/", params)
		c.Request().Header.Set("X-User-ID", "user-1")
		assertHTTPError(t, NewScheduleHandler(mockService).Confirm(c), http.StatusGone)
	})
}

func TestScheduleHandler_Cancel(t *testing.T) {
	e := NewTestEcho()
	params := map[string]string{"id": "sched-1", "seatId": "A1"}

	t.Run("ユーザーIDなしは401", func(t *testing.T) {
		mockService := new(MockBookingService)
		c, _ := newScheduleContext(e, http.MethodPost, "/", params)

		assertHTTPError(t, NewScheduleHandler(mockService).Cancel(c), http.StatusUnauthorized)
		mockService.AssertNotCalled(t, "CancelSeat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("取消できる", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("CancelSeat", mock.Anything, "sched-1", "A1", "user-1").
			Return(schedule.Snapshot{ID: "booking-1", SeatID: "A1", Status: schedule.StatusCancelled}, nil)

		c, rec := newScheduleContext(e, http.MethodPost, "/", params)
		c.Request().Header.Set("X-User-ID", "user-1")
		require.NoError(t, NewScheduleHandler(mockService).Cancel(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
	})

	t.Run("他の利用者の仮押さえは403", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("CancelSeat", mock.Anything, "sched-1", "A1", "user-2").
			Return(schedule.Snapshot{Status: schedule.StatusLocked}, schedule.ErrNotLockHolder)

		c, _ := newScheduleContext(e, http.MethodPost, "/", params)
		c.Request().Header.Set("X-User-ID", "user-2")
		assertHTTPError(t, NewScheduleHandler(mockService).Cancel(c), http.StatusForbidden)
	})

	t.Run("内部エラーは500", func(t *testing.T) {
		mockService := new(MockBookingService)
		mockService.On("CancelSeat", mock.Anything, "sched-1", "A1", "user-1").
			Return(schedule.Snapshot{}, errors.New("unexpected"))

		c, _ := newScheduleContext(e, http.MethodPost, "/", params)
		c.Request().Header.Set("X-User-ID", "user-1")
		assertHTTPError(t, NewScheduleHandler(mockService).Cancel(c), http.StatusInternalServerError)
	})
}
