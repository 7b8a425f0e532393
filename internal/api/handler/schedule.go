package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
)

type ScheduleHandler struct {
	service BookingServiceInterface
}

func NewScheduleHandler(s BookingServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{service: s}
}

type ScheduleResponse struct {
	ID         string `json:"id" example:"movie-inception-1930"`
	MovieID    string `json:"movie_id" example:"movie-inception"`
	MovieTitle string `json:"movie_title" example:"Inception"`
	StartTime  string `json:"start_time" example:"19:30"`
	Date       string `json:"date" example:"2025-01-06"`
	TotalSeats int    `json:"total_seats" example:"4"`
	Pricing    string `json:"pricing" example:"regular"`
}

type SeatResponse struct {
	SeatID    string `json:"seat_id" example:"A1"`
	Type      string `json:"type" example:"normal"`
	Status    string `json:"status,omitempty" example:"locked"`
	Available bool   `json:"available"`
	Price     int    `json:"price" example:"1000"`
}

type BookingResponse struct {
	BookingID   string     `json:"booking_id"`
	SeatID      string     `json:"seat_id" example:"A1"`
	Status      string     `json:"status" example:"locked"`
	LockExpiry  *time.Time `json:"lock_expiry,omitempty"`
	HolderID    string     `json:"holder_id,omitempty"`
	PurchaserID string     `json:"purchaser_id,omitempty"`
	Price       int        `json:"price" example:"1000"`
}

type CountResponse struct {
	ScheduleID string `json:"schedule_id"`
	Available  int    `json:"available"`
}

func toScheduleResponse(s *schedule.Schedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:         s.ID,
		StartTime:  s.StartTime,
		Date:       s.Date.Format("2006-01-02"),
		TotalSeats: len(s.Seats()),
		Pricing:    string(s.Pricing().Kind),
	}
	if s.Movie != nil {
		resp.MovieID = s.Movie.ID
		resp.MovieTitle = s.Movie.Title
	}
	return resp
}

func toSeatResponse(a schedule.SeatAvailability) SeatResponse {
	return SeatResponse{
		SeatID:    a.Seat.ID,
		Type:      string(a.Seat.Type),
		Status:    string(a.Status),
		Available: a.Available,
		Price:     a.Price,
	}
}

func toBookingResponse(s schedule.Snapshot) BookingResponse {
	return BookingResponse{
		BookingID:   s.ID,
		SeatID:      s.SeatID,
		Status:      string(s.Status),
		LockExpiry:  s.LockExpiry,
		HolderID:    s.HolderID,
		PurchaserID: s.PurchaserID,
		Price:       s.Price,
	}
}

// List godoc
// @Summary 上映スケジュール一覧
// @Tags schedules
// @Produce json
// @Success 200 {array} ScheduleResponse
// @Router /schedules [get]
func (h *ScheduleHandler) List(c echo.Context) error {
	list, err := h.service.ListSchedules(c.Request().Context())
	if err != nil {
		return api.ToHTTPError(err)
	}
	resp := make([]ScheduleResponse, len(list))
	for i, s := range list {
		resp[i] = toScheduleResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListSeats godoc
// @Summary 座席の空き状況と料金
// @Tags schedules
// @Produce json
// @Param id path string true "スケジュールID"
// @Success 200 {array} SeatResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /schedules/{id}/seats [get]
func (h *ScheduleHandler) ListSeats(c echo.Context) error {
	seats, err := h.service.ListSeats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.ToHTTPError(err)
	}
	resp := make([]SeatResponse, len(seats))
	for i, a := range seats {
		resp[i] = toSeatResponse(a)
	}
	return c.JSON(http.StatusOK, resp)
}

// CountSeats godoc
// @Summary 空席数
// @Tags schedules
// @Produce json
// @Param id path string true "スケジュールID"
// @Success 200 {object} CountResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /schedules/{id}/seats/count [get]
func (h *ScheduleHandler) CountSeats(c echo.Context) error {
	id := c.Param("id")
	count, err := h.service.CountAvailableSeats(c.Request().Context(), id)
	if err != nil {
		return api.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, CountResponse{ScheduleID: id, Available: count})
}

// Lock godoc
// @Summary 座席を仮押さえ
// @Description 座席を仮押さえします。期限内は本人のみ確定・取消できます
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "スケジュールID"
// @Param seatId path string true "座席ID"
// @Success 200 {object} BookingResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /schedules/{id}/seats/{seatId}/lock [post]
func (h *ScheduleHandler) Lock(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	snap, err := h.service.LockSeat(c.Request().Context(), c.Param("id"), c.Param("seatId"), userID)
	if err != nil {
		return api.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(snap))
}

// Confirm godoc
// @Summary 仮押さえ中の座席を確定
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "スケジュールID"
// @Param seatId path string true "座席ID"
// @Success 200 {object} BookingResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse "他の利用者の仮押さえ"
// @Failure 409 {object} api.ErrorResponse
// @Failure 410 {object} api.ErrorResponse "仮押さえの期限切れ"
// @Router /schedules/{id}/seats/{seatId}/confirm [post]
func (h *ScheduleHandler) Confirm(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	snap, err := h.service.ConfirmSeat(c.Request().Context(), c.Param("id"), c.Param("seatId"), userID)
	if err != nil {
		return api.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(snap))
}

// Cancel godoc
// @Summary 座席予約を取消
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "スケジュールID"
// @Param seatId path string true "座席ID"
// @Success 200 {object} BookingResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse "他の利用者の仮押さえ"
// @Failure 409 {object} api.ErrorResponse
// @Router /schedules/{id}/seats/{seatId}/cancel [post]
func (h *ScheduleHandler) Cancel(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	snap, err := h.service.CancelSeat(c.Request().Context(), c.Param("id"), c.Param("seatId"), userID)
	if err != nil {
		return api.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(snap))
}

func requireUserID(c echo.Context) (string, error) {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	return userID, nil
}
