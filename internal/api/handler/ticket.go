package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/api"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/application"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
)

type TicketHandler struct {
	service BookingServiceInterface
}

func NewTicketHandler(s BookingServiceInterface) *TicketHandler {
	return &TicketHandler{service: s}
}

type PurchaseRequest struct {
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,dive,required" example:"A1,B1"`
}

type TicketSeat struct {
	SeatID string `json:"seat_id"`
	Type   string `json:"type"`
}

type TicketResponse struct {
	ID          string       `json:"id"`
	ScheduleID  string       `json:"schedule_id"`
	MovieTitle  string       `json:"movie_title" example:"Inception"`
	UserID      string       `json:"user_id"`
	StartTime   string       `json:"start_time" example:"19:30"`
	Date        string       `json:"date" example:"2025-01-06"`
	Seats       []TicketSeat `json:"seats"`
	BookingIDs  []string     `json:"booking_ids"`
	TotalAmount int          `json:"total_amount" example:"2000"`
	IssuedAt    time.Time    `json:"issued_at"`
}

func toTicketResponse(t *ticket.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          t.ID(),
		ScheduleID:  t.ScheduleID(),
		MovieTitle:  t.MovieTitle(),
		StartTime:   t.StartTime(),
		Date:        t.Date().Format("2006-01-02"),
		BookingIDs:  t.BookingIDs(),
		TotalAmount: t.TotalAmount(),
		IssuedAt:    t.IssuedAt(),
	}
	if u := t.User(); u != nil {
		resp.UserID = u.ID
	}
	for _, s := range t.Seats() {
		resp.Seats = append(resp.Seats, TicketSeat{SeatID: s.ID, Type: string(s.Type)})
	}
	return resp
}

// Purchase godoc
// @Summary チケットを購入
// @Description 指定座席をまとめて仮押さえ・確定し、チケットを発行します。1席でも確保できない場合は全体が失敗します
// @Tags tickets
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "スケジュールID"
// @Param request body PurchaseRequest true "座席ID"
// @Success 201 {object} TicketResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "座席を確保できない"
// @Router /schedules/{id}/tickets [post]
func (h *TicketHandler) Purchase(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t, err := h.service.PurchaseTickets(c.Request().Context(), application.PurchaseInput{
		ScheduleID: c.Param("id"),
		UserID:     userID,
		SeatIDs:    req.SeatIDs,
	})
	if err != nil {
		return api.ToHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toTicketResponse(t))
}
