package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seminar-hall-booking/internal/booking"
	"github.com/iliyamo/seminar-hall-booking/internal/model"
	"github.com/iliyamo/seminar-hall-booking/internal/repository"
)

// HallGetter is the slice of the hall repository the booking handler needs
// to verify that a referenced hall exists. Tests substitute a stub.
type HallGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
}

// BookingHandler exposes the requester-facing booking operations: creating
// a request, listing one's own bookings and reading a hall's availability.
// JWT authentication has already run; the handler trusts the identity in the
// context and passes it into the engine as the requester.
type BookingHandler struct {
	Engine *booking.Engine
	Halls  HallGetter
}

// NewBookingHandler constructs a BookingHandler. Both dependencies must be
// non-nil.
func NewBookingHandler(engine *booking.Engine, halls HallGetter) *BookingHandler {
	if engine == nil || halls == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, Halls: halls}
}

type createBookingReq struct {
	HallID    uint64 `json:"hall_id"`
	Purpose   string `json:"purpose"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Attendees uint32 `json:"attendee_count"`
}

// Create handles POST /v1/bookings. The requested slot is validated and
// checked for conflicts by the engine; on success a PENDING booking is
// returned with 201. A conflicting slot yields 409 together with the
// occupied intervals so the client can propose alternatives.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id is required"})
	}
	if strings.TrimSpace(req.Purpose) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "purpose is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// The hall must exist before its calendar can be booked.
	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if err == repository.ErrHallNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	b, err := h.Engine.Request(ctx, booking.Draft{
		HallID:        req.HallID,
		RequesterID:   userID,
		RequesterName: getUserName(c),
		Purpose:       strings.TrimSpace(req.Purpose),
		Date:          strings.TrimSpace(req.Date),
		StartTime:     strings.TrimSpace(req.StartTime),
		EndTime:       strings.TrimSpace(req.EndTime),
		Attendees:     req.Attendees,
	})
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingJSON(b))
}

// Mine handles GET /v1/bookings/me and lists the caller's own bookings
// across all halls and dates.
func (h *BookingHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bs, err := h.Engine.ListByRequester(ctx, userID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingListJSON(bs))
}

// Availability handles GET /v1/bookings/availability?hall_id=N&date=YYYY-MM-DD.
// It returns every booking for the hall and date, rejected ones included, so
// the client can render occupied intervals without performing a write.
func (h *BookingHandler) Availability(c echo.Context) error {
	hallID, err := strconv.ParseUint(c.QueryParam("hall_id"), 10, 64)
	if err != nil || hallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id is required"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bs, err := h.Engine.Availability(ctx, hallID, date)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingListJSON(bs))
}
