package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seminar-hall-booking/internal/booking"
	"github.com/iliyamo/seminar-hall-booking/internal/model"
	"github.com/iliyamo/seminar-hall-booking/internal/queue"
	queuepublisher "github.com/iliyamo/seminar-hall-booking/internal/service"
)

// AdminBookingHandler exposes the administrator decision surface: listing
// every booking and approving or rejecting pending requests. The ADMIN role
// gate is applied by middleware before any of these handlers run; the
// handlers themselves only translate between HTTP and the engine.
type AdminBookingHandler struct {
	Engine *booking.Engine
}

// NewAdminBookingHandler constructs an AdminBookingHandler.
func NewAdminBookingHandler(engine *booking.Engine) *AdminBookingHandler {
	if engine == nil {
		panic("nil engine passed to NewAdminBookingHandler")
	}
	return &AdminBookingHandler{Engine: engine}
}

// ListAll handles GET /v1/bookings and returns every booking on the
// platform for the admin dashboard.
func (h *AdminBookingHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	bs, err := h.Engine.ListAll(ctx)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingListJSON(bs))
}

// Approve handles PUT /v1/bookings/:id/approve. The engine re-checks the
// slot against already-approved bookings, so approving the second of two
// overlapping pending requests fails with 409 instead of silently creating
// a double booking.
func (h *AdminBookingHandler) Approve(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Engine.Approve(ctx, id)
	if err != nil {
		return engineError(c, err)
	}
	h.publishDecision(c, b)
	return c.JSON(http.StatusOK, toBookingJSON(b))
}

type rejectReq struct {
	Reason string `json:"reason"`
}

// Reject handles PUT /v1/bookings/:id/reject. A non-empty reason is
// mandatory; it is stored on the booking and included in the decision event.
func (h *AdminBookingHandler) Reject(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Engine.Reject(ctx, id, req.Reason)
	if err != nil {
		return engineError(c, err)
	}
	h.publishDecision(c, b)
	return c.JSON(http.StatusOK, toBookingJSON(b))
}

// publishDecision emits a booking.decided event. Publishing is best-effort:
// a broker outage must not fail the admin's decision, so errors are logged
// inside the publisher and otherwise ignored.
func (h *AdminBookingHandler) publishDecision(c echo.Context, b model.Booking) {
	adminID, _ := getUserID(c)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ev := queue.BookingDecidedEvent{
		BookingID:     b.ID,
		HallID:        b.HallID,
		RequesterID:   b.RequesterID,
		RequesterName: b.RequesterName,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		DecidedBy:     adminID,
		DecidedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if b.RejectionReason != nil {
		ev.RejectionReason = *b.RejectionReason
	}
	_ = queuepublisher.PublishBookingDecided(ctx, ev)
}
