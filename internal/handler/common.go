package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seminar-hall-booking/internal/booking"
	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// dbTimeout bounds every store-backed request so a stalled database
// surfaces as an error instead of a hanging handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the user_id claim from the echo context. JWT numeric
// claims arrive as float64; other representations are handled for
// completeness.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getUserName extracts the display name claim, falling back to empty.
func getUserName(c echo.Context) string {
	if s, ok := c.Get("user_name").(string); ok {
		return s
	}
	return ""
}

// bookingJSON is the wire shape of a booking shared by every endpoint.
type bookingJSON struct {
	ID              uint64  `json:"id"`
	HallID          uint64  `json:"hall_id"`
	RequesterID     uint64  `json:"requester_id"`
	RequesterName   string  `json:"requester_name"`
	Purpose         string  `json:"purpose"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Attendees       uint32  `json:"attendee_count"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toBookingJSON(b model.Booking) bookingJSON {
	return bookingJSON{
		ID:              b.ID,
		HallID:          b.HallID,
		RequesterID:     b.RequesterID,
		RequesterName:   b.RequesterName,
		Purpose:         b.Purpose,
		Date:            b.Date,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Attendees:       b.Attendees,
		Status:          b.Status,
		RejectionReason: b.RejectionReason,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toBookingListJSON(bs []model.Booking) []bookingJSON {
	out := make([]bookingJSON, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingJSON(b))
	}
	return out
}

// engineError translates an engine failure into the matching HTTP response.
// Business rejections become 4xx answers; only storage faults are logged,
// as they indicate infrastructure trouble rather than user error.
func engineError(c echo.Context, err error) error {
	var conflict *booking.ConflictError
	var storage *booking.StorageError
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start time must be before end time"})
	case errors.Is(err, booking.ErrEmptyReason):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rejection reason is required"})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, booking.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not pending"})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "time slot is already booked",
			"hall_id":  conflict.HallID,
			"date":     conflict.Date,
			"occupied": conflict.Intervals,
		})
	case errors.As(err, &storage):
		log.Printf("booking store failure: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	log.Printf("unexpected booking error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
