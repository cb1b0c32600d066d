// Package booking implements the conflict detection and approval lifecycle
// for seminar hall bookings. The engine guards a hall's calendar against
// double-booking: a slot is occupied by any non-rejected booking, and the
// check-then-create sequence is serialized per (hall, date) so concurrent
// requests cannot both claim overlapping intervals.
package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange is returned when a requested slot does not satisfy
// startTime < endTime, or when the date/time strings are malformed. It is
// raised before any store access.
var ErrInvalidRange = errors.New("invalid time range")

// ErrInvalidTransition is returned when approve/reject is invoked on a
// booking that is not PENDING. It usually indicates stale client state or a
// double submit; callers should refetch before retrying.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotFound is returned when an operation references an absent booking.
var ErrNotFound = errors.New("booking not found")

// ErrEmptyReason is returned when a rejection is attempted without a reason.
var ErrEmptyReason = errors.New("rejection reason required")

// Interval is a half-open [Start, End) slot on a hall's calendar. Times are
// "HH:MM" strings, so lexicographic order matches chronological order.
type Interval struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// intervals (one ending exactly where the other starts) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// ConflictError reports that a requested slot overlaps one or more existing
// non-rejected bookings. The occupied intervals are included so callers can
// offer the requester an alternative.
type ConflictError struct {
	HallID    uint64     `json:"hall_id"`
	Date      string     `json:"date"`
	Intervals []Interval `json:"occupied"`
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Intervals))
	for _, iv := range e.Intervals {
		parts = append(parts, iv.Start+"-"+iv.End)
	}
	return fmt.Sprintf("slot conflict on hall %d date %s: occupied %s",
		e.HallID, e.Date, strings.Join(parts, ", "))
}

// StorageError wraps an infrastructure fault from the underlying store
// (connection loss, timeout). The enclosed operation never persisted, so the
// whole call is safe to retry. Business rejections are never wrapped in a
// StorageError.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "booking store: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
