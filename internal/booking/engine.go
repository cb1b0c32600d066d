package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// Draft carries the caller-supplied fields of a new booking request. The
// requester identity comes from the authenticated session, never from the
// request body.
type Draft struct {
	HallID        uint64
	RequesterID   uint64
	RequesterName string
	Purpose       string
	Date          string // "YYYY-MM-DD"
	StartTime     string // "HH:MM"
	EndTime       string // "HH:MM"
	Attendees     uint32
}

// Engine enforces the no-double-booking invariant and mediates the
// PENDING -> APPROVED / REJECTED lifecycle. All writes to a hall's calendar
// for one date go through the per-key lock, so the read-check-write sequence
// is atomic with respect to other requests on the same key.
type Engine struct {
	store Store
	locks *keyedMutex
}

// NewEngine returns an Engine backed by the given store.
func NewEngine(store Store) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store, locks: newKeyedMutex()}
}

// Request validates a draft and creates a PENDING booking if its slot is
// free. It returns ErrInvalidRange for malformed or empty intervals, a
// *ConflictError when the slot overlaps an existing non-rejected booking and
// a *StorageError when the store fails. Nothing is persisted on error.
func (e *Engine) Request(ctx context.Context, d Draft) (model.Booking, error) {
	if err := validateSlot(d.Date, d.StartTime, d.EndTime); err != nil {
		return model.Booking{}, err
	}

	unlock := e.locks.Lock(slotKey(d.HallID, d.Date))
	defer unlock()

	existing, err := e.store.ListByHallAndDate(ctx, d.HallID, d.Date)
	if err != nil {
		return model.Booking{}, &StorageError{Op: "list by hall and date", Err: err}
	}
	if busy := occupiedOverlaps(existing, d.StartTime, d.EndTime, 0, false); len(busy) > 0 {
		return model.Booking{}, &ConflictError{HallID: d.HallID, Date: d.Date, Intervals: busy}
	}

	b := model.Booking{
		HallID:        d.HallID,
		RequesterID:   d.RequesterID,
		RequesterName: d.RequesterName,
		Purpose:       d.Purpose,
		Date:          d.Date,
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		Attendees:     d.Attendees,
		Status:        model.StatusPending,
	}
	if err := e.store.Create(ctx, &b); err != nil {
		return model.Booking{}, &StorageError{Op: "create", Err: err}
	}
	return b, nil
}

// Availability returns every booking (all statuses, rejected included) for a
// hall on a date. Callers filter as needed; an untouched key yields an empty
// slice, not an error.
func (e *Engine) Availability(ctx context.Context, hallID uint64, date string) ([]model.Booking, error) {
	out, err := e.store.ListByHallAndDate(ctx, hallID, date)
	if err != nil {
		return nil, &StorageError{Op: "list by hall and date", Err: err}
	}
	if out == nil {
		out = []model.Booking{}
	}
	return out, nil
}

// Approve moves a PENDING booking to APPROVED. Before committing, the slot
// is re-checked against bookings that are already APPROVED: two overlapping
// pending requests can coexist, but only the first of them can be approved.
// Returns ErrNotFound, ErrInvalidTransition, *ConflictError or *StorageError.
func (e *Engine) Approve(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := e.getByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if b.Status != model.StatusPending {
		return model.Booking{}, ErrInvalidTransition
	}

	unlock := e.locks.Lock(slotKey(b.HallID, b.Date))
	defer unlock()

	existing, err := e.store.ListByHallAndDate(ctx, b.HallID, b.Date)
	if err != nil {
		return model.Booking{}, &StorageError{Op: "list by hall and date", Err: err}
	}
	if busy := occupiedOverlaps(existing, b.StartTime, b.EndTime, b.ID, true); len(busy) > 0 {
		return model.Booking{}, &ConflictError{HallID: b.HallID, Date: b.Date, Intervals: busy}
	}

	updated, swapped, err := e.store.UpdateStatus(ctx, id, model.StatusPending, model.StatusApproved, nil)
	if err != nil {
		return model.Booking{}, wrapStoreErr("update status", err)
	}
	if !swapped {
		return model.Booking{}, ErrInvalidTransition
	}
	return updated, nil
}

// Reject moves a PENDING booking to REJECTED and records the mandatory
// reason. The freed slot immediately stops blocking new requests.
func (e *Engine) Reject(ctx context.Context, id uint64, reason string) (model.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return model.Booking{}, ErrEmptyReason
	}
	b, err := e.getByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if b.Status != model.StatusPending {
		return model.Booking{}, ErrInvalidTransition
	}

	updated, swapped, err := e.store.UpdateStatus(ctx, id, model.StatusPending, model.StatusRejected, &reason)
	if err != nil {
		return model.Booking{}, wrapStoreErr("update status", err)
	}
	if !swapped {
		return model.Booking{}, ErrInvalidTransition
	}
	return updated, nil
}

// GetByID returns one booking or ErrNotFound.
func (e *Engine) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return e.getByID(ctx, id)
}

// ListByRequester returns all bookings created by one requester.
func (e *Engine) ListByRequester(ctx context.Context, requesterID uint64) ([]model.Booking, error) {
	out, err := e.store.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, &StorageError{Op: "list by requester", Err: err}
	}
	if out == nil {
		out = []model.Booking{}
	}
	return out, nil
}

// ListAll returns every booking for the administrator view. The admin role
// gate is enforced by middleware before the call reaches the engine.
func (e *Engine) ListAll(ctx context.Context) ([]model.Booking, error) {
	out, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list all", Err: err}
	}
	if out == nil {
		out = []model.Booking{}
	}
	return out, nil
}

func (e *Engine) getByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := e.store.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, wrapStoreErr("get by id", err)
	}
	return b, nil
}

// wrapStoreErr passes business sentinels through untouched and wraps
// everything else as a StorageError.
func wrapStoreErr(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// occupiedOverlaps collects the intervals of candidates that overlap
// [start, end) and still occupy their slot. When approvedOnly is set, only
// APPROVED candidates count (the approval-time re-check); otherwise any
// non-REJECTED candidate blocks. skipID excludes the booking being decided.
func occupiedOverlaps(candidates []model.Booking, start, end string, skipID uint64, approvedOnly bool) []Interval {
	slot := Interval{Start: start, End: end}
	var busy []Interval
	for _, c := range candidates {
		if c.ID == skipID && skipID != 0 {
			continue
		}
		if approvedOnly {
			if c.Status != model.StatusApproved {
				continue
			}
		} else if !c.Occupies() {
			continue
		}
		iv := Interval{Start: c.StartTime, End: c.EndTime}
		if slot.Overlaps(iv) {
			busy = append(busy, iv)
		}
	}
	return busy
}

// validateSlot checks the date and time formats and the start < end
// invariant. All violations map to ErrInvalidRange so the caller sees a
// single user-correctable failure mode.
func validateSlot(date, start, end string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidRange
	}
	if _, err := time.Parse("15:04", start); err != nil {
		return ErrInvalidRange
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return ErrInvalidRange
	}
	if start >= end {
		return ErrInvalidRange
	}
	return nil
}
