package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

func newTestEngine() (*Engine, *MemoryStore) {
	store := NewMemoryStore()
	return NewEngine(store), store
}

func draft(hall uint64, date, start, end string) Draft {
	return Draft{
		HallID:        hall,
		RequesterID:   7,
		RequesterName: "Dr. Rahimi",
		Purpose:       "weekly seminar",
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		Attendees:     40,
	}
}

func TestRequest_CreatesPending(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	b, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if b.ID == 0 {
		t.Fatalf("expected assigned id, got %#v", b)
	}
	if b.Status != model.StatusPending {
		t.Fatalf("expected PENDING, got %s", b.Status)
	}
	if b.RejectionReason != nil {
		t.Fatalf("new booking must not carry a rejection reason")
	}
}

func TestRequest_BackToBackDoesNotConflict(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	if _, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00")); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := e.Request(ctx, draft(1, "2025-03-10", "11:00", "12:00")); err != nil {
		t.Fatalf("back-to-back should succeed: %v", err)
	}
}

func TestRequest_ExactDuplicateConflicts(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	if _, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00")); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflict.Intervals) != 1 || conflict.Intervals[0] != (Interval{Start: "10:00", End: "11:00"}) {
		t.Fatalf("expected occupied 10:00-11:00, got %+v", conflict.Intervals)
	}
}

func TestRequest_EdgeOverlaps(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		conflict   bool
	}{
		{"overlap left edge", "09:30", "10:30", true},
		{"overlap right edge", "10:30", "11:30", true},
		{"contained", "10:15", "10:45", true},
		{"covering", "09:00", "12:00", true},
		{"adjacent after", "11:00", "12:00", false},
		{"adjacent before", "09:00", "10:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine()
			ctx := context.Background()
			if _, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00")); err != nil {
				t.Fatalf("seed: %v", err)
			}
			_, err := e.Request(ctx, draft(1, "2025-03-10", tc.start, tc.end))
			var conflict *ConflictError
			got := errors.As(err, &conflict)
			if got != tc.conflict {
				t.Fatalf("%s-%s: conflict=%v, want %v (err=%v)", tc.start, tc.end, got, tc.conflict, err)
			}
		})
	}
}

func TestRequest_OtherHallOrDateDoesNotConflict(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	if _, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := e.Request(ctx, draft(2, "2025-03-10", "10:00", "11:00")); err != nil {
		t.Fatalf("different hall should succeed: %v", err)
	}
	if _, err := e.Request(ctx, draft(1, "2025-03-11", "10:00", "11:00")); err != nil {
		t.Fatalf("different date should succeed: %v", err)
	}
}

func TestRequest_RejectedFreesSlot(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	a, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := e.Reject(ctx, a.ID, "hall closed for maintenance"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00")); err != nil {
		t.Fatalf("slot should be free after rejection: %v", err)
	}
}

func TestRequest_InvalidRange(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
	}{
		{"equal times", "2025-03-10", "10:00", "10:00"},
		{"reversed times", "2025-03-10", "11:00", "10:00"},
		{"bad date", "10-03-2025", "10:00", "11:00"},
		{"bad start", "2025-03-10", "10am", "11:00"},
		{"bad end", "2025-03-10", "10:00", "25:99"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, store := newTestEngine()
			_, err := e.Request(context.Background(), draft(1, tc.date, tc.start, tc.end))
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("expected ErrInvalidRange, got %v", err)
			}
			if all, _ := store.ListAll(context.Background()); len(all) != 0 {
				t.Fatalf("nothing may be persisted on validation failure")
			}
		})
	}
}

func TestApprove_Lifecycle(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	b, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	approved, err := e.Approve(ctx, b.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.StatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}

	// Terminal states accept no further transitions.
	if _, err := e.Approve(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second approve: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := e.Reject(ctx, b.ID, "changed my mind"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("reject after approve: expected ErrInvalidTransition, got %v", err)
	}
	got, err := e.GetByID(ctx, b.ID)
	if err != nil || got.Status != model.StatusApproved {
		t.Fatalf("state must be unchanged after failed transitions: %+v %v", got, err)
	}
}

func TestReject_Lifecycle(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	b, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	rejected, err := e.Reject(ctx, b.ID, "double-booked projector")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != model.StatusRejected {
		t.Fatalf("expected REJECTED, got %s", rejected.Status)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "double-booked projector" {
		t.Fatalf("reason not stored: %+v", rejected.RejectionReason)
	}
	if _, err := e.Approve(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("approve after reject: expected ErrInvalidTransition, got %v", err)
	}
}

func TestReject_RequiresReason(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	b, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := e.Reject(ctx, b.ID, "   "); !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("expected ErrEmptyReason, got %v", err)
	}
	got, _ := e.GetByID(ctx, b.ID)
	if got.Status != model.StatusPending {
		t.Fatalf("booking must stay PENDING, got %s", got.Status)
	}
}

func TestLifecycle_NotFound(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	if _, err := e.Approve(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("approve: expected ErrNotFound, got %v", err)
	}
	if _, err := e.Reject(ctx, 404, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("reject: expected ErrNotFound, got %v", err)
	}
	if _, err := e.GetByID(ctx, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
}

// Two overlapping PENDING bookings cannot be produced through the engine,
// but they can exist in a store migrated from an older system. Approving
// the first succeeds; approving the second must fail once an overlapping
// APPROVED booking holds the slot.
func TestApprove_RecheckAgainstApproved(t *testing.T) {
	e, store := newTestEngine()
	ctx := context.Background()

	first := model.Booking{HallID: 1, RequesterID: 1, Date: "2025-03-10",
		StartTime: "10:00", EndTime: "11:00", Status: model.StatusPending}
	second := model.Booking{HallID: 1, RequesterID: 2, Date: "2025-03-10",
		StartTime: "10:30", EndTime: "11:30", Status: model.StatusPending}
	if err := store.Create(ctx, &first); err != nil {
		t.Fatalf("seed first: %v", err)
	}
	if err := store.Create(ctx, &second); err != nil {
		t.Fatalf("seed second: %v", err)
	}

	if _, err := e.Approve(ctx, first.ID); err != nil {
		t.Fatalf("approve first: %v", err)
	}
	_, err := e.Approve(ctx, second.ID)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("approve second: expected ConflictError, got %v", err)
	}
	got, _ := e.GetByID(ctx, second.ID)
	if got.Status != model.StatusPending {
		t.Fatalf("second booking must stay PENDING, got %s", got.Status)
	}
}

func TestRequest_ConcurrentRace(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		var conflict *ConflictError
		switch {
		case err == nil:
			successes++
		case errors.As(err, &conflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != attempts-1 {
		t.Fatalf("expected exactly one winner, got %d successes / %d conflicts", successes, conflicts)
	}
}

// The core invariant, checked through the engine's create path only: after
// an arbitrary mix of requests, no two non-rejected bookings on the same
// hall and date overlap.
func TestInvariant_NonRejectedDisjoint(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	slots := []struct{ start, end string }{
		{"09:00", "10:00"}, {"09:30", "10:30"}, {"10:00", "11:00"},
		{"10:45", "11:15"}, {"11:00", "12:00"}, {"08:00", "12:00"},
		{"12:00", "13:00"}, {"12:30", "12:45"},
	}
	for hall := uint64(1); hall <= 2; hall++ {
		for _, s := range slots {
			_, _ = e.Request(ctx, draft(hall, "2025-03-10", s.start, s.end))
		}
	}

	for hall := uint64(1); hall <= 2; hall++ {
		all, err := e.Availability(ctx, hall, "2025-03-10")
		if err != nil {
			t.Fatalf("availability: %v", err)
		}
		for i, a := range all {
			for _, b := range all[i+1:] {
				if !a.Occupies() || !b.Occupies() {
					continue
				}
				ia := Interval{Start: a.StartTime, End: a.EndTime}
				ib := Interval{Start: b.StartTime, End: b.EndTime}
				if ia.Overlaps(ib) {
					t.Fatalf("hall %d: overlapping non-rejected bookings %v and %v", hall, ia, ib)
				}
			}
		}
	}
}

func TestAvailability_IncludesRejectedAndEmpty(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	a, err := e.Request(ctx, draft(1, "2025-03-10", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := e.Reject(ctx, a.ID, "cancelled event"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	got, err := e.Availability(ctx, 1, "2025-03-10")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(got) != 1 || got[0].Status != model.StatusRejected {
		t.Fatalf("rejected bookings must be visible to callers: %+v", got)
	}

	empty, err := e.Availability(ctx, 9, "2030-01-01")
	if err != nil {
		t.Fatalf("availability (empty): %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty slice, got %#v", empty)
	}
}

func TestListByRequester(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	d := draft(1, "2025-03-10", "10:00", "11:00")
	if _, err := e.Request(ctx, d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	other := draft(2, "2025-03-11", "09:00", "10:00")
	other.RequesterID = 99
	if _, err := e.Request(ctx, other); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	mine, err := e.ListByRequester(ctx, d.RequesterID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].RequesterID != d.RequesterID {
		t.Fatalf("expected only requester %d's bookings, got %+v", d.RequesterID, mine)
	}
	all, err := e.ListAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("list all: %v %+v", err, all)
	}
}
