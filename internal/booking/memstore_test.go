package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

func TestMemoryStore_UpdateStatusCAS(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := model.Booking{HallID: 1, RequesterID: 1, Date: "2025-03-10",
		StartTime: "10:00", EndTime: "11:00", Status: model.StatusPending}
	if err := s.Create(ctx, &b); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, swapped, err := s.UpdateStatus(ctx, b.ID, model.StatusPending, model.StatusApproved, nil)
	if err != nil || !swapped {
		t.Fatalf("first swap: swapped=%v err=%v", swapped, err)
	}
	if got.Status != model.StatusApproved {
		t.Fatalf("expected APPROVED, got %s", got.Status)
	}

	// A second swap from PENDING must lose: the row moved on.
	got, swapped, err = s.UpdateStatus(ctx, b.ID, model.StatusPending, model.StatusRejected, nil)
	if err != nil {
		t.Fatalf("second swap: %v", err)
	}
	if swapped {
		t.Fatalf("swap must fail once the row left PENDING")
	}
	if got.Status != model.StatusApproved {
		t.Fatalf("losing swap must report current state, got %s", got.Status)
	}

	if _, _, err := s.UpdateStatus(ctx, 999, model.StatusPending, model.StatusApproved, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing row: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ReasonIsCopied(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := model.Booking{HallID: 1, Date: "2025-03-10",
		StartTime: "10:00", EndTime: "11:00", Status: model.StatusPending}
	if err := s.Create(ctx, &b); err != nil {
		t.Fatalf("create: %v", err)
	}

	reason := "projector broken"
	if _, _, err := s.UpdateStatus(ctx, b.ID, model.StatusPending, model.StatusRejected, &reason); err != nil {
		t.Fatalf("update: %v", err)
	}
	reason = "mutated by caller"

	got, err := s.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RejectionReason == nil || *got.RejectionReason != "projector broken" {
		t.Fatalf("stored reason must not alias the caller's string: %+v", got.RejectionReason)
	}
}

func TestMemoryStore_HonorsCancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := model.Booking{HallID: 1, Date: "2025-03-10", Status: model.StatusPending}
	if err := s.Create(ctx, &b); !errors.Is(err, context.Canceled) {
		t.Fatalf("create: expected context.Canceled, got %v", err)
	}
	if _, err := s.ListAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("list: expected context.Canceled, got %v", err)
	}
	if _, err := s.GetByID(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("get: expected context.Canceled, got %v", err)
	}
}
