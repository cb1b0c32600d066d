package booking

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// MemoryStore is an in-process Store backed by a map. It satisfies the same
// contract as the MySQL repository and is the implementation injected by
// tests; it is also usable for single-node demo deployments where no
// database is available. All methods honor context cancellation so a caller
// with a deadline never blocks past it.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Booking
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, rows: make(map[uint64]model.Booking)}
}

// Create assigns the next ID and timestamps and stores a copy of b.
func (s *MemoryStore) Create(ctx context.Context, b *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	b.ID = s.nextID
	s.nextID++
	b.CreatedAt = now
	b.UpdatedAt = now
	s.rows[b.ID] = *b
	return nil
}

// ListByHallAndDate returns all bookings for one hall and date.
func (s *MemoryStore) ListByHallAndDate(ctx context.Context, hallID uint64, date string) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.rows {
		if b.HallID == hallID && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

// ListByRequester returns all bookings created by one requester.
func (s *MemoryStore) ListByRequester(ctx context.Context, requesterID uint64) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Booking
	for _, b := range s.rows {
		if b.RequesterID == requesterID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ListAll returns every stored booking.
func (s *MemoryStore) ListAll(ctx context.Context) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, 0, len(s.rows))
	for _, b := range s.rows {
		out = append(out, b)
	}
	return out, nil
}

// GetByID returns one booking or ErrNotFound.
func (s *MemoryStore) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return model.Booking{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return model.Booking{}, ErrNotFound
	}
	return b, nil
}

// UpdateStatus swaps the status only when the row still holds `from`.
func (s *MemoryStore) UpdateStatus(ctx context.Context, id uint64, from, to string, reason *string) (model.Booking, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Booking{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return model.Booking{}, false, ErrNotFound
	}
	if b.Status != from {
		return b, false, nil
	}
	b.Status = to
	if reason != nil {
		r := *reason
		b.RejectionReason = &r
	}
	b.UpdatedAt = time.Now().UTC()
	s.rows[id] = b
	return b, true, nil
}
