package booking

import (
	"context"

	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// Store is the persistence contract required by the engine. The production
// implementation lives in internal/repository (MySQL); MemoryStore provides
// an in-process implementation for tests and single-node setups.
//
// Implementations must return ErrNotFound for absent IDs and may return any
// other error for infrastructure faults; the engine wraps those in a
// StorageError before surfacing them.
type Store interface {
	// Create persists a new booking and fills in its generated ID and
	// timestamps. Business rules are checked upstream by the engine.
	Create(ctx context.Context, b *model.Booking) error

	// ListByHallAndDate returns every booking (any status) for one hall on
	// one date. This is the candidate set for conflict checks.
	ListByHallAndDate(ctx context.Context, hallID uint64, date string) ([]model.Booking, error)

	// ListByRequester returns all bookings created by one requester across
	// all halls and dates.
	ListByRequester(ctx context.Context, requesterID uint64) ([]model.Booking, error)

	// ListAll returns every booking, for the administrator view.
	ListAll(ctx context.Context) ([]model.Booking, error)

	// GetByID returns a single booking or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (model.Booking, error)

	// UpdateStatus performs a compare-and-set: the booking moves from
	// `from` to `to` only if it still holds status `from`. The reason is
	// stored when rejecting. The returned bool reports whether the swap
	// happened; a false result with a nil error means the row exists but
	// was not in `from` anymore.
	UpdateStatus(ctx context.Context, id uint64, from, to string, reason *string) (model.Booking, bool, error)
}
