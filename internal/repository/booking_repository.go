package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/seminar-hall-booking/internal/booking"
	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// BookingRepo is the MySQL-backed booking store. It implements
// booking.Store; all conflict and lifecycle rules live in the engine, this
// type only persists and queries rows. Timestamps are stored in UTC, date
// and time-of-day values are stored as their canonical string forms so the
// engine can compare them lexicographically.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, hall_id, requester_id, requester_name, purpose,
	date, start_time, end_time, attendees, status, rejection_reason,
	created_at, updated_at`

// Create inserts a new booking and reads the stored row back so generated
// ID, defaults and timestamps are populated on b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(hall_id, requester_id, requester_name, purpose, date, start_time, end_time, attendees, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.HallID, b.RequesterID, b.RequesterName, b.Purpose,
		b.Date, b.StartTime, b.EndTime, b.Attendees, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*b = stored
	return nil
}

// ListByHallAndDate returns all bookings (any status) for one hall on one
// date, ordered by start time for deterministic output.
func (r *BookingRepo) ListByHallAndDate(ctx context.Context, hallID uint64, date string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
		WHERE hall_id = ? AND date = ? ORDER BY start_time, id`
	return r.list(ctx, q, hallID, date)
}

// ListByRequester returns all bookings created by one requester across all
// halls and dates, newest first.
func (r *BookingRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
		WHERE requester_id = ? ORDER BY date DESC, start_time DESC, id DESC`
	return r.list(ctx, q, requesterID)
}

// ListAll returns every booking, newest first. Used by the admin view.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings
		ORDER BY date DESC, start_time DESC, id DESC`
	return r.list(ctx, q)
}

// GetByID returns a single booking or booking.ErrNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, booking.ErrNotFound
		}
		return model.Booking{}, err
	}
	return b, nil
}

// UpdateStatus performs the compare-and-set transition. The WHERE clause on
// the current status makes the swap atomic at the database level: a booking
// already decided by a concurrent request yields zero affected rows and the
// method reports swapped=false with the current row.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to string, reason *string) (model.Booking, bool, error) {
	const q = `UPDATE bookings SET status = ?, rejection_reason = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, to, reason, id, from)
	if err != nil {
		return model.Booking{}, false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Booking{}, false, err
	}
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, false, err
	}
	return b, n > 0, nil
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanBooking.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (model.Booking, error) {
	var b model.Booking
	var reason sql.NullString
	err := row.Scan(
		&b.ID, &b.HallID, &b.RequesterID, &b.RequesterName, &b.Purpose,
		&b.Date, &b.StartTime, &b.EndTime, &b.Attendees, &b.Status,
		&reason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	if reason.Valid {
		s := reason.String
		b.RejectionReason = &s
	}
	return b, nil
}
