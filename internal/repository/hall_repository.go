package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/seminar-hall-booking/internal/model"
)

// HallRepo provides CRUD access to the halls catalog. Hall names are unique
// platform-wide; duplicate inserts surface as ErrHallExists.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

// Create inserts a new hall. After insert the record is read back so the
// ID, timestamps and defaults are filled in on h.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO halls (name, location, capacity) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Location, h.Capacity)
	if err != nil {
		// 1062 is MySQL's duplicate key error; the halls.name column
		// carries a unique index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrHallExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const sel = `SELECT id, name, location, capacity, created_at, updated_at FROM halls WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, h.ID).
		Scan(&h.ID, &h.Name, &h.Location, &h.Capacity, &h.CreatedAt, &h.UpdatedAt)
}

// GetByID retrieves a hall by its ID. It returns ErrHallNotFound when no
// row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	const q = `SELECT id, name, location, capacity, created_at, updated_at FROM halls WHERE id = ?`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.Name, &h.Location, &h.Capacity, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns all halls ordered by ID.
func (r *HallRepo) List(ctx context.Context) ([]*model.Hall, error) {
	const q = `SELECT id, name, location, capacity, created_at, updated_at FROM halls ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hall
	for rows.Next() {
		h := new(model.Hall)
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Capacity, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable hall fields. ErrHallNotFound is returned
// when the hall does not exist, ErrHallExists when the new name collides.
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) error {
	const q = `UPDATE halls SET name = ?, location = ?, capacity = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Location, h.Capacity, h.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrHallExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either absent or unchanged; disambiguate with a lookup.
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	const sel = `SELECT id, name, location, capacity, created_at, updated_at FROM halls WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, h.ID).
		Scan(&h.ID, &h.Name, &h.Location, &h.Capacity, &h.CreatedAt, &h.UpdatedAt)
}

// Delete removes a hall. ErrHallNotFound is returned when no row matched.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM halls WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHallNotFound
	}
	return nil
}
