package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-booking-api/internal/model"
)

// HallRepo manages persistence for cinema halls.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

// Create inserts a new hall and assigns the generated ID back to the struct.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO cinema_halls (name, address, phone) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Address, h.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID fetches a hall by id. Returns ErrNotFound when no row exists.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (model.Hall, error) {
	const q = `SELECT id, name, address, phone FROM cinema_halls WHERE id = ? LIMIT 1`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.Address, &h.Phone)
	if err == sql.ErrNoRows {
		return model.Hall{}, ErrNotFound
	}
	return h, err
}

// List returns all halls ordered by id, capped at searchLimit rows.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, address, phone FROM cinema_halls ORDER BY id LIMIT ?", searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Hall{}
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Phone); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update replaces the mutable columns of a hall. Returns ErrNotFound
// when the id does not match any row.
func (r *HallRepo) Update(ctx context.Context, h model.Hall) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cinema_halls SET name = ?, address = ?, phone = ? WHERE id = ?",
		h.Name, h.Address, h.Phone, h.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a hall row. Returns ErrNotFound when no row matched.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cinema_halls WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
