package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-booking-api/internal/model"
)

// ScreenRepo manages persistence for screens (auditoriums within halls).
type ScreenRepo struct {
	db *sql.DB
}

// NewScreenRepo constructs a ScreenRepo with the given DB handle.
func NewScreenRepo(db *sql.DB) *ScreenRepo { return &ScreenRepo{db: db} }

// Create inserts a new screen and assigns the generated ID back to the struct.
func (r *ScreenRepo) Create(ctx context.Context, s *model.Screen) error {
	const q = `INSERT INTO screens (hall_id, name, total_seats) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.HallID, s.Name, s.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a screen by id. Returns ErrNotFound when no row exists.
func (r *ScreenRepo) GetByID(ctx context.Context, id uint64) (model.Screen, error) {
	const q = `SELECT id, hall_id, name, total_seats FROM screens WHERE id = ? LIMIT 1`
	var s model.Screen
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.HallID, &s.Name, &s.TotalSeats)
	if err == sql.ErrNoRows {
		return model.Screen{}, ErrNotFound
	}
	return s, err
}

// ListByHall returns the screens belonging to a hall.
func (r *ScreenRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.Screen, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, hall_id, name, total_seats FROM screens WHERE hall_id = ? ORDER BY id LIMIT ?",
		hallID, searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Screen{}
	for rows.Next() {
		var s model.Screen
		if err := rows.Scan(&s.ID, &s.HallID, &s.Name, &s.TotalSeats); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update replaces the mutable columns of a screen. Returns ErrNotFound
// when the id does not match any row.
func (r *ScreenRepo) Update(ctx context.Context, s model.Screen) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE screens SET hall_id = ?, name = ?, total_seats = ? WHERE id = ?",
		s.HallID, s.Name, s.TotalSeats, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a screen row. Returns ErrNotFound when no row matched.
func (r *ScreenRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM screens WHERE id = ?", id)
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
