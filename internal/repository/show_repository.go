// This file defines repository methods for shows. A Show is a scheduled
// screening of a movie on a screen; search results join the movie title
// in for display.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/movie-booking-api/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need to coordinate
// with other repositories.
func (r *ShowRepo) DB() *sql.DB { return r.db }

// Create inserts a new show and assigns the generated ID back to the struct.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (movie_id, screen_id, show_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.ScreenID, s.ShowTime.UTC())
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

// GetByID fetches a show by id. Returns ErrNotFound when no row exists.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (model.Show, error) {
	const q = `SELECT id, movie_id, screen_id, show_time FROM shows WHERE id = ? LIMIT 1`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.ScreenID, &s.ShowTime)
	if err == sql.ErrNoRows {
		return model.Show{}, ErrNotFound
	}
	return s, err
}

// Update replaces the mutable columns of a show. Returns ErrNotFound
// when the id does not match any row.
func (r *ShowRepo) Update(ctx context.Context, s model.Show) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE shows SET movie_id = ?, screen_id = ?, show_time = ? WHERE id = ?",
		s.MovieID, s.ScreenID, s.ShowTime.UTC(), s.ID)
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

// Delete removes a show row. Returns ErrNotFound when no row matched.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM shows WHERE id = ?", id)
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

// ShowSearchQuery defines the filters for searching shows. MovieID zero
// means "any movie"; a non-nil Day restricts results to screenings on
// that calendar day (UTC).
type ShowSearchQuery struct {
	MovieID uint64
	Day     *time.Time
}

// Search returns shows matching the query with each movie title joined
// in, capped at searchLimit rows. The join is a LEFT JOIN so shows
// orphaned by an interrupted movie-delete cascade still list, with a nil
// title.
func (r *ShowRepo) Search(ctx context.Context, q ShowSearchQuery) ([]model.ShowWithTitle, error) {
	where := []string{}
	args := []any{}
	if q.MovieID != 0 {
		where = append(where, "s.movie_id = ?")
		args = append(args, q.MovieID)
	}
	if q.Day != nil {
		start := time.Date(q.Day.Year(), q.Day.Month(), q.Day.Day(), 0, 0, 0, 0, time.UTC)
		where = append(where, "s.show_time >= ? AND s.show_time < ?")
		args = append(args, start, start.Add(24*time.Hour))
	}
	query := `SELECT s.id, s.movie_id, s.screen_id, s.show_time, m.title
			  FROM shows s
			  LEFT JOIN movies m ON m.id = s.movie_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.show_time LIMIT ?"
	args = append(args, searchLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ShowWithTitle{}
	for rows.Next() {
		var s model.ShowWithTitle
		var title sql.NullString
		if err := rows.Scan(&s.ID, &s.MovieID, &s.ScreenID, &s.ShowTime, &title); err != nil {
			return nil, err
		}
		if title.Valid {
			t := title.String
			s.MovieTitle = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
