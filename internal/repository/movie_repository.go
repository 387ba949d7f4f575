// Package repository contains data access logic for catalog and booking
// operations. This file covers movies: CRUD, filtered search and the
// best-effort cascade that removes a deleted movie's shows.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"strings"      // dynamic WHERE/SET clause assembly
	"time"         // release date values

	"github.com/iliyamo/movie-booking-api/internal/model"
)

// searchLimit caps every filtered search result set. There is no
// pagination beyond this bound.
const searchLimit = 100

// MovieRepo manages persistence for movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need to coordinate
// with other repositories.
func (r *MovieRepo) DB() *sql.DB { return r.db }

// Create inserts a new movie and assigns the generated ID back to the
// struct.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, genre, rating, duration_min, release_date) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Genre, m.Rating, m.DurationMin, m.ReleaseDate.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a movie by id. Returns ErrNotFound when no row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	const q = `SELECT id, title, genre, rating, duration_min, release_date, created_at, updated_at
			   FROM movies WHERE id = ? LIMIT 1`
	var m model.Movie
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Title, &m.Genre, &m.Rating, &m.DurationMin, &m.ReleaseDate, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrNotFound
	}
	return m, err
}

// MovieUpdate carries the optional fields of a partial update. Nil
// pointers leave the corresponding column untouched.
type MovieUpdate struct {
	Title       *string
	Genre       *string
	Rating      *float64
	DurationMin *int
	ReleaseDate *time.Time
}

// Update applies a partial update to a movie. Returns ErrNotFound when
// the id does not match any row.
func (r *MovieRepo) Update(ctx context.Context, id uint64, upd MovieUpdate) error {
	sets := []string{}
	args := []any{}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Genre != nil {
		sets = append(sets, "genre = ?")
		args = append(args, *upd.Genre)
	}
	if upd.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *upd.Rating)
	}
	if upd.DurationMin != nil {
		sets = append(sets, "duration_min = ?")
		args = append(args, *upd.DurationMin)
	}
	if upd.ReleaseDate != nil {
		sets = append(sets, "release_date = ?")
		args = append(args, upd.ReleaseDate.UTC())
	}
	if len(sets) == 0 {
		// Nothing to change; still report whether the movie exists.
		_, err := r.GetByID(ctx, id)
		return err
	}
	q := "UPDATE movies SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the movie is absent or the update was a no-op; probe to
		// tell the two apart so 404s stay accurate.
		_, err := r.GetByID(ctx, id)
		return err
	}
	return nil
}

// Delete removes a movie row, then removes the shows that referenced it.
// The two statements are deliberately NOT wrapped in a transaction: the
// original cascade is best effort, and a crash between the steps may
// leave orphaned shows. Orphans are tolerated by the show search (the
// movie title joins as NULL) and must not fail the delete.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
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
	_, err = r.db.ExecContext(ctx, "DELETE FROM shows WHERE movie_id = ?", id)
	return err
}

// MovieSearchQuery defines the filters for searching movies. Zero values
// mean "no filter". Title matches as a case-insensitive substring, Genre
// as an exact value and Rating as a lower bound (rating >= Rating).
type MovieSearchQuery struct {
	Title  string
	Genre  string
	Rating float64
}

// Search returns movies matching the query, capped at searchLimit rows.
//
// The rating filter always applies greater-or-equal semantics. The
// system this replaces switched between >= and float equality depending
// on the threshold value; that asymmetry was judged unintentional and a
// single consistent comparison is used here.
func (r *MovieRepo) Search(ctx context.Context, q MovieSearchQuery) ([]model.Movie, error) {
	where := []string{}
	args := []any{}
	if q.Title != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Genre != "" {
		where = append(where, "genre = ?")
		args = append(args, q.Genre)
	}
	if q.Rating > 0 {
		where = append(where, "rating >= ?")
		args = append(args, q.Rating)
	}
	query := "SELECT id, title, genre, rating, duration_min, release_date, created_at, updated_at FROM movies"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id LIMIT ?"
	args = append(args, searchLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Genre, &m.Rating, &m.DurationMin, &m.ReleaseDate, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
