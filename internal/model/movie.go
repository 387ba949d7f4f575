package model

import "time"

// Movie is a catalog entry in the `movies` table.  Rating is the average
// audience rating on a 0–10 scale; DurationMin is the runtime in minutes.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Genre       string    // movies.genre
	Rating      float64   // movies.rating
	DurationMin int       // movies.duration_min
	ReleaseDate time.Time // movies.release_date
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
