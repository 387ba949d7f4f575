package model

import "time"

// Show is a scheduled screening of a movie on a screen, stored in the
// `shows` table.  MovieID and ScreenID reference the catalog; ShowTime is
// the start of the screening in UTC.
type Show struct {
	ID       uint64    // shows.id
	MovieID  uint64    // shows.movie_id
	ScreenID uint64    // shows.screen_id
	ShowTime time.Time // shows.show_time
}

// ShowWithTitle is a Show joined with its movie title for display.  The
// title pointer is nil when the referenced movie no longer exists (e.g.
// a crash interrupted the delete cascade and left the show orphaned).
type ShowWithTitle struct {
	Show
	MovieTitle *string
}
