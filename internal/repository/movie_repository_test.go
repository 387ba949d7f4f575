package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func movieColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "genre", "rating", "duration_min", "release_date", "created_at", "updated_at"})
}

func TestMovieGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM movies WHERE id = .+").
		WithArgs(99).
		WillReturnRows(movieColumns())

	repo := NewMovieRepo(db)
	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieDeleteCascadesShows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The cascade is two separate statements: the movie row first, the
	// dependent shows second, no transaction around them.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movies WHERE id = ?")).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shows WHERE movie_id = ?")).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 4))

	repo := NewMovieRepo(db)
	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieDeleteNotFoundSkipsCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movies WHERE id = ?")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMovieRepo(db)
	err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	// No shows statement may run when the movie was absent.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieSearchRatingIsLowerBound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The threshold always compares with >=, below and above 4 alike.
	for _, threshold := range []float64{2.5, 4.5} {
		mock.ExpectQuery("SELECT .+ FROM movies WHERE rating >= \\? ORDER BY id LIMIT \\?").
			WithArgs(threshold, searchLimit).
			WillReturnRows(movieColumns().
				AddRow(1, "Arrival", "SciFi", 7.9, 116, sampleTime, sampleTime, sampleTime))

		repo := NewMovieRepo(db)
		got, err := repo.Search(context.Background(), MovieSearchQuery{Rating: threshold})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Arrival", got[0].Title)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieSearchCombinesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, genre, rating, duration_min, release_date, created_at, updated_at FROM movies"+
			" WHERE LOWER(title) LIKE ? AND genre = ? AND rating >= ? ORDER BY id LIMIT ?")).
		WithArgs("%arriv%", "SciFi", 7.0, searchLimit).
		WillReturnRows(movieColumns().
			AddRow(1, "Arrival", "SciFi", 7.9, 116, sampleTime, sampleTime, sampleTime))

	repo := NewMovieRepo(db)
	got, err := repo.Search(context.Background(), MovieSearchQuery{Title: "Arriv", Genre: "SciFi", Rating: 7.0})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieUpdatePartial(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	title := "Arrival (Director's Cut)"
	rating := 8.1
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET title = ?, rating = ? WHERE id = ?")).
		WithArgs(title, rating, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMovieRepo(db)
	err = repo.Update(context.Background(), 1, MovieUpdate{Title: &title, Rating: &rating})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
