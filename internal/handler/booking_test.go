package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking-api/internal/model"
	"github.com/iliyamo/movie-booking-api/internal/queue"
	"github.com/iliyamo/movie-booking-api/internal/repository"
)

var takenSeatErr = &mysql.MySQLError{
	Number:  1062,
	Message: "Duplicate entry '42-5' for key 'bookings.uq_show_seat'",
}

func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	h := &BookingHandler{
		Bookings: repository.NewBookingRepo(conn),
		Shows:    repository.NewShowRepo(conn),
		Screens:  repository.NewScreenRepo(conn),
		Movies:   repository.NewMovieRepo(conn),
		// Publishing is exercised separately; nil skips the event path.
		PublishEvent: nil,
	}
	return h, mock, func() { conn.Close() }
}

func bookingCtx(e *echo.Echo, body string, u model.User) (*httptest.ResponseRecorder, echo.Context) {
	rec, c := doJSON(e, http.MethodPost, "/api/bookings", body)
	c.Set("current_user", u)
	return rec, c
}

func expectShow(mock sqlmock.Sqlmock, showID, movieID, screenID uint64) {
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, movie_id, screen_id, show_time FROM shows WHERE id = ? LIMIT 1")).
		WithArgs(showID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "screen_id", "show_time"}).
			AddRow(showID, movieID, screenID, fixedTime))
}

func expectScreen(mock sqlmock.Sqlmock, screenID uint64, totalSeats uint32) {
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, hall_id, name, total_seats FROM screens WHERE id = ? LIMIT 1")).
		WithArgs(screenID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hall_id", "name", "total_seats"}).
			AddRow(screenID, 1, "Screen 1", totalSeats))
}

func expectReserve(mock sqlmock.Sqlmock, showID uint64, seat uint32, userID, bookingID uint64) {
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO bookings (show_id, seat_number, user_id) VALUES (?,?,?)")).
		WithArgs(showID, seat, userID).
		WillReturnResult(sqlmock.NewResult(int64(bookingID), 1))
}

// TestBookingContention walks the canonical two-user scenario: user A
// books seat 5 of show 42, user B then loses seat 5 but wins seat 6.
func TestBookingContention(t *testing.T) {
	h, mock, closeDB := newBookingHandler(t)
	defer closeDB()

	e := echo.New()
	userA := model.User{ID: 7, Email: "a@example.com"}
	userB := model.User{ID: 8, Email: "b@example.com"}

	// A takes seat 5.
	expectShow(mock, 42, 3, 2)
	expectScreen(mock, 2, 120)
	expectReserve(mock, 42, 5, 7, 101)
	rec, c := bookingCtx(e, `{"show_id":42,"seat_number":5}`, userA)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"booking_id":101`)
	assert.Contains(t, rec.Body.String(), "Booking successful")

	// B collides on seat 5.
	expectShow(mock, 42, 3, 2)
	expectScreen(mock, 2, 120)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO bookings (show_id, seat_number, user_id) VALUES (?,?,?)")).
		WithArgs(42, 5, 8).
		WillReturnError(takenSeatErr)
	rec, c = bookingCtx(e, `{"show_id":42,"seat_number":5}`, userB)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Seat already booked")

	// B wins the adjacent seat.
	expectShow(mock, 42, 3, 2)
	expectScreen(mock, 2, 120)
	expectReserve(mock, 42, 6, 8, 102)
	rec, c = bookingCtx(e, `{"show_id":42,"seat_number":6}`, userB)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"seat_number":6`)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingSeatOutOfRange(t *testing.T) {
	h, mock, closeDB := newBookingHandler(t)
	defer closeDB()

	expectShow(mock, 42, 3, 2)
	expectScreen(mock, 2, 120)
	// No INSERT expectation: the request dies at the bound check.

	e := echo.New()
	rec, c := bookingCtx(e, `{"show_id":42,"seat_number":121}`, model.User{ID: 7})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "seat number out of range")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingShowNotFound(t *testing.T) {
	h, mock, closeDB := newBookingHandler(t)
	defer closeDB()

	mock.ExpectQuery("SELECT .+ FROM shows WHERE id = .+").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "screen_id", "show_time"}))

	e := echo.New()
	rec, c := bookingCtx(e, `{"show_id":99,"seat_number":5}`, model.User{ID: 7})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "show not found")
}

func TestBookingRequiresAuthenticatedUser(t *testing.T) {
	h, _, closeDB := newBookingHandler(t)
	defer closeDB()

	e := echo.New()
	rec, c := doJSON(e, http.MethodPost, "/api/bookings", `{"show_id":42,"seat_number":5}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestBookingRejectsZeroValues(t *testing.T) {
	h, _, closeDB := newBookingHandler(t)
	defer closeDB()

	e := echo.New()
	for _, body := range []string{
		`{"seat_number":5}`,
		`{"show_id":42}`,
		`{"show_id":0,"seat_number":0}`,
	} {
		rec, c := bookingCtx(e, body, model.User{ID: 7})
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

// TestBookingPublishesEvent checks that a successful reservation emits a
// seat.booked event carrying the movie title and the caller's identity.
func TestBookingPublishesEvent(t *testing.T) {
	h, mock, closeDB := newBookingHandler(t)
	defer closeDB()

	events := make(chan queue.SeatBookedEvent, 1)
	h.PublishEvent = func(_ context.Context, ev queue.SeatBookedEvent) error {
		events <- ev
		return nil
	}

	expectShow(mock, 42, 3, 2)
	expectScreen(mock, 2, 120)
	expectReserve(mock, 42, 5, 7, 101)
	mock.ExpectQuery("SELECT .+ FROM movies WHERE id = .+").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "genre", "rating", "duration_min", "release_date", "created_at", "updated_at"}).
			AddRow(3, "Arrival", "SciFi", 7.9, 116, fixedTime, fixedTime, fixedTime))

	e := echo.New()
	rec, c := bookingCtx(e, `{"show_id":42,"seat_number":5}`, model.User{ID: 7, Email: "a@example.com"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	ev := <-events
	assert.Equal(t, uint64(101), ev.BookingID)
	assert.Equal(t, uint64(42), ev.ShowID)
	assert.Equal(t, uint32(5), ev.SeatNumber)
	assert.Equal(t, "a@example.com", ev.UserEmail)
	assert.Equal(t, "Arrival", ev.MovieTitle)

	assert.NoError(t, mock.ExpectationsWereMet())
}
