// This file implements the booking ledger. The entire correctness story
// of the service lives in Reserve: a seat on a show can be sold at most
// once, and that guarantee is delegated to the database's unique key
// rather than to any in-process coordination, which keeps the API
// horizontally scalable: two app instances racing for the same slot
// still serialize on the same index.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-booking-api/internal/model"
)

// BookingRepo manages persistence for the 'bookings' table.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Reserve attempts to book one seat of one show for a user. It issues a
// single INSERT against the composite unique key uq_show_seat
// (show_id, seat_number):
//
//   - if no booking exists for the slot, the row is created and the
//     populated Booking is returned;
//   - if the unique key rejects the insert (MySQL 1062), the slot is
//     already booked and ErrSeatTaken is returned with storage unchanged.
//
// The check and the insert are one indivisible operation from the
// perspective of every concurrent caller; there is no window in which
// two requests can both observe "absent" and both insert. Never replace
// this with a SELECT-then-INSERT sequence; that reintroduces exactly
// the race this method exists to eliminate.
//
// Reserve is NOT idempotent across retries: a caller retrying after a
// network failure receives ErrSeatTaken even when its own earlier
// attempt won the slot. That is documented behavior, observably
// identical to a genuine conflict, and must not be deduplicated here.
// For the same reason the insert is never retried server-side: a retry
// after a partial failure could mask which party actually won.
func (r *BookingRepo) Reserve(ctx context.Context, showID uint64, seatNumber uint32, userID uint64) (model.Booking, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (show_id, seat_number, user_id) VALUES (?,?,?)",
		showID, seatNumber, userID)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Booking{}, ErrSeatTaken
		}
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	return model.Booking{
		ID:         uint64(id),
		ShowID:     showID,
		UserID:     userID,
		SeatNumber: seatNumber,
	}, nil
}

// ListByUser returns the bookings belonging to a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, show_id, user_id, seat_number, created_at FROM bookings WHERE user_id=? ORDER BY id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ShowID, &b.UserID, &b.SeatNumber, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
