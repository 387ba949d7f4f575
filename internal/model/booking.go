package model

import "time"

// Booking records that one seat of one show belongs to one user.  The
// `bookings` table carries a composite unique key over (show_id,
// seat_number); that constraint, not application code, is what makes a
// seat bookable at most once.  A slot moves from unbooked to booked
// exactly once and never back: bookings are immediate and final, with no
// hold, cancellation or release flow.
//
// Fields:
//  ID         – primary key identifier.
//  ShowID     – show the seat belongs to.
//  UserID     – user who won the seat.
//  SeatNumber – 1-based seat number within the screen.
//  CreatedAt  – timestamp of the winning insert.
type Booking struct {
	ID         uint64    // bookings.id
	ShowID     uint64    // bookings.show_id
	UserID     uint64    // bookings.user_id
	SeatNumber uint32    // bookings.seat_number
	CreatedAt  time.Time // bookings.created_at
}
