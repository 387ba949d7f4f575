// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatBookedEvent is published after a booking insert wins its seat
// slot. It carries enough context for downstream consumers to log or
// run analytics without querying the primary database. Publication is
// strictly after-the-fact: the booking is already durable when the
// event is emitted, and a publish failure never unwinds it.
type SeatBookedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	ShowID     uint64 `json:"show_id"`
	SeatNumber uint32 `json:"seat_number"`
	UserID     uint64 `json:"user_id"`
	UserEmail  string `json:"user_email"`
	MovieTitle string `json:"movie_title,omitempty"`
	ShowTime   string `json:"show_time,omitempty"`
	BookedAt   string `json:"booked_at"`
}
