package model

// Hall represents a physical cinema location in the `cinema_halls` table.
// A hall contains one or more screens.
//
// Fields:
//  ID      – primary key identifier.
//  Name    – display name of the hall.
//  Address – street address.
//  Phone   – contact phone number.
type Hall struct {
	ID      uint64 // cinema_halls.id
	Name    string // cinema_halls.name
	Address string // cinema_halls.address
	Phone   string // cinema_halls.phone
}

// Screen is a single auditorium inside a hall, stored in the `screens`
// table.  TotalSeats bounds the seat numbers that may be booked for any
// show scheduled on this screen.
//
// Fields:
//  ID         – primary key identifier.
//  HallID     – hall the screen belongs to.
//  Name       – screen label (e.g. "Screen 1", "IMAX").
//  TotalSeats – number of seats in the auditorium.
type Screen struct {
	ID         uint64 // screens.id
	HallID     uint64 // screens.hall_id
	Name       string // screens.name
	TotalSeats uint32 // screens.total_seats
}
