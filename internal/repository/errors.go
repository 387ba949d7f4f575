// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings themselves. For example,
// ErrSeatTaken signals that the booking insert lost the race for a
// (show, seat) slot, while ErrEmailExists reports a duplicate signup.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when a signup collides with an existing
// account on the unique email column. Handlers should translate this
// into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrSeatTaken is returned when the bookings unique key rejects an
// insert because the (show, seat) slot is already booked. It is the
// deterministic "you lost the race" outcome, never a transient error,
// and handlers translate it into an HTTP 400 response. A client that
// retries its own successful booking also receives ErrSeatTaken; the
// two cases are indistinguishable on purpose.
var ErrSeatTaken = errors.New("seat already booked")

// ErrNotFound is returned by point lookups, updates and deletes when no
// row matches the given identifier. Handlers attach the entity type
// when rendering the 404.
var ErrNotFound = errors.New("not found")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062). Duplicate detection via the unique key is what turns the
// raw INSERT into an atomic insert-if-absent.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
