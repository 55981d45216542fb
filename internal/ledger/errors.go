// Package-level sentinel errors.  Every public ledger operation fails with
// exactly one of these kinds so that callers (handlers in particular) can
// map a failure to a response with errors.Is without string matching.
package ledger

import "errors"

var (
	// ErrInvalidDeparture is returned when a flight's departure timestamp
	// is not strictly in the future at creation time.
	ErrInvalidDeparture = errors.New("departure must be in the future")

	// ErrDuplicateFlight is returned when a flight with the same
	// (flight number, departure) pair already exists.
	ErrDuplicateFlight = errors.New("flight already exists")

	// ErrBadAuthorization is returned when the airline signature over the
	// flight-creation message does not verify.
	ErrBadAuthorization = errors.New("bad airline authorization")

	// ErrNotFlightOwner is returned when a caller other than the flight's
	// registered airline tries to add seat inventory.
	ErrNotFlightOwner = errors.New("caller does not own flight")

	// ErrCapacityExceeded is returned when a seat batch would push the
	// seats-added count past the flight's total capacity.
	ErrCapacityExceeded = errors.New("flight seat capacity exceeded")

	// ErrMalformedInput is returned for structurally invalid input, such
	// as mismatched seat-number and price slices.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSeatNotFound is returned when no seat exists for the given id.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrSeatUnavailable is returned when booking a seat that is not
	// vacant.
	ErrSeatUnavailable = errors.New("seat unavailable")

	// ErrInsufficientPayment is returned when the deposited amount does
	// not cover the seat price.
	ErrInsufficientPayment = errors.New("payment below seat price")

	// ErrNotBooked is returned when check-in is attempted for a seat with
	// no live reservation token.
	ErrNotBooked = errors.New("seat not booked")

	// ErrNotTokenOwner is returned when a caller other than the current
	// token owner attempts an owner-only token operation.
	ErrNotTokenOwner = errors.New("caller does not own token")

	// ErrAlreadyExists is returned when minting a token, or creating a
	// seat, whose id is already live.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound is returned when a token, flight or boarding pass
	// lookup yields nothing.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when a caller other than the airline
	// itself attempts to withdraw that airline's escrow balance.
	ErrUnauthorized = errors.New("unauthorized")
)
