package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-seat-ledger/internal/ledger"
)

// callerAddress extracts the authenticated caller's ledger address from
// the request context.  JWTAuth stores the addr claim under "address";
// a token without a usable address cannot drive ledger operations.
func callerAddress(c echo.Context) (ledger.Address, error) {
	v, _ := c.Get("address").(string)
	if v == "" {
		return ledger.Address{}, errors.New("no ledger address in token")
	}
	return ledger.ParseAddress(v)
}

// ledgerStatus maps a ledger sentinel error to the HTTP status the API
// responds with.  Every ledger failure is one of these kinds.
func ledgerStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrMalformedInput),
		errors.Is(err, ledger.ErrInvalidDeparture):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrBadAuthorization):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, ledger.ErrNotFlightOwner),
		errors.Is(err, ledger.ErrNotTokenOwner),
		errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrSeatNotFound),
		errors.Is(err, ledger.ErrNotBooked),
		errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateFlight),
		errors.Is(err, ledger.ErrAlreadyExists),
		errors.Is(err, ledger.ErrSeatUnavailable),
		errors.Is(err, ledger.ErrCapacityExceeded):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// ledgerError writes the standard error body for a failed ledger call.
func ledgerError(c echo.Context, err error) error {
	return c.JSON(ledgerStatus(err), echo.Map{"error": err.Error()})
}

// pathID parses the :id path parameter as a ledger id.  The returned
// bool reports success; on malformed input callers respond 400.
func pathID(c echo.Context) (ledger.ID, bool) {
	id, err := ledger.ParseID(c.Param("id"))
	if err != nil {
		return ledger.ID{}, false
	}
	return id, true
}
