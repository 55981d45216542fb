package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-seat-ledger/internal/ledger"
	"github.com/iliyamo/flight-seat-ledger/internal/queue"
)

// PassengerHandler serves the passenger-side ledger operations: seat
// booking, check-in and reservation-token approval.
type PassengerHandler struct {
	Ledger  *ledger.Ledger
	Publish PublishFunc
}

func NewPassengerHandler(l *ledger.Ledger, publish PublishFunc) *PassengerHandler {
	return &PassengerHandler{Ledger: l, Publish: publish}
}

type bookSeatReq struct {
	PaidAmount uint64 `json:"paid_amount"`
}

// BookSeat handles POST /v1/seats/:id/book.  The deposited amount must
// cover the seat price; on success the caller owns the seat's
// reservation token and the airline's escrow is credited.
func (h *PassengerHandler) BookSeat(c echo.Context) error {
	caller, err := callerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	seatID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var req bookSeatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if err := h.Ledger.BookSeat(seatID, caller, req.PaidAmount); err != nil {
		return ledgerError(c, err)
	}

	seat, err := h.Ledger.Seat(seatID)
	if err != nil {
		return ledgerError(c, err)
	}
	if h.Publish != nil {
		flight, ferr := h.Ledger.Flight(seat.FlightID)
		if ferr == nil {
			_ = h.Publish(c.Request().Context(), queue.SeatBookedQueue, queue.SeatBookedEvent{
				SeatID:       seatID.String(),
				FlightID:     seat.FlightID.String(),
				FlightNumber: flight.Number,
				SeatNumber:   seat.Number,
				CabinClass:   seat.Cabin.String(),
				Passenger:    caller.String(),
				Airline:      flight.Airline.String(),
				Price:        seat.Price,
				PaidAmount:   req.PaidAmount,
				BookedAt:     time.Now().UTC().Format(time.RFC3339),
			})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"seat_id": seatID.String(),
		"owner":   caller.String(),
		"status":  seat.Status.String(),
	})
}

type checkinReq struct {
	Barcode      string `json:"barcode"`
	PassportScan string `json:"passport_scan"`
}

// Checkin handles POST /v1/seats/:id/checkin.  Only the owner of the
// seat's reservation token may check in; the reservation is burned and
// a boarding pass minted in its place.
func (h *PassengerHandler) Checkin(c echo.Context) error {
	caller, err := callerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	seatID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var req checkinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Barcode) == "" || strings.TrimSpace(req.PassportScan) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "barcode and passport_scan required"})
	}

	passID, err := h.Ledger.CheckinBuyer(seatID, req.Barcode, req.PassportScan, caller)
	if err != nil {
		return ledgerError(c, err)
	}

	if h.Publish != nil {
		_ = h.Publish(c.Request().Context(), queue.CheckedInQueue, queue.CheckedInEvent{
			SeatID:         seatID.String(),
			BoardingPassID: passID.String(),
			Passenger:      caller.String(),
			CheckedInAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"seat_id":          seatID.String(),
		"boarding_pass_id": passID.String(),
	})
}

type approveReq struct {
	Approved string `json:"approved"` // hex ledger address
}

// Approve handles POST /v1/tokens/:id/approve.  Only the token's owner
// may change the approved party.
func (h *PassengerHandler) Approve(c echo.Context) error {
	caller, err := callerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tokenID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	approved, err := ledger.ParseAddress(strings.TrimSpace(req.Approved))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid approved address"})
	}

	if err := h.Ledger.Approve(tokenID, approved, caller); err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token_id": tokenID.String(),
		"approved": approved.String(),
	})
}
