package handler

import (
	"context"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-seat-ledger/internal/ledger"
	"github.com/iliyamo/flight-seat-ledger/internal/queue"
)

// PublishFunc sends a domain event to the named queue.  It is optional
// on handlers; a nil value disables eventing, and publish failures are
// never surfaced to API callers because the ledger state has already
// committed.
type PublishFunc func(ctx context.Context, queueName string, event any) error

// AirlineHandler serves the airline-side ledger operations: flight
// creation, seat inventory and escrow withdrawal.
type AirlineHandler struct {
	Ledger  *ledger.Ledger
	Publish PublishFunc
}

func NewAirlineHandler(l *ledger.Ledger, publish PublishFunc) *AirlineHandler {
	return &AirlineHandler{Ledger: l, Publish: publish}
}

type createFlightReq struct {
	FlightNumber string `json:"flight_number"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Departure    int64  `json:"departure"` // seconds since epoch
	AirlineCode  string `json:"airline_code"`
	AirlineName  string `json:"airline_name"`
	TotalSeats   int    `json:"total_seats"`
	Airline      string `json:"airline"`   // hex ledger address
	Signature    string `json:"signature"` // hex signature blob
	Nonce        uint64 `json:"nonce"`
}

// CreateFlight handles POST /v1/airline/flights.  Authorization is
// proven by the airline's signature over the flight-creation message,
// not by the submitting account, so an agent may relay a creation on an
// airline's behalf.
func (h *AirlineHandler) CreateFlight(c echo.Context) error {
	var req createFlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	airline, err := ledger.ParseAddress(strings.TrimSpace(req.Airline))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid airline address"})
	}
	signature, err := hex.DecodeString(strings.TrimSpace(req.Signature))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid signature encoding"})
	}

	flightID, err := h.Ledger.CreateFlight(ledger.CreateFlightParams{
		Number:      req.FlightNumber,
		Origin:      req.Origin,
		Destination: req.Destination,
		Departure:   req.Departure,
		AirlineCode: req.AirlineCode,
		AirlineName: req.AirlineName,
		TotalSeats:  req.TotalSeats,
		Airline:     airline,
		Signature:   signature,
		Nonce:       req.Nonce,
	})
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"flight_id": flightID.String()})
}

type addSeatsReq struct {
	FlightNumber string   `json:"flight_number"`
	Departure    int64    `json:"departure"`
	SeatNumbers  []string `json:"seat_numbers"`
	SeatPrices   []uint64 `json:"seat_prices"`
	CabinClass   string   `json:"cabin_class"` // ECONOMY | BUSINESS | FIRST
}

// AddSeats handles POST /v1/airline/flights/seats.  The caller must be
// the flight's registered airline; the ledger enforces ownership and
// capacity, and the whole batch applies or none of it does.
func (h *AirlineHandler) AddSeats(c echo.Context) error {
	caller, err := callerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cabin, ok := ledger.ParseCabinClass(strings.ToUpper(strings.TrimSpace(req.CabinClass)))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cabin class"})
	}

	if err := h.Ledger.AddSeatsToClass(req.FlightNumber, req.Departure, req.SeatNumbers, req.SeatPrices, cabin, caller); err != nil {
		return ledgerError(c, err)
	}

	flightID := ledger.FlightID(req.FlightNumber, req.Departure)
	seatIDs := h.Ledger.SeatsForFlight(flightID)
	out := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		out[i] = id.String()
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"flight_id": flightID.String(),
		"seat_ids":  out,
	})
}

// EscrowBalance handles GET /v1/airline/escrow and returns the caller's
// collected, unwithdrawn fees.
func (h *AirlineHandler) EscrowBalance(c echo.Context) error {
	caller, err := callerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"airline": caller.String(),
		"balance": h.Ledger.EscrowBalance(caller),
	})
}

// Withdraw handles POST /v1/airline/escrow/withdraw.  The ledger only
// pays an airline's balance to the airline itself, so the target is
// always the caller's own address.
func (h *AirlineHandler) Withdraw(c echo.Context) error {
	caller, err := callerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	amount, err := h.Ledger.WithdrawFlightFees(caller, caller)
	if err != nil {
		return ledgerError(c, err)
	}

	if h.Publish != nil && amount > 0 {
		_ = h.Publish(c.Request().Context(), queue.FeesWithdrawnQueue, queue.FeesWithdrawnEvent{
			Airline:     caller.String(),
			Amount:      amount,
			WithdrawnAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"airline": caller.String(),
		"amount":  amount,
	})
}
