package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-seat-ledger/internal/ledger"
)

// PublicHandler exposes the ledger's read-only projections.  These
// endpoints require no authentication: everything here is public ledger
// state.
type PublicHandler struct {
	Ledger *ledger.Ledger
}

func NewPublicHandler(l *ledger.Ledger) *PublicHandler {
	return &PublicHandler{Ledger: l}
}

// GetAirlines handles GET /v1/airlines: the active-airline roster in
// registration order.
func (h *PublicHandler) GetAirlines(c echo.Context) error {
	roster := h.Ledger.ActiveAirlines()
	out := make([]string, len(roster))
	for i, a := range roster {
		out[i] = a.String()
	}
	return c.JSON(http.StatusOK, echo.Map{"airlines": out})
}

// GetAirlineFlights handles GET /v1/airlines/:address/flights: the
// airline's flight ids in creation order.
func (h *PublicHandler) GetAirlineFlights(c echo.Context) error {
	addr, err := ledger.ParseAddress(c.Param("address"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid airline address"})
	}
	ids := h.Ledger.FlightIDsForAirline(addr)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return c.JSON(http.StatusOK, echo.Map{"flight_ids": out})
}

// DeriveFlightID handles GET /v1/flights/id?flight_number=..&departure=..
// It is the pure id derivation, exposed so clients can compute the id
// they need to sign for before the flight exists.
func (h *PublicHandler) DeriveFlightID(c echo.Context) error {
	number := c.QueryParam("flight_number")
	departure, err := strconv.ParseInt(c.QueryParam("departure"), 10, 64)
	if number == "" || err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_number and departure required"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"flight_id": ledger.FlightID(number, departure).String(),
	})
}

type flightResp struct {
	FlightID    string `json:"flight_id"`
	Airline     string `json:"airline"`
	Number      string `json:"flight_number"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	AirlineCode string `json:"airline_code"`
	AirlineName string `json:"airline_name"`
	Departure   int64  `json:"departure"`
	TotalSeats  int    `json:"total_seats"`
	SeatsAdded  int    `json:"seats_added"`
	Active      bool   `json:"active"`
}

// GetFlight handles GET /v1/flights/:id.
func (h *PublicHandler) GetFlight(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	f, err := h.Ledger.Flight(id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, flightResp{
		FlightID:    f.ID.String(),
		Airline:     f.Airline.String(),
		Number:      f.Number,
		Origin:      f.Origin,
		Destination: f.Destination,
		AirlineCode: f.AirlineCode,
		AirlineName: f.AirlineName,
		Departure:   f.Departure,
		TotalSeats:  f.TotalSeats,
		SeatsAdded:  f.SeatsAdded,
		Active:      f.Active,
	})
}

// GetFlightSeats handles GET /v1/flights/:id/seats: the flight's seat
// ids in registration order.
func (h *PublicHandler) GetFlightSeats(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	ids := h.Ledger.SeatsForFlight(id)
	out := make([]string, len(ids))
	for i, sid := range ids {
		out[i] = sid.String()
	}
	return c.JSON(http.StatusOK, echo.Map{"seat_ids": out})
}

type seatResp struct {
	SeatID     string `json:"seat_id"`
	FlightID   string `json:"flight_id"`
	SeatNumber string `json:"seat_number"`
	Price      uint64 `json:"price"`
	Status     string `json:"status"`
	CabinClass string `json:"cabin_class"`
	CheckedIn  bool   `json:"checked_in"`
}

// GetSeat handles GET /v1/seats/:id.
func (h *PublicHandler) GetSeat(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	s, err := h.Ledger.Seat(id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, seatResp{
		SeatID:     s.ID.String(),
		FlightID:   s.FlightID.String(),
		SeatNumber: s.Number,
		Price:      s.Price,
		Status:     s.Status.String(),
		CabinClass: s.Cabin.String(),
		CheckedIn:  s.CheckedIn,
	})
}

// GetBarcodeParameters handles GET /v1/seats/:id/barcode-parameters.
// The ledger stores only the raw fields; assembling the printable
// barcode string is the client's job.
func (h *PublicHandler) GetBarcodeParameters(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	p, err := h.Ledger.BarcodeParameters(id)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"airline_code": p.AirlineCode,
		"origin":       p.Origin,
		"destination":  p.Destination,
		"departure":    p.Departure,
		"seat_number":  p.SeatNumber,
	})
}

// GetBoardingPass handles GET /v1/seats/:id/boarding-pass.
func (h *PublicHandler) GetBoardingPass(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	pass, err := h.Ledger.BoardingPassForSeat(id)
	if err != nil {
		return ledgerError(c, err)
	}
	owner, err := h.Ledger.OwnerOf(pass.ID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"boarding_pass_id": pass.ID.String(),
		"seat_id":          pass.SeatID.String(),
		"barcode":          pass.Barcode,
		"passport_scan":    pass.PassportScan,
		"owner":            owner.String(),
	})
}

// GetToken handles GET /v1/tokens/:id: owner, approval and kind of a
// live token.
func (h *PublicHandler) GetToken(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token id"})
	}
	if !h.Ledger.Exists(id) {
		return c.JSON(http.StatusOK, echo.Map{"token_id": id.String(), "exists": false})
	}
	owner, err := h.Ledger.OwnerOf(id)
	if err != nil {
		return ledgerError(c, err)
	}
	kind, err := h.Ledger.KindOf(id)
	if err != nil {
		return ledgerError(c, err)
	}
	resp := echo.Map{
		"token_id": id.String(),
		"exists":   true,
		"owner":    owner.String(),
		"kind":     kind.String(),
	}
	if approved, ok, err := h.Ledger.Approved(id); err == nil && ok {
		resp["approved"] = approved.String()
	}
	return c.JSON(http.StatusOK, resp)
}
