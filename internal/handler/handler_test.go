package handler

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-seat-ledger/internal/ledger"
)

// identity bundles an ed25519 key pair with its derived ledger address.
type identity struct {
	priv ed25519.PrivateKey
	addr ledger.Address
}

func newIdentity(t *testing.T) identity {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return identity{priv: priv, addr: ledger.AddressFromPublicKey(pub)}
}

// fixture holds a ledger pre-seeded with one flight and two priced seats.
type fixture struct {
	ledger    *ledger.Ledger
	airline   identity
	passenger identity
	flightID  ledger.ID
	seatIDs   []ledger.ID
	departure int64
}

const seatPrice = 500

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l := ledger.New(nil)
	airline := newIdentity(t)
	passenger := newIdentity(t)

	departure := time.Now().Add(48 * time.Hour).Unix()
	flightID := ledger.FlightID("EK531", departure)
	sig := ledger.Sign(airline.priv, ledger.AuthMessage(flightID, airline.addr, 1))

	id, err := l.CreateFlight(ledger.CreateFlightParams{
		Number:      "EK531",
		Origin:      "DXB",
		Destination: "COK",
		Departure:   departure,
		AirlineCode: "EK",
		AirlineName: "Emirates Airlines",
		TotalSeats:  4,
		Airline:     airline.addr,
		Signature:   sig,
		Nonce:       1,
	})
	require.NoError(t, err)
	require.Equal(t, flightID, id)

	err = l.AddSeatsToClass("EK531", departure, []string{"12A", "12B"}, []uint64{seatPrice, seatPrice}, ledger.Economy, airline.addr)
	require.NoError(t, err)

	return &fixture{
		ledger:    l,
		airline:   airline,
		passenger: passenger,
		flightID:  flightID,
		seatIDs:   l.SeatsForFlight(flightID),
		departure: departure,
	}
}

// doJSON builds an echo context for a JSON request.  caller, when
// non-empty, simulates the address claim JWTAuth injects.
func doJSON(t *testing.T, method, target, caller string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if caller != "" {
		c.Set("address", caller)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateFlightHandler(t *testing.T) {
	l := ledger.New(nil)
	h := NewAirlineHandler(l, nil)
	airline := newIdentity(t)
	relay := newIdentity(t)

	departure := time.Now().Add(72 * time.Hour).Unix()
	flightID := ledger.FlightID("LH760", departure)
	sig := ledger.Sign(airline.priv, ledger.AuthMessage(flightID, airline.addr, 7))

	body := map[string]any{
		"flight_number": "LH760",
		"origin":        "FRA",
		"destination":   "DEL",
		"departure":     departure,
		"airline_code":  "LH",
		"airline_name":  "Lufthansa",
		"total_seats":   10,
		"airline":       airline.addr.String(),
		"signature":     hex.EncodeToString(sig),
		"nonce":         7,
	}

	// Submitted by a relay account, authorized by the airline signature.
	c, rec := doJSON(t, http.MethodPost, "/v1/airline/flights", relay.addr.String(), body)
	require.NoError(t, h.CreateFlight(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, flightID.String(), decodeBody(t, rec)["flight_id"])

	// Same payload again is a duplicate flight.
	c, rec = doJSON(t, http.MethodPost, "/v1/airline/flights", relay.addr.String(), body)
	require.NoError(t, h.CreateFlight(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A signature from a different key fails authorization.
	bad := body
	bad["flight_number"] = "LH761"
	bad["signature"] = hex.EncodeToString(ledger.Sign(relay.priv, ledger.AuthMessage(ledger.FlightID("LH761", departure), airline.addr, 7)))
	c, rec = doJSON(t, http.MethodPost, "/v1/airline/flights", relay.addr.String(), bad)
	require.NoError(t, h.CreateFlight(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Non-hex signature is rejected before reaching the ledger.
	bad["signature"] = "zz-not-hex"
	c, rec = doJSON(t, http.MethodPost, "/v1/airline/flights", relay.addr.String(), bad)
	require.NoError(t, h.CreateFlight(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddSeatsHandler(t *testing.T) {
	fx := newFixture(t)
	h := NewAirlineHandler(fx.ledger, nil)

	body := map[string]any{
		"flight_number": "EK531",
		"departure":     fx.departure,
		"seat_numbers":  []string{"14C", "14D"},
		"seat_prices":   []uint64{900, 900},
		"cabin_class":   "BUSINESS",
	}

	c, rec := doJSON(t, http.MethodPost, "/v1/airline/flights/seats", fx.airline.addr.String(), body)
	require.NoError(t, h.AddSeats(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	assert.Len(t, resp["seat_ids"], 4)

	// Only the registered airline may grow the inventory.
	body["seat_numbers"] = []string{"15A"}
	body["seat_prices"] = []uint64{900}
	c, rec = doJSON(t, http.MethodPost, "/v1/airline/flights/seats", fx.passenger.addr.String(), body)
	require.NoError(t, h.AddSeats(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Unknown cabin class never reaches the ledger.
	body["cabin_class"] = "STEERAGE"
	c, rec = doJSON(t, http.MethodPost, "/v1/airline/flights/seats", fx.airline.addr.String(), body)
	require.NoError(t, h.AddSeats(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// No address claim means no caller identity.
	body["cabin_class"] = "BUSINESS"
	c, rec = doJSON(t, http.MethodPost, "/v1/airline/flights/seats", "", body)
	require.NoError(t, h.AddSeats(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func seatContext(t *testing.T, fx *fixture, method, suffix, caller string, body any, seatID ledger.ID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := doJSON(t, method, "/v1/seats/"+seatID.String()+suffix, caller, body)
	c.SetParamNames("id")
	c.SetParamValues(seatID.String())
	return c, rec
}

func TestBookSeatHandler(t *testing.T) {
	fx := newFixture(t)
	h := NewPassengerHandler(fx.ledger, nil)
	seatID := fx.seatIDs[0]

	c, rec := seatContext(t, fx, http.MethodPost, "/book", fx.passenger.addr.String(), map[string]any{"paid_amount": seatPrice}, seatID)
	require.NoError(t, h.BookSeat(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, fx.passenger.addr.String(), resp["owner"])
	assert.Equal(t, "OCCUPIED", resp["status"])
	assert.Equal(t, uint64(seatPrice), fx.ledger.EscrowBalance(fx.airline.addr))

	// Underpaying the second seat is rejected with 402.
	other := newIdentity(t)
	c, rec = seatContext(t, fx, http.MethodPost, "/book", other.addr.String(), map[string]any{"paid_amount": seatPrice - 1}, fx.seatIDs[1])
	require.NoError(t, h.BookSeat(c))
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	// The first seat is already taken.
	c, rec = seatContext(t, fx, http.MethodPost, "/book", other.addr.String(), map[string]any{"paid_amount": seatPrice}, seatID)
	require.NoError(t, h.BookSeat(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A malformed seat id fails before the ledger is consulted.
	c, rec = doJSON(t, http.MethodPost, "/v1/seats/nope/book", other.addr.String(), map[string]any{"paid_amount": seatPrice})
	c.SetParamNames("id")
	c.SetParamValues("nope")
	require.NoError(t, h.BookSeat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckinHandler(t *testing.T) {
	fx := newFixture(t)
	h := NewPassengerHandler(fx.ledger, nil)
	seatID := fx.seatIDs[0]
	require.NoError(t, fx.ledger.BookSeat(seatID, fx.passenger.addr, seatPrice))

	// Missing barcode or passport scan is rejected up front.
	c, rec := seatContext(t, fx, http.MethodPost, "/checkin", fx.passenger.addr.String(), map[string]any{"barcode": "", "passport_scan": "scan-1"}, seatID)
	require.NoError(t, h.Checkin(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Only the reservation holder may check in.
	intruder := newIdentity(t)
	c, rec = seatContext(t, fx, http.MethodPost, "/checkin", intruder.addr.String(), map[string]any{"barcode": "EKDXBCOK12A", "passport_scan": "scan-1"}, seatID)
	require.NoError(t, h.Checkin(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = seatContext(t, fx, http.MethodPost, "/checkin", fx.passenger.addr.String(), map[string]any{"barcode": "EKDXBCOK12A", "passport_scan": "scan-1"}, seatID)
	require.NoError(t, h.Checkin(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	passID, err := ledger.ParseID(resp["boarding_pass_id"].(string))
	require.NoError(t, err)

	owner, err := fx.ledger.OwnerOf(passID)
	require.NoError(t, err)
	assert.Equal(t, fx.passenger.addr, owner)

	// An unbooked seat has no reservation to convert.
	c, rec = seatContext(t, fx, http.MethodPost, "/checkin", fx.passenger.addr.String(), map[string]any{"barcode": "EKDXBCOK12B", "passport_scan": "scan-1"}, fx.seatIDs[1])
	require.NoError(t, h.Checkin(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApproveHandler(t *testing.T) {
	fx := newFixture(t)
	h := NewPassengerHandler(fx.ledger, nil)
	seatID := fx.seatIDs[0]
	require.NoError(t, fx.ledger.BookSeat(seatID, fx.passenger.addr, seatPrice))

	delegate := newIdentity(t)
	body := map[string]any{"approved": delegate.addr.String()}

	// The reservation token id equals the seat id.
	c, rec := doJSON(t, http.MethodPost, "/v1/tokens/"+seatID.String()+"/approve", fx.passenger.addr.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(seatID.String())
	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	approved, ok, err := fx.ledger.Approved(seatID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, delegate.addr, approved)

	// Only the owner may change the approval.
	c, rec = doJSON(t, http.MethodPost, "/v1/tokens/"+seatID.String()+"/approve", delegate.addr.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(seatID.String())
	require.NoError(t, h.Approve(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEscrowHandlers(t *testing.T) {
	fx := newFixture(t)
	h := NewAirlineHandler(fx.ledger, nil)
	require.NoError(t, fx.ledger.BookSeat(fx.seatIDs[0], fx.passenger.addr, seatPrice))

	c, rec := doJSON(t, http.MethodGet, "/v1/airline/escrow", fx.airline.addr.String(), nil)
	require.NoError(t, h.EscrowBalance(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, seatPrice, decodeBody(t, rec)["balance"])

	c, rec = doJSON(t, http.MethodPost, "/v1/airline/escrow/withdraw", fx.airline.addr.String(), nil)
	require.NoError(t, h.Withdraw(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, seatPrice, decodeBody(t, rec)["amount"])

	// A second withdrawal finds nothing left.
	c, rec = doJSON(t, http.MethodPost, "/v1/airline/escrow/withdraw", fx.airline.addr.String(), nil)
	require.NoError(t, h.Withdraw(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeBody(t, rec)["amount"])
}

func TestPublicFlightEndpoints(t *testing.T) {
	fx := newFixture(t)
	h := NewPublicHandler(fx.ledger)

	c, rec := doJSON(t, http.MethodGet, "/v1/airlines", "", nil)
	require.NoError(t, h.GetAirlines(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fx.airline.addr.String())

	c, rec = doJSON(t, http.MethodGet, "/v1/flights/id?flight_number=EK531&departure="+jsonInt(fx.departure), "", nil)
	require.NoError(t, h.DeriveFlightID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fx.flightID.String(), decodeBody(t, rec)["flight_id"])

	c, rec = doJSON(t, http.MethodGet, "/v1/flights/"+fx.flightID.String(), "", nil)
	c.SetParamNames("id")
	c.SetParamValues(fx.flightID.String())
	require.NoError(t, h.GetFlight(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "EK531", resp["flight_number"])
	assert.EqualValues(t, 2, resp["seats_added"])

	unknown := ledger.FlightID("XX000", fx.departure)
	c, rec = doJSON(t, http.MethodGet, "/v1/flights/"+unknown.String(), "", nil)
	c.SetParamNames("id")
	c.SetParamValues(unknown.String())
	require.NoError(t, h.GetFlight(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicSeatAndTokenEndpoints(t *testing.T) {
	fx := newFixture(t)
	h := NewPublicHandler(fx.ledger)
	seatID := fx.seatIDs[0]

	c, rec := seatContext(t, fx, http.MethodGet, "", "", nil, seatID)
	require.NoError(t, h.GetSeat(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "12A", resp["seat_number"])
	assert.Equal(t, "VACANT", resp["status"])

	c, rec = seatContext(t, fx, http.MethodGet, "/barcode-parameters", "", nil, seatID)
	require.NoError(t, h.GetBarcodeParameters(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody(t, rec)
	assert.Equal(t, "EK", resp["airline_code"])
	assert.Equal(t, "DXB", resp["origin"])
	assert.Equal(t, "COK", resp["destination"])
	assert.Equal(t, "12A", resp["seat_number"])

	// Before booking, the seat's token does not exist.
	c, rec = doJSON(t, http.MethodGet, "/v1/tokens/"+seatID.String(), "", nil)
	c.SetParamNames("id")
	c.SetParamValues(seatID.String())
	require.NoError(t, h.GetToken(c))
	assert.Equal(t, false, decodeBody(t, rec)["exists"])

	require.NoError(t, fx.ledger.BookSeat(seatID, fx.passenger.addr, seatPrice))

	c, rec = doJSON(t, http.MethodGet, "/v1/tokens/"+seatID.String(), "", nil)
	c.SetParamNames("id")
	c.SetParamValues(seatID.String())
	require.NoError(t, h.GetToken(c))
	resp = decodeBody(t, rec)
	assert.Equal(t, true, resp["exists"])
	assert.Equal(t, fx.passenger.addr.String(), resp["owner"])
	assert.Equal(t, "RESERVATION", resp["kind"])
	// The airline is pre-approved on every reservation.
	assert.Equal(t, fx.airline.addr.String(), resp["approved"])

	// No boarding pass exists until check-in.
	c, rec = seatContext(t, fx, http.MethodGet, "/boarding-pass", "", nil, seatID)
	require.NoError(t, h.GetBoardingPass(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	passID, err := fx.ledger.CheckinBuyer(seatID, "EKDXBCOK12A", "scan-1", fx.passenger.addr)
	require.NoError(t, err)

	c, rec = seatContext(t, fx, http.MethodGet, "/boarding-pass", "", nil, seatID)
	require.NoError(t, h.GetBoardingPass(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody(t, rec)
	assert.Equal(t, passID.String(), resp["boarding_pass_id"])
	assert.Equal(t, "EKDXBCOK12A", resp["barcode"])
	assert.Equal(t, fx.passenger.addr.String(), resp["owner"])
}

func jsonInt(v int64) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}
