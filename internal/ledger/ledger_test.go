package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ledgerNow is the fixed clock used by every test ledger, so departure
// validation does not depend on wall time.
var ledgerNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// futureDeparture is a departure comfortably in the future relative to
// ledgerNow (100 days, matching the reference booking scenario).
var futureDeparture = ledgerNow.Add(100 * 24 * time.Hour).Unix()

// newTestLedger returns a ledger with a fixed clock and the given payout
// hook (nil for tests that never withdraw).
func newTestLedger(payout PayoutFunc) *Ledger {
	l := New(payout)
	l.now = func() time.Time { return ledgerNow }
	return l
}

// newIdentity generates a fresh signing key and its ledger address.
func newIdentity(t *testing.T) (ed25519.PrivateKey, Address) {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return priv, AddressFromPublicKey(priv.Public().(ed25519.PublicKey))
}

// createFlight registers a flight signed by the airline key and returns
// its id.
func createFlight(t *testing.T, l *Ledger, key ed25519.PrivateKey, airline Address, number string, departure int64, totalSeats int) ID {
	t.Helper()
	flightID := FlightID(number, departure)
	nonce := uint64(ledgerNow.Unix())
	id, err := l.CreateFlight(CreateFlightParams{
		Number:      number,
		Origin:      "DXB",
		Destination: "COK",
		Departure:   departure,
		AirlineCode: "EK",
		AirlineName: "Emirates Airlines",
		TotalSeats:  totalSeats,
		Airline:     airline,
		Signature:   Sign(key, AuthMessage(flightID, airline, nonce)),
		Nonce:       nonce,
	})
	require.NoError(t, err)
	require.Equal(t, flightID, id)
	return id
}

// TestEndToEndBookingScenario walks the full lifecycle: flight creation,
// seat inventory, booking, double-booking rejection, check-in and fee
// withdrawal.
func TestEndToEndBookingScenario(t *testing.T) {
	var paidOut []uint64
	l := newTestLedger(func(_ Address, amount uint64) error {
		paidOut = append(paidOut, amount)
		return nil
	})

	airlineKey, airline := newIdentity(t)
	_, passenger := newIdentity(t)

	flightID := createFlight(t, l, airlineKey, airline, "EK531", futureDeparture, 3)

	err := l.AddSeatsToClass("EK531", futureDeparture,
		[]string{"1A", "1B", "1C"}, []uint64{1, 2, 3}, Economy, airline)
	require.NoError(t, err)

	seatIDs := l.SeatsForFlight(flightID)
	require.Len(t, seatIDs, 3)

	// Book seat 1A for exactly its price.
	require.NoError(t, l.BookSeat(seatIDs[0], passenger, 1))
	seat, err := l.Seat(seatIDs[0])
	require.NoError(t, err)
	require.Equal(t, Occupied, seat.Status)
	owner, err := l.OwnerOf(seatIDs[0])
	require.NoError(t, err)
	require.Equal(t, passenger, owner)

	// The same seat cannot be booked twice.
	require.ErrorIs(t, l.BookSeat(seatIDs[0], passenger, 1), ErrSeatUnavailable)

	// Check in: reservation gone, boarding pass minted to the passenger.
	passID, err := l.CheckinBuyer(seatIDs[0], "EKDXBCOK1A", "ipfs://passport", passenger)
	require.NoError(t, err)
	require.False(t, l.Exists(seatIDs[0]))
	passOwner, err := l.OwnerOf(passID)
	require.NoError(t, err)
	require.Equal(t, passenger, passOwner)

	// Airline withdraws the single collected fee and the balance resets.
	amount, err := l.WithdrawFlightFees(airline, airline)
	require.NoError(t, err)
	require.Equal(t, uint64(1), amount)
	require.Equal(t, uint64(0), l.EscrowBalance(airline))
	require.Equal(t, []uint64{1}, paidOut)
}
