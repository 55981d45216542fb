// Package ledger implements the seat-inventory and ticketing ledger: the
// flight registry, per-flight seat inventory, the non-fungible token
// registry backing reservations and boarding passes, and the per-airline
// escrow of collected seat fees.
//
// All state lives on a single Ledger value guarded by one mutex.  Every
// mutating operation validates its inputs completely before touching any
// state, so each call either applies in full or leaves the ledger exactly
// as it was.  Calls are serialized; there is no partial application that
// another caller could observe.
package ledger

import (
	"sync"
	"time"
)

// PayoutFunc transfers withdrawn escrow funds to an airline.  It is
// invoked by WithdrawFlightFees after the airline's balance has been
// zeroed, so a reentrant withdrawal started from inside the payout
// observes an empty balance and cannot double-spend.
type PayoutFunc func(airline Address, amount uint64) error

// Ledger owns the full on-ledger state.  Construct it with New; the zero
// value is not usable.
type Ledger struct {
	mu sync.Mutex

	now    func() time.Time // injectable clock for departure validation
	payout PayoutFunc       // external value transfer, may be nil

	airlines     []Address            // active-airline roster, insertion order
	airlineIndex map[Address]*airline // roster lookup

	flights       map[ID]*Flight
	seats         map[ID]*Seat
	seatsByFlight map[ID][]ID // seat ids per flight, insertion order

	tokens map[ID]*token // reservation and boarding-pass entries, tagged by kind

	passes     map[ID]*BoardingPass // boarding passes by pass id
	passBySeat map[ID]ID            // seat id -> boarding-pass id
	passSeq    uint64               // feeds boarding-pass id derivation

	escrow map[Address]uint64 // collected, unwithdrawn fees per airline
}

// airline is the roster record for one airline identity.
type airline struct {
	active    bool
	flightIDs []ID // owned flights, insertion order
}

// New returns an empty ledger.  payout may be nil when the host performs
// no external value transfer on withdrawal.
func New(payout PayoutFunc) *Ledger {
	return &Ledger{
		now:           time.Now,
		payout:        payout,
		airlineIndex:  make(map[Address]*airline),
		flights:       make(map[ID]*Flight),
		seats:         make(map[ID]*Seat),
		seatsByFlight: make(map[ID][]ID),
		tokens:        make(map[ID]*token),
		passes:        make(map[ID]*BoardingPass),
		passBySeat:    make(map[ID]ID),
		escrow:        make(map[Address]uint64),
	}
}
