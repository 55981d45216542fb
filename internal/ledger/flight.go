package ledger

// Flight is an immutable flight record; only SeatsAdded changes after
// creation, as seat inventory is registered against the flight.
//
// Fields:
//  ID          – deterministic id, see FlightID.
//  Airline     – identity of the owning airline.
//  Number      – flight number, e.g. "EK531".
//  Origin      – origin airport code, e.g. "DXB".
//  Destination – destination airport code, e.g. "COK".
//  AirlineCode – short airline code, e.g. "EK".
//  AirlineName – display name, e.g. "Emirates Airlines".
//  Departure   – departure time in seconds since epoch.
//  TotalSeats  – seat capacity; SeatsAdded never exceeds it.
//  SeatsAdded  – count of seats registered so far.
//  Active      – whether the flight is open for operations.
type Flight struct {
	ID          ID
	Airline     Address
	Number      string
	Origin      string
	Destination string
	AirlineCode string
	AirlineName string
	Departure   int64
	TotalSeats  int
	SeatsAdded  int
	Active      bool
}

// CreateFlightParams carries the inputs of CreateFlight.  Signature is a
// blob produced by the airline's key over AuthMessage(flightID, Airline,
// Nonce); authorization is proven entirely by it, so any account may
// relay the creation on the airline's behalf.
type CreateFlightParams struct {
	Number      string
	Origin      string
	Destination string
	Departure   int64
	AirlineCode string
	AirlineName string
	TotalSeats  int
	Airline     Address
	Signature   []byte
	Nonce       uint64
}

// CreateFlight registers a new flight.  The departure must be strictly
// in the future, the (number, departure) pair must be unused, and the
// signature must verify against the airline identity.  On success the
// airline joins the active roster (once) and the flight id is appended
// to its flight list.
func (l *Ledger) CreateFlight(p CreateFlightParams) (ID, error) {
	if p.Number == "" || p.TotalSeats <= 0 {
		return ID{}, ErrMalformedInput
	}

	flightID := FlightID(p.Number, p.Departure)

	l.mu.Lock()
	defer l.mu.Unlock()

	if p.Departure <= l.now().Unix() {
		return ID{}, ErrInvalidDeparture
	}
	if _, exists := l.flights[flightID]; exists {
		return ID{}, ErrDuplicateFlight
	}
	if !Verify(AuthMessage(flightID, p.Airline, p.Nonce), p.Airline, p.Signature) {
		return ID{}, ErrBadAuthorization
	}

	l.flights[flightID] = &Flight{
		ID:          flightID,
		Airline:     p.Airline,
		Number:      p.Number,
		Origin:      p.Origin,
		Destination: p.Destination,
		AirlineCode: p.AirlineCode,
		AirlineName: p.AirlineName,
		Departure:   p.Departure,
		TotalSeats:  p.TotalSeats,
		Active:      true,
	}

	a, known := l.airlineIndex[p.Airline]
	if !known {
		a = &airline{active: true}
		l.airlineIndex[p.Airline] = a
		l.airlines = append(l.airlines, p.Airline)
	}
	a.flightIDs = append(a.flightIDs, flightID)

	return flightID, nil
}

// Flight returns a copy of the flight record, or ErrNotFound.
func (l *Ledger) Flight(id ID) (Flight, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.flights[id]
	if !ok {
		return Flight{}, ErrNotFound
	}
	return *f, nil
}

// ActiveAirlines returns the airline roster in insertion order.
func (l *Ledger) ActiveAirlines() []Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Address, len(l.airlines))
	copy(out, l.airlines)
	return out
}

// FlightIDsForAirline returns the ids of the airline's flights in
// creation order.  Unknown airlines yield an empty list.
func (l *Ledger) FlightIDsForAirline(identity Address) []ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.airlineIndex[identity]
	if !ok {
		return nil
	}
	out := make([]ID, len(a.flightIDs))
	copy(out, a.flightIDs)
	return out
}
