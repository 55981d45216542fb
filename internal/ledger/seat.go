package ledger

// SeatStatus is a seat's occupancy state.
type SeatStatus uint8

const (
	// Vacant means the seat may be booked.
	Vacant SeatStatus = iota
	// Occupied means a live reservation token exists for the seat.
	Occupied
)

// String returns the status name for API responses.
func (s SeatStatus) String() string {
	switch s {
	case Vacant:
		return "VACANT"
	case Occupied:
		return "OCCUPIED"
	}
	return "UNKNOWN"
}

// CabinClass is a seat category.  It affects storage and display only.
type CabinClass uint8

const (
	Economy CabinClass = iota
	Business
	First
)

// String returns the cabin class name for API responses.
func (c CabinClass) String() string {
	switch c {
	case Economy:
		return "ECONOMY"
	case Business:
		return "BUSINESS"
	case First:
		return "FIRST"
	}
	return "UNKNOWN"
}

// ParseCabinClass maps a class name to its CabinClass value.
func ParseCabinClass(s string) (CabinClass, bool) {
	switch s {
	case "ECONOMY":
		return Economy, true
	case "BUSINESS":
		return Business, true
	case "FIRST":
		return First, true
	}
	return 0, false
}

// Seat is one seat of a flight's inventory.
//
// Fields:
//  ID        – deterministic id, see SeatID.
//  FlightID  – owning flight.
//  Number    – seat code, e.g. "1A".
//  Price     – price in the ledger's smallest native unit, always > 0.
//  Status    – Vacant or Occupied.
//  Cabin     – cabin class.
//  CheckedIn – set exactly once at check-in, terminal.
type Seat struct {
	ID        ID
	FlightID  ID
	Number    string
	Price     uint64
	Status    SeatStatus
	Cabin     CabinClass
	CheckedIn bool
}

// AddSeatsToClass registers a batch of seats on the flight identified by
// (flightNumber, departure).  Only the flight's registered airline may
// add inventory.  The batch is validated in full before any seat is
// created: mismatched or empty number/price slices and zero prices fail
// MalformedInput, an already-registered seat number fails AlreadyExists,
// and a batch that would exceed the flight's capacity fails
// CapacityExceeded with the seats-added count unchanged.
func (l *Ledger) AddSeatsToClass(flightNumber string, departure int64, seatNumbers []string, seatPrices []uint64, cabin CabinClass, caller Address) error {
	if len(seatNumbers) != len(seatPrices) || len(seatNumbers) == 0 {
		return ErrMalformedInput
	}

	flightID := FlightID(flightNumber, departure)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, ok := l.flights[flightID]
	if !ok {
		return ErrNotFound
	}
	if f.Airline != caller {
		return ErrNotFlightOwner
	}
	if f.SeatsAdded+len(seatNumbers) > f.TotalSeats {
		return ErrCapacityExceeded
	}

	ids := make([]ID, len(seatNumbers))
	seen := make(map[ID]struct{}, len(seatNumbers))
	for i, num := range seatNumbers {
		if num == "" || seatPrices[i] == 0 {
			return ErrMalformedInput
		}
		id := SeatID(flightID, num)
		if _, dup := seen[id]; dup {
			return ErrMalformedInput
		}
		if _, exists := l.seats[id]; exists {
			return ErrAlreadyExists
		}
		seen[id] = struct{}{}
		ids[i] = id
	}

	// Validation is complete; apply the whole batch.
	for i, id := range ids {
		l.seats[id] = &Seat{
			ID:       id,
			FlightID: flightID,
			Number:   seatNumbers[i],
			Price:    seatPrices[i],
			Status:   Vacant,
			Cabin:    cabin,
		}
		l.seatsByFlight[flightID] = append(l.seatsByFlight[flightID], id)
	}
	f.SeatsAdded += len(ids)
	return nil
}

// SeatsForFlight returns the flight's seat ids in registration order.
func (l *Ledger) SeatsForFlight(flightID ID) []ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.seatsByFlight[flightID]
	out := make([]ID, len(ids))
	copy(out, ids)
	return out
}

// Seat returns a copy of the seat record, or ErrSeatNotFound.
func (l *Ledger) Seat(id ID) (Seat, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.seats[id]
	if !ok {
		return Seat{}, ErrSeatNotFound
	}
	return *s, nil
}
