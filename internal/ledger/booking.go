package ledger

// BoardingPass is the credential minted at check-in in place of the
// burned reservation token.  It is immutable and never burned.
//
// Fields:
//  ID           – fresh id from the boarding-pass domain, never a seat id.
//  SeatID       – the seat the pass was issued for.
//  Barcode      – display barcode assembled by the caller from the
//                 parameters returned by BarcodeParameters.
//  PassportScan – opaque URI or content pointer to the passport scan.
type BoardingPass struct {
	ID           ID
	SeatID       ID
	Barcode      string
	PassportScan string
}

// BarcodeParams are the raw fields a caller assembles into the printed
// barcode string.  The ledger stores only these fields, never the
// assembled string, until check-in provides one.
type BarcodeParams struct {
	AirlineCode string
	Origin      string
	Destination string
	Departure   int64
	SeatNumber  string
}

// BookSeat reserves a vacant seat for the caller against a deposited
// payment.  On success a reservation token for the seat id is minted to
// the caller with the seat's airline pre-approved on it, the seat
// becomes Occupied, and the airline's escrow balance rises by exactly
// the seat price.  Overpayment is retained, not refunded and not
// credited to the airline.
func (l *Ledger) BookSeat(seatID ID, caller Address, paidAmount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.seats[seatID]
	if !ok {
		return ErrSeatNotFound
	}
	if s.Status != Vacant {
		return ErrSeatUnavailable
	}
	if paidAmount < s.Price {
		return ErrInsufficientPayment
	}

	f := l.flights[s.FlightID]
	if err := l.mintToken(KindReservation, seatID, caller, &f.Airline); err != nil {
		return err
	}
	s.Status = Occupied
	l.escrow[f.Airline] += s.Price
	return nil
}

// CheckinBuyer converts the caller's reservation into a boarding pass.
// The reservation token is burned, a fresh boarding-pass token is minted
// to the caller carrying the barcode string and passport-scan reference,
// and the seat's checked-in flag is set for good.  Only the current
// owner of the reservation token may check in.
func (l *Ledger) CheckinBuyer(seatID ID, barcode, passportScan string, caller Address) (ID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seats[seatID]; !ok {
		return ID{}, ErrSeatNotFound
	}
	t, live := l.tokens[seatID]
	if !live || t.kind != KindReservation {
		return ID{}, ErrNotBooked
	}
	if t.owner != caller {
		return ID{}, ErrNotTokenOwner
	}

	passID := boardingPassID(seatID, l.passSeq)
	if err := l.mintToken(KindBoardingPass, passID, caller, nil); err != nil {
		return ID{}, err
	}
	if err := l.burnToken(seatID); err != nil {
		// The reservation was verified live above; this cannot fire.
		delete(l.tokens, passID)
		return ID{}, err
	}
	l.passSeq++

	pass := &BoardingPass{
		ID:           passID,
		SeatID:       seatID,
		Barcode:      barcode,
		PassportScan: passportScan,
	}
	l.passes[passID] = pass
	l.passBySeat[seatID] = passID
	l.seats[seatID].CheckedIn = true
	return passID, nil
}

// BarcodeParameters returns the raw barcode fields for a seat's boarding
// pass: airline code, origin, destination, departure and seat number.
func (l *Ledger) BarcodeParameters(seatID ID) (BarcodeParams, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.seats[seatID]
	if !ok {
		return BarcodeParams{}, ErrSeatNotFound
	}
	f := l.flights[s.FlightID]
	return BarcodeParams{
		AirlineCode: f.AirlineCode,
		Origin:      f.Origin,
		Destination: f.Destination,
		Departure:   f.Departure,
		SeatNumber:  s.Number,
	}, nil
}

// BoardingPassForSeat returns the boarding pass issued for a seat, or
// ErrNotFound when the seat has not been checked in.
func (l *Ledger) BoardingPassForSeat(seatID ID) (BoardingPass, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	passID, ok := l.passBySeat[seatID]
	if !ok {
		return BoardingPass{}, ErrNotFound
	}
	return *l.passes[passID], nil
}
