// Package queue defines message payloads exchanged over the message
// broker, plus the background consumer that records them.
package queue

// Queue names, shared by the publisher and the consumer.
const (
    SeatBookedQueue    = "seat.booked"
    CheckedInQueue     = "passenger.checkedin"
    FeesWithdrawnQueue = "fees.withdrawn"
)

// SeatBookedEvent is published when a seat booking succeeds.  It carries
// enough for downstream consumers to notify or feed analytics without
// querying the ledger.
type SeatBookedEvent struct {
    SeatID       string `json:"seat_id"`
    FlightID     string `json:"flight_id"`
    FlightNumber string `json:"flight_number"`
    SeatNumber   string `json:"seat_number"`
    CabinClass   string `json:"cabin_class"`
    Passenger    string `json:"passenger"`
    Airline      string `json:"airline"`
    Price        uint64 `json:"price"`
    PaidAmount   uint64 `json:"paid_amount"`
    BookedAt     string `json:"booked_at"`
}

// CheckedInEvent is published when a passenger converts a reservation
// into a boarding pass.
type CheckedInEvent struct {
    SeatID         string `json:"seat_id"`
    BoardingPassID string `json:"boarding_pass_id"`
    Passenger      string `json:"passenger"`
    CheckedInAt    string `json:"checked_in_at"`
}

// FeesWithdrawnEvent is published when an airline withdraws its escrow
// balance.
type FeesWithdrawnEvent struct {
    Airline     string `json:"airline"`
    Amount      uint64 `json:"amount"`
    WithdrawnAt string `json:"withdrawn_at"`
}
