package ledger

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// ID is a 32-byte BLAKE3 digest identifying a flight, a seat, or a
// boarding pass.  Flight and seat ids are deterministic functions of
// their inputs; boarding-pass ids additionally fold in a per-ledger
// sequence number so every issued pass is fresh.
type ID [32]byte

// Address is a 20-byte ledger identity, derived from an ed25519 public
// key (see AddressFromPublicKey).
type Address [20]byte

// domainKey is a 32-byte key for BLAKE3 keyed hashing.  Each id space
// uses its own key, so a flight id, a seat id and a boarding-pass id can
// never collide even when derived from overlapping inputs.  The byte
// values are the ASCII domain name zero-padded to 32 bytes, which keeps
// the keys inspectable in hex dumps without weakening the hash.
type domainKey [32]byte

var (
	flightDomainKey = domainKey{
		's', 'e', 'a', 't', 'l', 'e', 'd', 'g', 'e', 'r', '.',
		'f', 'l', 'i', 'g', 'h', 't',
	}

	seatDomainKey = domainKey{
		's', 'e', 'a', 't', 'l', 'e', 'd', 'g', 'e', 'r', '.',
		's', 'e', 'a', 't',
	}

	passDomainKey = domainKey{
		's', 'e', 'a', 't', 'l', 'e', 'd', 'g', 'e', 'r', '.',
		'b', 'o', 'a', 'r', 'd', 'i', 'n', 'g', 'p', 'a', 's', 's',
	}

	authDomainKey = domainKey{
		's', 'e', 'a', 't', 'l', 'e', 'd', 'g', 'e', 'r', '.',
		'f', 'l', 'i', 'g', 'h', 't', 'a', 'u', 't', 'h',
	}

	addressDomainKey = domainKey{
		's', 'e', 'a', 't', 'l', 'e', 'd', 'g', 'e', 'r', '.',
		'a', 'd', 'd', 'r', 'e', 's', 's',
	}
)

// keyedHash computes the BLAKE3 keyed hash of the concatenated parts.
// Each part is length-prefixed so that adjacent variable-length fields
// cannot be re-split into a colliding input.
func keyedHash(key domainKey, parts ...[]byte) ID {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		// The key is always exactly 32 bytes; NewKeyed cannot fail here.
		panic(err)
	}
	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	var id ID
	copy(id[:], h.Sum(nil))
	return id
}

// uint64Bytes encodes v as 8 big-endian bytes.
func uint64Bytes(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// FlightID derives the deterministic id for a (flight number, departure)
// pair.  Departure is in integer seconds since epoch.  The same pair
// always yields the same id, which is how duplicate creation is caught.
func FlightID(flightNumber string, departure int64) ID {
	return keyedHash(flightDomainKey, []byte(flightNumber), uint64Bytes(uint64(departure)))
}

// SeatID derives the deterministic id for a seat on a flight.
func SeatID(flightID ID, seatNumber string) ID {
	return keyedHash(seatDomainKey, flightID[:], []byte(seatNumber))
}

// boardingPassID derives a fresh boarding-pass id from the seat it is
// issued for and the ledger's pass sequence.  The pass domain key keeps
// these ids disjoint from every seat id.
func boardingPassID(seatID ID, seq uint64) ID {
	return keyedHash(passDomainKey, seatID[:], uint64Bytes(seq))
}

// AuthMessage builds the message an airline signs to authorize creation
// of a flight: the auth-domain hash of (flight id, airline identity,
// nonce) in that field order.  Relays submitting on an airline's behalf
// must reproduce this encoding exactly for previously-issued signatures
// to keep verifying.
func AuthMessage(flightID ID, airline Address, nonce uint64) []byte {
	m := keyedHash(authDomainKey, flightID[:], airline[:], uint64Bytes(nonce))
	return m[:]
}

// String returns the id as lowercase hex.
func (id ID) String() string { return hex.EncodeToString(id[:]) }

// ParseID decodes a 64-character hex string into an ID.
func ParseID(s string) (ID, error) {
	var id ID
	b, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("parse id: %w", err)
	}
	if len(b) != len(id) {
		return ID{}, fmt.Errorf("parse id: got %d bytes, want %d", len(b), len(id))
	}
	copy(id[:], b)
	return id, nil
}

// String returns the address as lowercase hex.
func (a Address) String() string { return hex.EncodeToString(a[:]) }

// ParseAddress decodes a 40-character hex string into an Address.
func ParseAddress(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("parse address: %w", err)
	}
	if len(b) != len(a) {
		return Address{}, fmt.Errorf("parse address: got %d bytes, want %d", len(b), len(a))
	}
	copy(a[:], b)
	return a, nil
}
