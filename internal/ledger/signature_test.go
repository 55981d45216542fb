package ledger

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	key, signer := newIdentity(t)
	message := AuthMessage(FlightID("EK531", futureDeparture), signer, 42)
	sig := Sign(key, message)

	assert.True(t, Verify(message, signer, sig))
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	key, _ := newIdentity(t)
	_, other := newIdentity(t)
	message := []byte("flight authorization")

	assert.False(t, Verify(message, other, Sign(key, message)))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	key, signer := newIdentity(t)
	sig := Sign(key, []byte("original"))

	assert.False(t, Verify([]byte("tampered"), signer, sig))
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	key, signer := newIdentity(t)
	message := []byte("flight authorization")
	sig := Sign(key, message)

	assert.False(t, Verify(message, signer, nil))
	assert.False(t, Verify(message, signer, sig[:len(sig)-1]))
	assert.False(t, Verify(message, signer, append(sig, 0)))

	// Flipping one signature byte invalidates the blob.
	bad := make([]byte, len(sig))
	copy(bad, sig)
	bad[len(bad)-1] ^= 0xff
	assert.False(t, Verify(message, signer, bad))
}

func TestVerifyRejectsSubstitutedKey(t *testing.T) {
	// A valid signature from another key cannot be passed off as the
	// claimed signer's: the address recovered from the embedded public
	// key will not match.
	_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, signer := newIdentity(t)
	message := []byte("flight authorization")

	assert.False(t, Verify(message, signer, Sign(otherPriv, message)))
}

func TestAddressFromPublicKeyIsStable(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	a := AddressFromPublicKey(pub)
	assert.Equal(t, a, AddressFromPublicKey(pub))

	other, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	assert.NotEqual(t, a, AddressFromPublicKey(other))
}

func TestParseIDAndAddressRoundTrip(t *testing.T) {
	id := FlightID("EK531", futureDeparture)
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, addr := newIdentity(t)
	parsedAddr, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsedAddr)

	_, err = ParseID("zz")
	assert.Error(t, err)
	_, err = ParseAddress("abcd")
	assert.Error(t, err)
}

func TestIDDomainsAreDisjoint(t *testing.T) {
	// The same raw inputs hashed in different domains never collide, so
	// a seat id can never be mistaken for a flight id or a pass id.
	flightID := FlightID("EK531", futureDeparture)
	seatID := SeatID(flightID, "1A")
	passID := boardingPassID(seatID, 0)

	assert.NotEqual(t, flightID, seatID)
	assert.NotEqual(t, seatID, passID)
	assert.NotEqual(t, flightID, passID)
}
