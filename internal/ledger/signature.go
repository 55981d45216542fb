package ledger

import "crypto/ed25519"

// Airline authorization uses plain ed25519.  A signature blob carries the
// signer's 32-byte public key followed by the 64-byte signature, so the
// verifier can recover the signing identity from the blob itself and
// compare it to the claimed one; no key registry is needed.

// SignatureSize is the length of a signature blob: public key plus
// ed25519 signature.
const SignatureSize = ed25519.PublicKeySize + ed25519.SignatureSize

// AddressFromPublicKey derives the 20-byte ledger identity for an
// ed25519 public key: the address-domain hash of the key, truncated.
func AddressFromPublicKey(pub ed25519.PublicKey) Address {
	h := keyedHash(addressDomainKey, pub)
	var a Address
	copy(a[:], h[:len(a)])
	return a
}

// Sign produces a signature blob over message with the given private
// key.  It is the counterpart of Verify and exists for off-ledger
// tooling and tests; the ledger itself never signs.
func Sign(priv ed25519.PrivateKey, message []byte) []byte {
	pub := priv.Public().(ed25519.PublicKey)
	blob := make([]byte, 0, SignatureSize)
	blob = append(blob, pub...)
	blob = append(blob, ed25519.Sign(priv, message)...)
	return blob
}

// Verify reports whether signature is a valid blob over message produced
// by the key behind claimedSigner.  It has no side effects.  A signature
// made by a different key, or over a different message (a replayed
// signature for another flight id or nonce), fails.
func Verify(message []byte, claimedSigner Address, signature []byte) bool {
	if len(signature) != SignatureSize {
		return false
	}
	pub := ed25519.PublicKey(signature[:ed25519.PublicKeySize])
	sig := signature[ed25519.PublicKeySize:]
	if !ed25519.Verify(pub, message, sig) {
		return false
	}
	return AddressFromPublicKey(pub) == claimedSigner
}
