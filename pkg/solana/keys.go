package solana

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// PublicKey is a 32-byte account address.
type PublicKey = ed25519.PublicKey

// PublicKeyFromBase58 decodes a base58-encoded public key.
func PublicKeyFromBase58(value string) (PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode public key")
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid public key size: %d", len(decoded))
	}
	return decoded, nil
}

// MustPublicKeyFromBase58 decodes a base58-encoded public key, panicking
// on failure. Intended for well-known compile-time constants only.
func MustPublicKeyFromBase58(value string) PublicKey {
	decoded, err := PublicKeyFromBase58(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

// KeysEqual reports whether two public keys are the same address.
func KeysEqual(a, b PublicKey) bool {
	return bytes.Equal(a, b)
}

// KeyToBase58 renders a public key in base58 for display and logging.
func KeyToBase58(key PublicKey) string {
	return base58.Encode(key)
}
