package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
)

const (
	// SaltSizeByte is the number of random bytes in a value
	// commitment's salt. The salt is rendered as 2*SaltSizeByte
	// hex characters.
	SaltSizeByte = 16
)

// MakeSalt reads SaltSizeByte bytes from r and returns them
// hex-encoded. If r is nil, crypto/rand.Reader is used.
// It returns an error if there was a problem while reading
// from the random source.
func MakeSalt(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	salt := make([]byte, SaltSizeByte)
	if _, err := io.ReadFull(r, salt); err != nil {
		return "", errors.Wrap(err, "make salt")
	}
	return hex.EncodeToString(salt), nil
}

// ProofEqual compares two hex-encoded commitments in constant time
// (with respect to their contents).
func ProofEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
