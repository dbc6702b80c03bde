package merkletree

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
)

// Canonical returns the canonical form of v: compact JSON with object
// keys sorted by byte order and without HTML escaping. Maps and the
// structs of this package are emitted with sorted keys.
func Canonical(v interface{}) ([]byte, error) {
	b, err := marshalNoEscape(v)
	if err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}
	return b, nil
}

// HashCanonical hashes the canonical form of v with h and returns
// the hex encoded digest.
func HashCanonical(h hasher.CommitmentHasher, v interface{}) (string, error) {
	b, err := Canonical(v)
	if err != nil {
		return "", err
	}
	return hasher.HexDigest(h, b), nil
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// branchProof computes the commitment of a branch from the commitments
// of its children.
func branchProof(h hasher.CommitmentHasher, proofs map[string]string) (string, error) {
	return HashCanonical(h, proofs)
}
