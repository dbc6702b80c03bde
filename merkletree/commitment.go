package merkletree

import (
	"io"

	"github.com/sdt-sys/sdt-go/crypto"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
)

// ValueCommitment binds a scalar value to a random salt.
// Its fields are declared in canonical order.
type ValueCommitment struct {
	Salt  string `json:"salt"`
	Value Value  `json:"value"`
}

// Commit draws a fresh salt from rand and returns the commitment to v.
// If rand is nil, crypto/rand is used.
func Commit(rand io.Reader, v Value) (*ValueCommitment, error) {
	salt, err := crypto.MakeSalt(rand)
	if err != nil {
		return nil, err
	}
	return &ValueCommitment{Salt: salt, Value: v}, nil
}

// Digest returns the hex encoded hash of the canonical form of c.
func (c *ValueCommitment) Digest(h hasher.CommitmentHasher) (string, error) {
	return HashCanonical(h, c)
}

func (c *ValueCommitment) isBody() {}
