// Package sha3 registers SHA3-256 as the commitment hasher for
// hash_alg 0x16.
package sha3

import (
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"golang.org/x/crypto/sha3"
)

func init() {
	hasher.RegisterHasher(hasher.SHA3_256, New)
}

type sha3Hasher struct{}

// New returns an instance of the SHA3-256 hasher.
func New() hasher.CommitmentHasher {
	return sha3Hasher{}
}

func (sha3Hasher) Digest(ms ...[]byte) []byte {
	h := sha3.New256()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

func (sha3Hasher) ID() hasher.HashAlg {
	return hasher.SHA3_256
}

func (sha3Hasher) Name() string {
	return "sha3-256"
}

func (sha3Hasher) Size() int {
	return 32
}
