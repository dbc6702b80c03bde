// Package blake3 registers BLAKE3 with a 256-bit output as the
// commitment hasher for hash_alg 0x1e.
package blake3

import (
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"github.com/zeebo/blake3"
)

func init() {
	hasher.RegisterHasher(hasher.BLAKE3, New)
}

type blake3Hasher struct{}

// New returns an instance of the BLAKE3 hasher.
func New() hasher.CommitmentHasher {
	return blake3Hasher{}
}

func (blake3Hasher) Digest(ms ...[]byte) []byte {
	h := blake3.New()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

func (blake3Hasher) ID() hasher.HashAlg {
	return hasher.BLAKE3
}

func (blake3Hasher) Name() string {
	return "blake3"
}

func (blake3Hasher) Size() int {
	return 32
}
