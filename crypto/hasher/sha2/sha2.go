// Package sha2 registers SHA2-256 as the commitment hasher for
// hash_alg 0x12, which is the default algorithm of new credentials.
package sha2

import (
	"crypto"
	_ "crypto/sha256" // links SHA-256 into crypto.Hash

	"github.com/sdt-sys/sdt-go/crypto/hasher"
)

func init() {
	hasher.RegisterHasher(hasher.SHA2_256, New)
}

type sha2Hasher struct {
	crypto.Hash
}

// New returns an instance of the SHA2-256 hasher.
func New() hasher.CommitmentHasher {
	return &sha2Hasher{Hash: crypto.SHA256}
}

func (h *sha2Hasher) Digest(ms ...[]byte) []byte {
	d := h.New()
	for _, m := range ms {
		d.Write(m)
	}
	return d.Sum(nil)
}

func (sha2Hasher) ID() hasher.HashAlg {
	return hasher.SHA2_256
}

func (sha2Hasher) Name() string {
	return "sha2-256"
}

func (h *sha2Hasher) Size() int {
	return h.Hash.Size()
}
