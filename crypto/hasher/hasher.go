package hasher

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// HashAlg identifies a digest function by its multicodec code.
// It is the "hash_alg" value carried in a credential.
type HashAlg uint64

const (
	// SHA2_256 is the multicodec code of SHA2-256.
	SHA2_256 HashAlg = 0x12
	// SHA3_256 is the multicodec code of SHA3-256.
	SHA3_256 HashAlg = 0x16
	// BLAKE3 is the multicodec code of BLAKE3 (256-bit output).
	BLAKE3 HashAlg = 0x1e

	// Default is the algorithm used when none is configured.
	Default = SHA2_256
)

// CommitmentHasher provides the digest function used to compute
// value, branch and chain commitments.
type CommitmentHasher interface {
	// ID returns the multicodec code of the hash function.
	ID() HashAlg
	// Name returns a human readable name of the hash function.
	Name() string
	// Size returns the size of the hash output in bytes.
	Size() int
	// Digest hashes all passed byte slices. The passed slices won't be mutated.
	Digest(ms ...[]byte) []byte
}

var (
	hashersMu sync.RWMutex
	hashers   = make(map[HashAlg]CommitmentHasher)
)

// RegisterHasher registers a hasher for use.
func RegisterHasher(id HashAlg, f func() CommitmentHasher) {
	hashersMu.Lock()
	defer hashersMu.Unlock()
	if _, ok := hashers[id]; ok {
		panic(fmt.Sprintf("RegisterHasher(%#x) is already registered", uint64(id)))
	}
	hashers[id] = f()
}

// Hasher returns the CommitmentHasher registered for id.
func Hasher(id HashAlg) (CommitmentHasher, error) {
	hashersMu.RLock()
	defer hashersMu.RUnlock()
	if h, ok := hashers[id]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("Hasher(%#x) is unknown hasher", uint64(id))
}

// Registered returns the ids of all registered hashers in
// ascending order.
func Registered() []HashAlg {
	hashersMu.RLock()
	defer hashersMu.RUnlock()
	ids := make([]HashAlg, 0, len(hashers))
	for id := range hashers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Lookup returns the id of the registered hasher with the given name,
// or of the given multicodec code written in Go integer syntax.
func Lookup(name string) (HashAlg, error) {
	hashersMu.RLock()
	defer hashersMu.RUnlock()
	for id, h := range hashers {
		if h.Name() == name {
			return id, nil
		}
	}
	if code, err := strconv.ParseUint(name, 0, 64); err == nil {
		if _, ok := hashers[HashAlg(code)]; ok {
			return HashAlg(code), nil
		}
	}
	return 0, fmt.Errorf("Lookup(%q) is unknown hasher", name)
}

// HexDigest hashes ms with h and returns the lowercase hex encoding
// of the result.
func HexDigest(h CommitmentHasher, ms ...[]byte) string {
	return hex.EncodeToString(h.Digest(ms...))
}

func (id HashAlg) String() string {
	return fmt.Sprintf("%#x", uint64(id))
}
