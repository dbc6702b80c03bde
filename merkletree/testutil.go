package merkletree

import (
	"github.com/sdt-sys/sdt-go/crypto/hasher"
)

// staticReader is a deterministic stream of bytes 0, 1, 2, ... .
type staticReader struct {
	next byte
}

func (r *staticReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next++
	}
	return len(p), nil
}

// NewStaticBuilder returns a Builder whose salts come from a
// deterministic stream, for _tests_.
func NewStaticBuilder(h hasher.CommitmentHasher) *Builder {
	return &Builder{
		Hasher:  h,
		Rand:    &staticReader{},
		Workers: 1,
	}
}
