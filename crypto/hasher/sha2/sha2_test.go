package sha2

import (
	"encoding/hex"
	"testing"

	"github.com/sdt-sys/sdt-go/crypto/hasher"
)

func TestDigestVectors(t *testing.T) {
	for _, tc := range []struct {
		in   [][]byte
		want string
	}{
		{in: [][]byte{[]byte("abc")}, want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{in: [][]byte{[]byte("a"), []byte("bc")}, want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{in: nil, want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	} {
		if got := hex.EncodeToString(New().Digest(tc.in...)); got != tc.want {
			t.Errorf("Digest(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestRegistered(t *testing.T) {
	h, err := hasher.Hasher(hasher.SHA2_256)
	if err != nil {
		t.Fatal(err)
	}
	if h.ID() != hasher.SHA2_256 || h.Size() != 32 {
		t.Error("Unexpected hasher", h.Name(), h.Size())
	}
}
