package sha3

import (
	"encoding/hex"
	"testing"
)

func TestDigestVectors(t *testing.T) {
	for _, tc := range []struct {
		in   [][]byte
		want string
	}{
		{in: [][]byte{[]byte("abc")}, want: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{in: nil, want: "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
	} {
		if got := hex.EncodeToString(New().Digest(tc.in...)); got != tc.want {
			t.Errorf("Digest(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
