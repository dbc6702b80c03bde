package protocol

import (
	"testing"

	"github.com/sdt-sys/sdt-go/merkletree"
)

// NewTestCredential returns a credential for subject built from the
// given JSON claims, the first as inception and the rest as mutations,
// for _tests_.
func NewTestCredential(t *testing.T, subject string, claims ...string) *Credential {
	if len(claims) == 0 {
		t.Fatal("NewTestCredential needs at least one claim")
	}
	c, err := NewCredential(subject, mustClaim(t, claims[0]), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, claim := range claims[1:] {
		if err := c.Mutate(mustClaim(t, claim), nil); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func mustClaim(t *testing.T, s string) merkletree.Claim {
	c, err := merkletree.ParseClaim([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return c
}
