package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
)

type testErrorRandReader struct{}

func (er testErrorRandReader) Read([]byte) (int, error) {
	return 0, errors.New("not enough entropy")
}

func TestMakeSalt(t *testing.T) {
	s, err := MakeSalt(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 2*SaltSizeByte {
		t.Fatal("Bad salt length", "expect", 2*SaltSizeByte, "got", len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatal("Salt is not hex encoded:", err)
	}

	s2, err := MakeSalt(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if s == s2 {
		t.Error("Two salts from the system source should differ")
	}

	if _, err = MakeSalt(testErrorRandReader{}); err == nil {
		t.Fatal("No error returned")
	}
}

func TestMakeSaltDeterministic(t *testing.T) {
	src := bytes.Repeat([]byte{0xab}, SaltSizeByte)
	s, err := MakeSalt(bytes.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if s != hex.EncodeToString(src) {
		t.Error("Unexpected salt", s)
	}
	// a short source is an error, not a short salt
	if _, err := MakeSalt(bytes.NewReader(src[:3])); err == nil {
		t.Fatal("Expect an error for a short random source")
	}
}

func TestProofEqual(t *testing.T) {
	if !ProofEqual("abcd", "abcd") {
		t.Error("Equal proofs reported as different")
	}
	if ProofEqual("abcd", "abce") || ProofEqual("abcd", "abc") {
		t.Error("Different proofs reported as equal")
	}
}
