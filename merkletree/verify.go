package merkletree

import (
	"github.com/sdt-sys/sdt-go/crypto"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
)

// Recompute computes the root commitment of a possibly redacted tree.
// Redacted children are trusted, revealed leaves and branches are
// re-hashed. Every revealed node's stored proof must match its
// recomputed commitment, otherwise a *VerificationError locating the
// node is returned.
func Recompute(h hasher.CommitmentHasher, n *Node) (string, error) {
	return newProver(h, 1, false).proof(n, "")
}

// Verify recomputes the root of n and compares it with expected.
// On success it returns the revealed values of n.
func Verify(h hasher.CommitmentHasher, n *Node, expected string) (DiscloseResult, error) {
	actual, err := Recompute(h, n)
	if err != nil {
		return nil, err
	}
	if !crypto.ProofEqual(expected, actual) {
		return nil, newVerificationError(expected, actual, "")
	}
	result := make(DiscloseResult)
	Collect(n, result)
	return result, nil
}
