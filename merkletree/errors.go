package merkletree

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrClaimShape indicates a claim containing a value that is
	// neither a scalar nor an object, e.g. an array.
	ErrClaimShape = errors.New("[merkletree] Claim value is neither a scalar nor an object")
	// ErrSerialization indicates a failure of the canonical encoding
	// or a malformed wire representation.
	ErrSerialization = errors.New("[merkletree] Serialization failed")
)

// A VerificationError is returned when a recomputed commitment does not
// match the expected one.
type VerificationError struct {
	Expected string
	Actual   string
	// Path of the node whose stored proof did not match,
	// empty for the root.
	Path string
	// Position is the index of the payload in a mutation chain,
	// or -1 for a standalone tree.
	Position int
}

func (e *VerificationError) Error() string {
	msg := fmt.Sprintf("[merkletree] Commitment mismatch: expected %q, got %q", e.Expected, e.Actual)
	if e.Path != "" {
		msg += fmt.Sprintf(" at path %q", e.Path)
	}
	if e.Position >= 0 {
		msg += fmt.Sprintf(" (payload %d)", e.Position)
	}
	return msg
}

func newVerificationError(expected, actual, path string) *VerificationError {
	return &VerificationError{
		Expected: expected,
		Actual:   actual,
		Path:     path,
		Position: -1,
	}
}
