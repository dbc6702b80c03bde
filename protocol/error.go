// Defines the error taxonomy reported in the results of
// the credential operations.

package protocol

import (
	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/merkletree"
	"github.com/sdt-sys/sdt-go/query"
)

// ErrorKind names the class of a failed operation.
type ErrorKind string

const (
	ClaimShapeError    ErrorKind = "ClaimShapeError"
	QuerySyntaxError   ErrorKind = "QuerySyntaxError"
	SerializationError ErrorKind = "SerializationError"
	VerificationError  ErrorKind = "VerificationError"
	MalformedCommand   ErrorKind = "MalformedCommand"
	InternalError      ErrorKind = "InternalError"
)

var (
	// ErrMalformedCommand indicates a command that could not be decoded.
	ErrMalformedCommand = errors.New("[protocol] Malformed command")
	// ErrMalformedCredential indicates a credential without payloads
	// or with a payload lacking its tree.
	ErrMalformedCredential = errors.New("[protocol] Malformed credential")
	// ErrUnknownHashAlg indicates a credential whose hash algorithm
	// is not registered.
	ErrUnknownHashAlg = errors.New("[protocol] Unknown hash algorithm")
)

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	var verr *merkletree.VerificationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return VerificationError
	case errors.Is(err, merkletree.ErrClaimShape):
		return ClaimShapeError
	case errors.Is(err, query.ErrQuerySyntax):
		return QuerySyntaxError
	case errors.Is(err, merkletree.ErrSerialization),
		errors.Is(err, ErrMalformedCredential),
		errors.Is(err, ErrUnknownHashAlg):
		return SerializationError
	case errors.Is(err, ErrMalformedCommand):
		return MalformedCommand
	}
	return InternalError
}

// isClassified reports whether err belongs to one of the data error
// kinds, as opposed to a decoding failure of the command itself.
func isClassified(err error) bool {
	switch KindOf(err) {
	case ClaimShapeError, QuerySyntaxError, SerializationError, VerificationError:
		return true
	}
	return false
}
