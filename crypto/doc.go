// Package crypto contains some cryptographic routines, to:
// - generate the random salts hidden inside value commitments
// - compare hex-encoded commitments in constant time.
// The digest functions themselves live in the hasher subpackages.
package crypto
