package protocol

import (
	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/query"
)

// Execute runs cmd with the default options.
func Execute(cmd *Command) *Result {
	return ExecuteWith(cmd, nil)
}

// ExecuteWith runs cmd. Mutation and Selection never modify the
// credential passed in the command; they return a new one.
func ExecuteWith(cmd *Command, opts *Options) *Result {
	switch req := cmd.Payload.(type) {
	case *InceptionCommand:
		o := Options{}
		if opts != nil {
			o = *opts
		}
		if req.HashAlg != 0 {
			o.HashAlg = req.HashAlg
		}
		c, err := NewCredential(req.Subject, req.Claim, &o)
		if err != nil {
			return NewErrorResult(err)
		}
		return NewCredentialResult(InceptionKind, c)

	case *MutationCommand:
		if req.Credential == nil {
			return NewErrorResult(errors.Wrap(ErrMalformedCommand, "missing credential"))
		}
		// mutate a copy so that the caller's credential stays intact
		c := req.Credential.Select(all{})
		if err := c.Mutate(req.Claim, opts); err != nil {
			return NewErrorResult(err)
		}
		return NewCredentialResult(MutationKind, c)

	case *SelectionCommand:
		if req.Credential == nil {
			return NewErrorResult(errors.Wrap(ErrMalformedCommand, "missing credential"))
		}
		sel, err := query.Parse(req.Query)
		if err != nil {
			return NewErrorResult(err)
		}
		return NewCredentialResult(SelectionKind, req.Credential.Select(sel))

	case *ProofCommand:
		if req.Credential == nil {
			return NewErrorResult(errors.Wrap(ErrMalformedCommand, "missing credential"))
		}
		proof, err := req.Credential.Proof()
		if err != nil {
			return NewErrorResult(err)
		}
		return NewProofResult(proof)

	case *VerificationCommand:
		if req.Credential == nil {
			return NewErrorResult(errors.Wrap(ErrMalformedCommand, "missing credential"))
		}
		result, err := req.Credential.Verify(req.Proof)
		if err != nil {
			return NewErrorResult(err)
		}
		if cmd.Kind == DisclosureKind {
			return NewDisclosureResult(result)
		}
		return NewVerificationResult()
	}
	return NewErrorResult(errors.Wrapf(ErrMalformedCommand, "unsupported command %q", cmd.Kind))
}

// all selects every path, so that Disclose yields a plain copy.
type all struct{}

func (all) Contains(string) bool      { return true }
func (all) HasDescendant(string) bool { return false }
