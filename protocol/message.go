// Defines the command and result formats of the credential
// operations and constructors for each of them.

package protocol

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"github.com/sdt-sys/sdt-go/merkletree"
)

// CommandKind names one of the six operations.
type CommandKind string

// The operations a caller can request.
const (
	InceptionKind    CommandKind = "Inception"
	MutationKind     CommandKind = "Mutation"
	SelectionKind    CommandKind = "Selection"
	ProofKind        CommandKind = "Proof"
	VerificationKind CommandKind = "Verification"
	DisclosureKind   CommandKind = "Disclosure"
	// ErrorKindResult tags a failed Result.
	ErrorKindResult CommandKind = "Error"
)

// A Command defines the operation a caller requests and its arguments.
// On the wire it is {"cmd": kind, "payload": {...}}.
type Command struct {
	Kind    CommandKind
	Payload interface{}
}

// An InceptionCommand creates a credential for Subject from Claim.
// HashAlg is optional.
type InceptionCommand struct {
	Subject string            `json:"subject"`
	Claim   merkletree.Object `json:"claim"`
	HashAlg hasher.HashAlg    `json:"hash_alg,omitempty"`
}

// A MutationCommand appends the tree of Claim to Credential.
type MutationCommand struct {
	Credential *Credential       `json:"credential"`
	Claim      merkletree.Object `json:"claim"`
}

// A SelectionCommand discloses the parts of Credential matched by Query.
type SelectionCommand struct {
	Credential *Credential `json:"credential"`
	Query      string      `json:"query"`
}

// A ProofCommand recomputes the tip of Credential.
type ProofCommand struct {
	Credential *Credential `json:"credential"`
}

// A VerificationCommand checks Credential against Proof.
// The same arguments serve a Disclosure command, which also returns
// the revealed values.
type VerificationCommand struct {
	Credential *Credential `json:"credential"`
	Proof      string      `json:"proof"`
}

// NewInceptionCommand creates a Command for an inception.
func NewInceptionCommand(subject string, claim merkletree.Object) *Command {
	return &Command{
		Kind:    InceptionKind,
		Payload: &InceptionCommand{Subject: subject, Claim: claim},
	}
}

// NewMutationCommand creates a Command for a mutation.
func NewMutationCommand(c *Credential, claim merkletree.Object) *Command {
	return &Command{
		Kind:    MutationKind,
		Payload: &MutationCommand{Credential: c, Claim: claim},
	}
}

// NewSelectionCommand creates a Command for a selection.
func NewSelectionCommand(c *Credential, query string) *Command {
	return &Command{
		Kind:    SelectionKind,
		Payload: &SelectionCommand{Credential: c, Query: query},
	}
}

// NewProofCommand creates a Command for a proof computation.
func NewProofCommand(c *Credential) *Command {
	return &Command{
		Kind:    ProofKind,
		Payload: &ProofCommand{Credential: c},
	}
}

// NewVerificationCommand creates a Command for a verification.
func NewVerificationCommand(c *Credential, proof string) *Command {
	return &Command{
		Kind:    VerificationKind,
		Payload: &VerificationCommand{Credential: c, Proof: proof},
	}
}

// NewDisclosureCommand creates a Command for a disclosure.
func NewDisclosureCommand(c *Credential, proof string) *Command {
	return &Command{
		Kind:    DisclosureKind,
		Payload: &VerificationCommand{Credential: c, Proof: proof},
	}
}

type commandJSON struct {
	Kind    CommandKind     `json:"cmd"`
	Payload json.RawMessage `json:"payload"`
}

func (c *Command) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(c.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&commandJSON{Kind: c.Kind, Payload: payload})
}

// UnmarshalJSON decodes a command. Failures to decode the envelope
// or the arguments are reported as ErrMalformedCommand, unless the
// arguments themselves are invalid claims or credentials.
func (c *Command) UnmarshalJSON(data []byte) error {
	var raw commandJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(ErrMalformedCommand, err.Error())
	}
	var payload interface{}
	switch raw.Kind {
	case InceptionKind:
		payload = new(InceptionCommand)
	case MutationKind:
		payload = new(MutationCommand)
	case SelectionKind:
		payload = new(SelectionCommand)
	case ProofKind:
		payload = new(ProofCommand)
	case VerificationKind, DisclosureKind:
		payload = new(VerificationCommand)
	default:
		return errors.Wrapf(ErrMalformedCommand, "unknown command %q", raw.Kind)
	}
	if len(raw.Payload) == 0 {
		return errors.Wrap(ErrMalformedCommand, "missing payload")
	}
	if err := json.Unmarshal(raw.Payload, payload); err != nil {
		if isClassified(err) {
			return err
		}
		return errors.Wrap(ErrMalformedCommand, err.Error())
	}
	c.Kind, c.Payload = raw.Kind, payload
	return nil
}

// DecodeCommand decodes a command from its wire encoding.
func DecodeCommand(data []byte) (*Command, error) {
	cmd := new(Command)
	if err := cmd.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return cmd, nil
}

// A Result is the outcome of a Command. Kind is the command kind on
// success and "Error" on failure; only the fields of that kind are set.
type Result struct {
	Kind       CommandKind               `json:"kind"`
	Credential *Credential               `json:"credential,omitempty"`
	Proof      string                    `json:"proof,omitempty"`
	Verified   bool                      `json:"verified,omitempty"`
	Disclosed  merkletree.DiscloseResult `json:"disclosed,omitempty"`
	ErrorKind  ErrorKind                 `json:"error_kind,omitempty"`
	Message    string                    `json:"message,omitempty"`
}

// NewErrorResult creates a failed Result for err.
func NewErrorResult(err error) *Result {
	return &Result{
		Kind:      ErrorKindResult,
		ErrorKind: KindOf(err),
		Message:   err.Error(),
	}
}

// NewCredentialResult creates the Result of an operation returning
// a credential.
func NewCredentialResult(kind CommandKind, c *Credential) *Result {
	return &Result{Kind: kind, Credential: c}
}

// NewProofResult creates the Result of a Proof command.
func NewProofResult(proof string) *Result {
	return &Result{Kind: ProofKind, Proof: proof}
}

// NewVerificationResult creates the Result of a successful
// Verification command.
func NewVerificationResult() *Result {
	return &Result{Kind: VerificationKind, Verified: true}
}

// NewDisclosureResult creates the Result of a Disclosure command.
func NewDisclosureResult(r merkletree.DiscloseResult) *Result {
	return &Result{Kind: DisclosureKind, Disclosed: r}
}

// Failed reports whether r is an error result.
func (r *Result) Failed() bool {
	return r.Kind == ErrorKindResult
}
