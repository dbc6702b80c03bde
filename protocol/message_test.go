package protocol

import (
	"encoding/json"
	"testing"

	"github.com/sdt-sys/sdt-go/merkletree"
)

const scenarioClaim = `{"personal":{"name":"Adem","age":5},"keys":{"assertions":{"key-1":"0x12"}}}`

// roundTrip sends cmd through its wire encoding, as a remote caller would.
func roundTrip(t *testing.T, cmd *Command) *Command {
	b, err := json.Marshal(cmd)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Command
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	return &decoded
}

func execute(t *testing.T, cmd *Command, kind CommandKind) *Result {
	res := Execute(roundTrip(t, cmd))
	if res.Kind != kind {
		t.Fatal("Expect", kind, "got", res.Kind, res.ErrorKind, res.Message)
	}
	return res
}

func TestExecuteOperations(t *testing.T) {
	var claim merkletree.Object
	if err := json.Unmarshal([]byte(scenarioClaim), &claim); err != nil {
		t.Fatal(err)
	}
	res := execute(t, NewInceptionCommand("sub-1", claim), InceptionKind)
	cred := res.Credential

	update := merkletree.NewBranch().
		AddNode("personal", merkletree.NewBranch().AddValue("name", merkletree.Null())).
		Claim()
	res = execute(t, NewMutationCommand(cred, update), MutationKind)
	if cred.Len() != 1 {
		t.Error("Mutation modified the credential of the command")
	}
	cred = res.Credential
	if cred.Len() != 2 {
		t.Fatal("Expect 2 payloads, got", cred.Len())
	}

	tip := execute(t, NewProofCommand(cred), ProofKind).Proof
	selected := execute(t, NewSelectionCommand(cred, "{ personal { name } }"), SelectionKind).Credential

	if res := execute(t, NewVerificationCommand(selected, tip), VerificationKind); !res.Verified {
		t.Error("Expect a verified result")
	}
	res = execute(t, NewDisclosureCommand(selected, tip), DisclosureKind)
	b, _ := json.Marshal(res.Disclosed)
	if string(b) != `{"personal":{"name":["Adem",null]}}` {
		t.Error("Unexpected disclosure", string(b))
	}
}

func TestExecuteErrors(t *testing.T) {
	cred := NewTestCredential(t, "sub-1", `{"a":1}`)
	tip, _ := cred.Proof()

	tests := []struct {
		cmd  *Command
		kind ErrorKind
	}{
		{NewSelectionCommand(cred, "{ a } }"), QuerySyntaxError},
		{NewVerificationCommand(cred, "00"), VerificationError},
		{NewDisclosureCommand(cred, "00"), VerificationError},
		{NewProofCommand(&Credential{}), SerializationError},
		{NewMutationCommand(nil, merkletree.Object{}), MalformedCommand},
		{NewInceptionCommand("sub-2", nil), ClaimShapeError},
		{NewMutationCommand(cred, nil), ClaimShapeError},
		{&Command{Kind: "Unknown", Payload: struct{}{}}, MalformedCommand},
	}
	for _, tc := range tests {
		res := Execute(tc.cmd)
		if !res.Failed() || res.ErrorKind != tc.kind {
			t.Error(tc.cmd.Kind, "Expect", tc.kind, "got", res.Kind, res.ErrorKind)
		}
		if res.Message == "" {
			t.Error("Expect an error message")
		}
	}
	if res := Execute(NewVerificationCommand(cred, tip)); res.Failed() {
		t.Error(res.Message)
	}
}

func TestExecuteMissingClaim(t *testing.T) {
	cred := NewTestCredential(t, "sub-1", `{"a":1}`)
	credJSON, err := json.Marshal(cred)
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{
		`{"cmd":"Inception","payload":{"subject":"s"}}`,
		`{"cmd":"Inception","payload":{"subject":"s","claim":null}}`,
		`{"cmd":"Mutation","payload":{"credential":` + string(credJSON) + `}}`,
		`{"cmd":"Mutation","payload":{"credential":` + string(credJSON) + `,"claim":null}}`,
	} {
		cmd, err := DecodeCommand([]byte(in))
		if err != nil {
			t.Fatal(in, err)
		}
		res := Execute(cmd)
		if !res.Failed() || res.ErrorKind != ClaimShapeError {
			t.Error(in, "Expect", ClaimShapeError, "got", res.Kind, res.ErrorKind)
		}
	}
	if cred.Len() != 1 {
		t.Error("Expect the credential to stay untouched")
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind ErrorKind
	}{
		{`{"cmd":"Inception","payload":{"subject":"s","claim":{"a":[1]}}}`, ClaimShapeError},
		{`{"cmd":"Inception","payload":{"subject":"s","claim":"x"}}`, ClaimShapeError},
		{`{"cmd":"Proof","payload":{"credential":{"hash_alg":18,"subject":"s","payload":{"proof":"00","node":{"proof":"00"}}}}}`, SerializationError},
		{`{"cmd":"Fly","payload":{}}`, MalformedCommand},
		{`{"cmd":"Proof"}`, MalformedCommand},
		{`{"cmd":"Proof","payload":[]}`, MalformedCommand},
		{`not json`, MalformedCommand},
	}
	for _, tc := range tests {
		_, err := DecodeCommand([]byte(tc.in))
		if err == nil {
			t.Fatal("Expect an error for", tc.in)
		}
		if got := NewErrorResult(err).ErrorKind; got != tc.kind {
			t.Error(tc.in, "Expect", tc.kind, "got", got)
		}
	}
}

func TestResultJSON(t *testing.T) {
	b, err := json.Marshal(NewVerificationResult())
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"kind":"Verification","verified":true}` {
		t.Error("Unexpected encoding", string(b))
	}
	b, _ = json.Marshal(NewErrorResult(ErrMalformedCommand))
	if string(b) != `{"kind":"Error","error_kind":"MalformedCommand","message":"[protocol] Malformed command"}` {
		t.Error("Unexpected encoding", string(b))
	}
}
