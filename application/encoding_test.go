package application

import (
	"testing"

	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalRequest(t *testing.T) {
	cred := protocol.NewTestCredential(t, "sub-1", `{"a":1}`)
	msg, err := MarshalRequest(protocol.NewProofCommand(cred))
	require.NoError(t, err)
	cmd, err := UnmarshalRequest(msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ProofKind, cmd.Kind)
	_, ok := cmd.Payload.(*protocol.ProofCommand)
	assert.True(t, ok)

	msg, err = MarshalRequest(NewFetchRequest("sub-1"))
	require.NoError(t, err)
	cmd, err = UnmarshalRequest(msg)
	require.NoError(t, err)
	assert.Equal(t, FetchKind, cmd.Kind)
	assert.Equal(t, "sub-1", cmd.Payload.(*FetchRequest).Subject)

	for _, bad := range []string{
		`{"cmd":"Fetch","payload":{}}`,
		`{"cmd":"Fetch"}`,
		`{"cmd":"Nope","payload":{}}`,
		`garbage`,
	} {
		_, err := UnmarshalRequest([]byte(bad))
		assert.Equal(t, protocol.MalformedCommand, protocol.KindOf(err), bad)
	}
}

func TestUnmarshalResponse(t *testing.T) {
	msg, err := MarshalResponse(protocol.NewProofResult("abcd"))
	require.NoError(t, err)
	res := UnmarshalResponse(msg)
	assert.Equal(t, protocol.ProofKind, res.Kind)
	assert.Equal(t, "abcd", res.Proof)

	for _, bad := range []string{`garbage`, `{}`} {
		res := UnmarshalResponse([]byte(bad))
		assert.True(t, res.Failed())
		assert.Equal(t, protocol.MalformedCommand, res.ErrorKind)
	}
}
