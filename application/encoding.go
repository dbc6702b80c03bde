// Defines methods/functions to encode/decode messages between callers
// and the server. Messages are JSON encoded.

package application

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/sdt-sys/sdt-go/utils"
)

// FetchKind is a server-side request which returns the stored
// credential of a subject and its chain tip.
const FetchKind protocol.CommandKind = "Fetch"

// A FetchRequest names the subject whose credential is requested.
type FetchRequest struct {
	Subject string `json:"subject"`
}

// NewFetchRequest creates a Fetch command for subject.
func NewFetchRequest(subject string) *protocol.Command {
	return &protocol.Command{
		Kind:    FetchKind,
		Payload: &FetchRequest{Subject: subject},
	}
}

// MarshalRequest returns a JSON encoding of the caller's command.
func MarshalRequest(cmd *protocol.Command) ([]byte, error) {
	return json.Marshal(cmd)
}

// UnmarshalRequest parses a JSON-encoded command msg and creates the
// corresponding protocol.Command, which will be handled by the server.
func UnmarshalRequest(msg []byte) (*protocol.Command, error) {
	var envelope struct {
		Kind    protocol.CommandKind `json:"cmd"`
		Payload json.RawMessage      `json:"payload"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return nil, errors.Wrap(protocol.ErrMalformedCommand, err.Error())
	}
	if envelope.Kind != FetchKind {
		return protocol.DecodeCommand(msg)
	}
	req := new(FetchRequest)
	if err := json.Unmarshal(envelope.Payload, req); err != nil || req.Subject == "" {
		return nil, errors.Wrap(protocol.ErrMalformedCommand, "fetch needs a subject")
	}
	return &protocol.Command{Kind: FetchKind, Payload: req}, nil
}

// MarshalResponse returns a JSON encoding of the server's result.
func MarshalResponse(res *protocol.Result) ([]byte, error) {
	return json.Marshal(res)
}

// UnmarshalResponse decodes the given message into a protocol.Result.
// An undecodable message yields an error result.
func UnmarshalResponse(msg []byte) *protocol.Result {
	res := new(protocol.Result)
	if err := json.Unmarshal(msg, res); err != nil {
		return malformedMsg(err)
	}
	if res.Kind == "" {
		return malformedMsg(errors.New("result without kind"))
	}
	return res
}

func malformedMsg(err error) *protocol.Result {
	return protocol.NewErrorResult(errors.Wrap(protocol.ErrMalformedCommand, err.Error()))
}

// MarshalCredentialToFile serializes the given credential to the
// given path.
func MarshalCredentialToFile(c *protocol.Credential, path string) error {
	buf, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFile(path, buf, 0600)
}
