package merkletree

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

type leafJSON struct {
	Proof string `json:"proof"`
	Salt  string `json:"salt"`
	Value Value  `json:"value"`
}

type branchJSON struct {
	Proof  string           `json:"proof"`
	Branch map[string]Child `json:"branch"`
}

type nodeJSON struct {
	Proof  string                     `json:"proof"`
	Branch map[string]json.RawMessage `json:"branch"`
	Salt   *string                    `json:"salt"`
	Value  json.RawMessage            `json:"value"`
}

// MarshalJSON encodes a leaf as {"proof","salt","value"} and a branch
// as {"proof","branch"}, where a redacted child is its commitment
// string and a revealed child a nested node.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch body := n.Body.(type) {
	case *ValueCommitment:
		return marshalNoEscape(&leafJSON{
			Proof: n.Proof,
			Salt:  body.Salt,
			Value: body.Value,
		})
	case *Branch:
		children := body.Children
		if children == nil {
			children = map[string]Child{}
		}
		return marshalNoEscape(&branchJSON{
			Proof:  n.Proof,
			Branch: children,
		})
	}
	return nil, errors.Wrap(ErrSerialization, "node has no body")
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(ErrSerialization, err.Error())
	}
	switch {
	case raw.Branch != nil:
		b := &Branch{Children: make(map[string]Child, len(raw.Branch))}
		for label, c := range raw.Branch {
			if strings.Contains(label, PathSeparator) {
				return errors.Wrapf(ErrSerialization, "label %q contains %q", label, PathSeparator)
			}
			child, err := unmarshalChild(c)
			if err != nil {
				return errors.Wrapf(err, "child %q", label)
			}
			b.Children[label] = child
		}
		n.Proof, n.Body = raw.Proof, b
	case raw.Salt != nil:
		if len(raw.Value) == 0 {
			return errors.Wrap(ErrSerialization, "leaf without value")
		}
		var v Value
		if err := v.UnmarshalJSON(raw.Value); err != nil {
			return err
		}
		n.Proof, n.Body = raw.Proof, &ValueCommitment{Salt: *raw.Salt, Value: v}
	default:
		return errors.Wrap(ErrSerialization, "node is neither a leaf nor a branch")
	}
	return nil
}

func unmarshalChild(data json.RawMessage) (Child, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var proof string
		if err := json.Unmarshal(data, &proof); err != nil {
			return nil, errors.Wrap(ErrSerialization, err.Error())
		}
		return Redacted(proof), nil
	}
	n := new(Node)
	if err := n.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return n, nil
}
