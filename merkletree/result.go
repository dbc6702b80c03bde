package merkletree

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// DiscloseResult mirrors the revealed part of one or more trees,
// holding the revealed values by label.
type DiscloseResult map[string]*Disclosed

// Disclosed is the entry of a label in a DiscloseResult. Values lists
// the values revealed for a leaf in chain order; Branch holds the
// entries below a revealed branch.
type Disclosed struct {
	Values []Value
	Branch DiscloseResult
}

// Collect merges the revealed leaves of n into result.
func Collect(n *Node, result DiscloseResult) {
	if b, ok := n.Branch(); ok {
		collectBranch(b, result)
	}
}

func collectBranch(b *Branch, result DiscloseResult) bool {
	added := false
	for _, label := range b.Labels() {
		node, ok := b.Children[label].(*Node)
		if !ok {
			continue
		}
		switch body := node.Body.(type) {
		case *ValueCommitment:
			e := result.entry(label)
			e.Values = append(e.Values, body.Value)
			added = true
		case *Branch:
			e, existed := result[label]
			if !existed {
				e = &Disclosed{}
			}
			if e.Branch == nil {
				e.Branch = make(DiscloseResult)
			}
			if collectBranch(body, e.Branch) {
				result[label] = e
				added = true
			} else if len(e.Branch) == 0 {
				e.Branch = nil
			}
		}
	}
	return added
}

func (r DiscloseResult) entry(label string) *Disclosed {
	e, ok := r[label]
	if !ok {
		e = &Disclosed{}
		r[label] = e
	}
	return e
}

// Lookup follows labels through nested branches.
func (r DiscloseResult) Lookup(labels ...string) *Disclosed {
	cur := r
	var e *Disclosed
	for _, l := range labels {
		if cur == nil {
			return nil
		}
		var ok bool
		if e, ok = cur[l]; !ok {
			return nil
		}
		cur = e.Branch
	}
	return e
}

// Values returns the values revealed at the leaf reached by labels.
func (r DiscloseResult) Values(labels ...string) []Value {
	if e := r.Lookup(labels...); e != nil {
		return e.Values
	}
	return nil
}

// MarshalJSON encodes d as the array of its values, as the object of
// its branch, or as the array of its values followed by the branch
// object when a label held both a leaf and a branch across versions.
func (d *Disclosed) MarshalJSON() ([]byte, error) {
	switch {
	case d.Branch == nil:
		values := d.Values
		if values == nil {
			values = []Value{}
		}
		return marshalNoEscape(values)
	case len(d.Values) == 0:
		return marshalNoEscape(d.Branch)
	}
	items := make([]interface{}, 0, len(d.Values)+1)
	for _, v := range d.Values {
		items = append(items, v)
	}
	return marshalNoEscape(append(items, d.Branch))
}

func (d *Disclosed) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		return json.Unmarshal(data, &d.Branch)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(ErrSerialization, err.Error())
	}
	d.Values = make([]Value, 0, len(items))
	for _, raw := range items {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '{' {
			if err := json.Unmarshal(raw, &d.Branch); err != nil {
				return err
			}
			continue
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return err
		}
		d.Values = append(d.Values, v)
	}
	return nil
}
