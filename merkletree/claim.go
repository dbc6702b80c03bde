package merkletree

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Claim is the input of a Builder: either a Scalar or an Object.
type Claim interface {
	isClaim()
}

// Scalar is a claim holding a single value.
type Scalar struct {
	Value Value
}

// Object is a claim mapping labels to nested claims.
type Object map[string]Claim

func (Scalar) isClaim() {}
func (Object) isClaim() {}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return s.Value.MarshalJSON()
}

// PathSeparator joins the labels of a path. Labels never contain it.
const PathSeparator = "/"

// CheckLabel reports an ErrClaimShape if label cannot be part of a
// path. path locates the label's parent.
func CheckLabel(label, path string) error {
	if strings.Contains(label, PathSeparator) {
		return errors.Wrapf(ErrClaimShape, "label %q at %q contains %q", label, path, PathSeparator)
	}
	return nil
}

// ParseClaim decodes a JSON document into a Claim.
// Numbers are kept verbatim.
func ParseClaim(data []byte) (Claim, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var i interface{}
	if err := dec.Decode(&i); err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}
	if dec.More() {
		return nil, errors.Wrap(ErrSerialization, "trailing data after claim")
	}
	return ClaimFromInterface(i)
}

// ClaimFromInterface converts a decoded JSON value (as produced by
// encoding/json, preferably with UseNumber) into a Claim.
func ClaimFromInterface(i interface{}) (Claim, error) {
	return claimFromInterface(i, "")
}

func claimFromInterface(i interface{}, path string) (Claim, error) {
	switch x := i.(type) {
	case Claim:
		return x, nil
	case map[string]interface{}:
		obj := make(Object, len(x))
		for label, child := range x {
			if err := CheckLabel(label, path); err != nil {
				return nil, err
			}
			c, err := claimFromInterface(child, path+label+"/")
			if err != nil {
				return nil, err
			}
			obj[label] = c
		}
		return obj, nil
	}
	if v, ok := scalarFromInterface(i); ok {
		return Scalar{Value: v}, nil
	}
	return nil, errors.Wrapf(ErrClaimShape, "unsupported %T at %q", i, path)
}

// UnmarshalJSON decodes a JSON object into o. A JSON null leaves o
// unchanged.
func (o *Object) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	c, err := ParseClaim(data)
	if err != nil {
		return err
	}
	obj, ok := c.(Object)
	if !ok {
		return errors.Wrap(ErrClaimShape, "claim is not an object")
	}
	*o = obj
	return nil
}
