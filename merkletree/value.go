package merkletree

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// ValueKind is the type tag of a scalar Value.
type ValueKind uint8

const (
	NullValue ValueKind = iota
	BoolValue
	NumberValue
	StringValue
)

// Value is a scalar claim value: null, a boolean, a number or a string.
// Numbers keep their textual representation so that the canonical form
// of a commitment is reproducible across encoders.
type Value struct {
	kind ValueKind
	b    bool
	n    json.Number
	s    string
}

// Null returns the null value.
func Null() Value { return Value{kind: NullValue} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: BoolValue, b: b} }

// Number returns a numeric value with the given JSON representation.
func Number(n json.Number) Value { return Value{kind: NumberValue, n: n} }

// Int returns a numeric value for i.
func Int(i int64) Value { return Number(json.Number(strconv.FormatInt(i, 10))) }

// String returns a string value.
func String(s string) Value { return Value{kind: StringValue, s: s} }

// Kind returns the type tag of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == NullValue }

// Interface returns v as nil, bool, json.Number or string.
func (v Value) Interface() interface{} {
	switch v.kind {
	case BoolValue:
		return v.b
	case NumberValue:
		return v.n
	case StringValue:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether v and o have the same kind and representation.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NullValue:
		return []byte("null"), nil
	case BoolValue:
		return strconv.AppendBool(nil, v.b), nil
	case NumberValue:
		// json.Number validates the literal
		return json.Marshal(v.n)
	case StringValue:
		return marshalNoEscape(v.s)
	}
	return nil, errors.Errorf("unknown value kind %d", v.kind)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var i interface{}
	if err := dec.Decode(&i); err != nil {
		return errors.Wrap(ErrSerialization, err.Error())
	}
	val, ok := scalarFromInterface(i)
	if !ok {
		return errors.Wrapf(ErrSerialization, "%s is not a scalar", data)
	}
	*v = val
	return nil
}

func scalarFromInterface(i interface{}) (Value, bool) {
	switch x := i.(type) {
	case nil:
		return Null(), true
	case bool:
		return Bool(x), true
	case json.Number:
		return Number(x), true
	case string:
		return String(x), true
	case int:
		return Int(int64(x)), true
	case int64:
		return Int(x), true
	case float64:
		return Number(json.Number(strconv.FormatFloat(x, 'f', -1, 64))), true
	case Value:
		return x, true
	}
	return Value{}, false
}
