// Package model defines the data structures for CD1 to CD2 conversion.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the shape of a Value.
type Kind int

const (
	// KindNull represents a JSON null.
	KindNull Kind = iota
	// KindBool represents a boolean scalar.
	KindBool
	// KindNumber represents a numeric scalar.
	KindNumber
	// KindString represents a string scalar.
	KindString
	// KindArray represents an ordered sequence of values.
	KindArray
	// KindObject represents an ordered mapping of field name to value.
	KindObject
)

// Value is a tagged variant able to hold arbitrary nested document data.
// Object fields keep their insertion order and numbers keep their source
// literal, so a decoded document re-serializes deterministically and
// without precision drift.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  []Field
}

// Field is a single named entry of an object Value.
type Field struct {
	Name  string
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric value holding the given literal.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, num: n}
}

// NumberFromFloat returns a numeric value rendered with the shortest
// literal that round-trips the float (integers stay integers).
func NumberFromFloat(f float64) Value {
	return Number(json.Number(strconv.FormatFloat(f, 'f', -1, 64)))
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array value over the given elements.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Object returns an empty object value.
func Object() Value {
	return Value{kind: KindObject}
}

// Kind reports the shape tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// BoolVal returns the boolean payload. Only meaningful for KindBool.
func (v Value) BoolVal() bool {
	return v.b
}

// NumberVal returns the numeric literal. Only meaningful for KindNumber.
func (v Value) NumberVal() json.Number {
	return v.num
}

// StringVal returns the string payload. Only meaningful for KindString.
func (v Value) StringVal() string {
	return v.str
}

// Float converts a numeric value to float64. Shape mismatches fail loudly
// so transforms never operate on duck-typed data.
func (v Value) Float() (float64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("%w: expected a number, got %s", ErrMalformedInput, v.kind.name())
	}

	f, err := v.num.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number literal %q", ErrMalformedInput, string(v.num))
	}

	return f, nil
}

// Elems returns the elements of an array value.
func (v Value) Elems() []Value {
	return v.arr
}

// Fields returns the ordered fields of an object value.
func (v Value) Fields() []Field {
	return v.obj
}

// Get looks up a field of an object value by name.
func (v Value) Get(name string) (Value, bool) {
	for _, f := range v.obj {
		if f.Name == name {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Has reports whether an object value carries the named field.
func (v Value) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// GetPath resolves a nested field path on an object value.
func (v Value) GetPath(path ...string) (Value, bool) {
	current := v
	for _, name := range path {
		next, ok := current.Get(name)
		if !ok {
			return Value{}, false
		}

		current = next
	}

	return current, true
}

// Set writes a field on an object value, replacing an existing entry or
// appending a new one. Insertion order is the serialization order.
func (v *Value) Set(name string, val Value) {
	v.kind = KindObject

	for i := range v.obj {
		if v.obj[i].Name == name {
			v.obj[i].Value = val
			return
		}
	}

	v.obj = append(v.obj, Field{Name: name, Value: val})
}

// SetPath writes a nested field, creating intermediate objects as needed.
func (v *Value) SetPath(path []string, val Value) {
	if len(path) == 1 {
		v.Set(path[0], val)
		return
	}

	v.kind = KindObject

	for i := range v.obj {
		if v.obj[i].Name == path[0] {
			v.obj[i].Value.SetPath(path[1:], val)
			return
		}
	}

	child := Object()
	child.SetPath(path[1:], val)
	v.obj = append(v.obj, Field{Name: path[0], Value: child})
}

// WithPath returns a copy of the value with one nested field replaced.
// Only the spine along the path is copied; siblings are shared, which is
// safe because values are never mutated after assembly.
func (v Value) WithPath(path []string, val Value) Value {
	if len(path) == 0 {
		return val
	}

	out := v
	out.obj = make([]Field, len(v.obj))
	copy(out.obj, v.obj)

	for i := range out.obj {
		if out.obj[i].Name == path[0] {
			out.obj[i].Value = out.obj[i].Value.WithPath(path[1:], val)
			return out
		}
	}

	child := Object()
	child.SetPath(path, val)
	out.obj = append(out.obj, Field{Name: path[0], Value: child})

	return out
}

func (k Kind) name() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}

	return "unknown"
}

// Decode parses JSON text into a Value. It walks the token stream directly
// instead of unmarshalling into maps so field order and number literals
// survive the round trip.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if dec.More() {
		return Value{}, fmt.Errorf("%w: trailing data after document", ErrMalformedInput)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case nil:
		return Null(), nil
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Object()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		obj.Set(key, val)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	var elems []Value

	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		elems = append(elems, val)
	}

	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}

	return Array(elems...), nil
}
