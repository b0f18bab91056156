package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

// Value variants.
const (
	KindAbsent ValueKind = iota
	KindText
	KindNumber
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return "absent"
	}
}

// Value is the content of one dynamic field on a record: absent, a scalar
// (text or number), or an ordered list of strings for multi-choice fields.
// The zero Value is absent.
type Value struct {
	kind ValueKind
	text string
	num  float64
	list []string
}

// Text returns a text scalar.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric scalar.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// List returns a multi-value holding a copy of items.
func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string{}, items...)}
}

// Kind returns the variant of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsAbsent reports whether v holds nothing at all.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNumber reports whether v is a numeric scalar.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsList reports whether v is a multi-value.
func (v Value) IsList() bool { return v.kind == KindList }

// Num returns the numeric value and whether v is numeric.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Items returns a copy of the list elements; nil for scalars.
func (v Value) Items() []string {
	if v.kind != KindList {
		return nil
	}
	return append([]string{}, v.list...)
}

// IsZero reports whether v counts as "no value": absent, empty text, or an
// empty list. Numeric zero is a value.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindText:
		return v.text == ""
	case KindNumber:
		return false
	case KindList:
		return len(v.list) == 0
	default:
		return true
	}
}

// String returns the canonical string form. Numbers use the shortest
// representation, lists are joined with commas, absent is empty.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return FormatNumber(v.num)
	case KindList:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Strings returns the string forms of the individual values: every element
// of a list, the single scalar, or nothing when absent.
func (v Value) Strings() []string {
	switch v.kind {
	case KindList:
		return append([]string{}, v.list...)
	case KindText, KindNumber:
		return []string{v.String()}
	default:
		return nil
	}
}

// Contains reports whether s equals the string form of v (scalars) or of one
// of its elements (lists).
func (v Value) Contains(s string) bool {
	switch v.kind {
	case KindList:
		for _, item := range v.list {
			if item == s {
				return true
			}
		}
		return false
	case KindText, KindNumber:
		return v.String() == s
	default:
		return false
	}
}

// Equal reports whether v and o hold the same variant and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
	}
	return true
}

// FormatNumber renders n in its shortest decimal form ("4.5", "0", "12").
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// MarshalJSON encodes text as a JSON string, numbers as JSON numbers, lists
// as arrays of strings and absent as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON value without failing on shapes the
// directory does not use: null and objects become absent, booleans become
// text, and array elements are reduced to their string forms.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts a decoded JSON value (or a Go scalar) into a Value.
func FromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case string:
		return Text(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return Text(x.String())
	case bool:
		return Text(strconv.FormatBool(x))
	case []string:
		return List(x...)
	case []any:
		items := make([]string, 0, len(x))
		for _, el := range x {
			if s, ok := scalarString(el); ok {
				items = append(items, s)
			}
		}
		return List(items...)
	default:
		return Value{}
	}
}

// scalarString returns the string form of a JSON scalar. Nulls and nested
// containers report false.
func scalarString(el any) (string, bool) {
	switch x := el.(type) {
	case string:
		return x, true
	case float64:
		return FormatNumber(x), true
	case bool:
		return strconv.FormatBool(x), true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}

// Data maps field IDs to record values. Keys may refer to fields that have
// since been removed from the schema; such orphans are carried along and
// ignored by the listing engine.
type Data map[string]Value

// Get returns the value stored under fieldID, or an absent Value.
func (d Data) Get(fieldID string) Value {
	if d == nil {
		return Value{}
	}
	return d[fieldID]
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	out := make(Data, len(d))
	for k, v := range d {
		if v.kind == KindList {
			v = List(v.list...)
		}
		out[k] = v
	}
	return out
}

// MarshalJSON omits absent values.
func (d Data) MarshalJSON() ([]byte, error) {
	m := make(map[string]Value, len(d))
	for k, v := range d {
		if !v.IsAbsent() {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts any JSON object; a null or non-object payload yields
// an empty map rather than an error so that malformed records degrade to
// "no values".
func (d *Data) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		*d = Data{}
		return nil
	}
	out := make(Data, len(raw))
	for k, v := range raw {
		if !v.IsAbsent() {
			out[k] = v
		}
	}
	*d = out
	return nil
}
