package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category is the tier a listing is published under.
type Category string

// Listing categories.
const (
	CategoryPremium   Category = "Premium"
	CategoryExecutive Category = "Executive"
	CategoryBoutique  Category = "Boutique"
)

// Categories lists the recognized categories.
var Categories = []Category{CategoryPremium, CategoryExecutive, CategoryBoutique}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPremium, CategoryExecutive, CategoryBoutique:
		return true
	}
	return false
}

// Record is one directory listing: fixed core attributes plus the dynamic
// values entered against the schema.
type Record struct {
	ID       string   `json:"id"`
	OwnerID  string   `json:"ownerId"`
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Image    string   `json:"image"`
	Data     Data     `json:"data"`
}

// Value returns the value stored for fieldID, absent when missing.
func (r Record) Value(fieldID string) Value {
	return r.Data.Get(fieldID)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := r
	c.Data = r.Data.Clone()
	return c
}

// Validate checks the core attributes. Dynamic values are checked by Conform.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrRecordNameEmpty
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w %q", ErrCategoryUnknown, r.Category)
	}
	return nil
}

// Conform checks data against the schema and returns a normalized copy in
// which each value has the variant its field type calls for:
//
//   - number fields hold numbers; numeric text is converted
//   - checkbox fields hold lists; a single text value becomes a one-element list
//   - every other field holds a scalar
//
// Choice values must be among the field options and required fields must
// have a value. Keys that no schema field claims are kept as they are.
func Conform(schema []Field, data Data) (Data, error) {
	out := data.Clone()
	if out == nil {
		out = Data{}
	}
	for _, f := range schema {
		v := out.Get(f.ID)
		if v.IsZero() {
			if f.Required {
				return nil, fmt.Errorf("field %s: %w", f.ID, ErrRequiredMissing)
			}
			delete(out, f.ID)
			continue
		}
		nv, err := conformValue(f, v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.ID, err)
		}
		out[f.ID] = nv
	}
	return out, nil
}

// Normalize is the lenient form of Conform used for imported data: every
// value that conforms to its field is converted to the field's variant, and
// values that do not are kept as they are. It never fails.
func Normalize(schema []Field, data Data) Data {
	out := data.Clone()
	if out == nil {
		return Data{}
	}
	for _, f := range schema {
		v := out.Get(f.ID)
		if v.IsZero() {
			continue
		}
		if nv, err := conformValue(f, v); err == nil {
			out[f.ID] = nv
		}
	}
	return out
}

func conformValue(f Field, v Value) (Value, error) {
	switch {
	case f.Type == FieldNumber:
		var n float64
		switch v.Kind() {
		case KindNumber:
			n, _ = v.Num()
		case KindText:
			var err error
			n, err = strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
			if err != nil {
				return Value{}, fmt.Errorf("%w: %q is not a number", ErrValueType, v.String())
			}
		default:
			return Value{}, ErrValueType
		}
		// JSON has no encoding for these, and they break the sort order.
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Value{}, fmt.Errorf("%w: %q is not a finite number", ErrValueType, v.String())
		}
		return Number(n), nil

	case f.Type.IsMultiValue():
		items := v.Strings()
		for _, item := range items {
			if !f.HasOption(item) {
				return Value{}, fmt.Errorf("%w %q", ErrOptionUnknown, item)
			}
		}
		return List(items...), nil

	default:
		if v.IsList() {
			return Value{}, ErrValueType
		}
		if f.Type.IsChoice() && !f.HasOption(v.String()) {
			return Value{}, fmt.Errorf("%w %q", ErrOptionUnknown, v.String())
		}
		return v, nil
	}
}
