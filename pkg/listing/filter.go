package listing

import (
	"sort"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Selection maps field IDs to the values chosen for them. Values within a
// field are alternatives (OR); fields are combined with AND. A field with no
// values places no constraint.
//
// Selections are values: Toggle and Clear return new selections and leave the
// receiver untouched.
type Selection map[string][]string

// Toggle adds value to the field's choices, or removes it when already
// chosen. Removing the last value drops the field from the selection.
func (s Selection) Toggle(fieldID, value string) Selection {
	out := s.clone()
	existing := out[fieldID]
	for i, v := range existing {
		if v == value {
			rest := append(append([]string{}, existing[:i]...), existing[i+1:]...)
			if len(rest) == 0 {
				delete(out, fieldID)
			} else {
				out[fieldID] = rest
			}
			return out
		}
	}
	out[fieldID] = append(append([]string{}, existing...), value)
	return out
}

// Clear returns an empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// IsSelected reports whether value is chosen for fieldID.
func (s Selection) IsSelected(fieldID, value string) bool {
	for _, v := range s[fieldID] {
		if v == value {
			return true
		}
	}
	return false
}

// Active returns the IDs of fields with at least one chosen value, sorted.
func (s Selection) Active() []string {
	ids := make([]string, 0, len(s))
	for id, values := range s {
		if len(values) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// IsEmpty reports whether the selection constrains nothing.
func (s Selection) IsEmpty() bool {
	return len(s.Active()) == 0
}

func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = append([]string{}, v...)
	}
	return out
}

// Matches reports whether record satisfies every active constraint in sel.
// A list value satisfies a constraint when any chosen value is one of its
// elements; a scalar when its string form is chosen. A record without a
// value for a constrained field never matches.
func Matches(record types.Record, sel Selection) bool {
	for fieldID, chosen := range sel {
		if len(chosen) == 0 {
			continue
		}
		if !matchesField(record.Value(fieldID), chosen) {
			return false
		}
	}
	return true
}

func matchesField(v types.Value, chosen []string) bool {
	if v.IsAbsent() {
		return false
	}
	for _, c := range chosen {
		if v.Contains(c) {
			return true
		}
	}
	return false
}

// Filter returns the records that match sel, in input order.
func Filter(records []types.Record, sel Selection) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, sel) {
			out = append(out, r)
		}
	}
	return out
}
