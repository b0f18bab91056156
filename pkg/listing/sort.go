package listing

import (
	"slices"
	"strings"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Direction is a sort order.
type Direction string

// Sort directions. Descending is where a freshly chosen sort field starts.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps "asc" to Ascending and anything else to Descending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Ascending)) {
		return Ascending
	}
	return Descending
}

// SortState is the active sort. The zero value means no sorting: records
// keep their input order.
type SortState struct {
	FieldID   string    `json:"fieldId,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// IsActive reports whether a sort field is chosen.
func (s SortState) IsActive() bool {
	return s.FieldID != ""
}

// Toggle advances the sort for fieldID: a field that is not active starts
// descending, an active descending field turns ascending, and an active
// ascending field clears the sort.
func (s SortState) Toggle(fieldID string) SortState {
	if s.FieldID != fieldID {
		return SortState{FieldID: fieldID, Direction: Descending}
	}
	if s.Direction == Descending {
		return SortState{FieldID: fieldID, Direction: Ascending}
	}
	return SortState{}
}

// Compare orders a and b by the value stored under fieldID and returns -1,
// 0 or 1. Ascending order places numbers first, in numeric order, followed
// by every other value compared by string form; a missing value compares as
// empty text. Descending reverses the result.
func Compare(a, b types.Record, fieldID string, dir Direction) int {
	c := compareValues(a.Value(fieldID), b.Value(fieldID))
	if dir == Descending {
		return -c
	}
	return c
}

func compareValues(a, b types.Value) int {
	an, aNum := a.Num()
	bn, bNum := b.Num()
	switch {
	case aNum && bNum:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a.String(), b.String())
}

// Sort returns a stably sorted copy of records. Records whose values compare
// equal keep their relative input order. An inactive state returns a copy in
// input order.
func Sort(records []types.Record, state SortState) []types.Record {
	out := slices.Clone(records)
	if !state.IsActive() {
		return out
	}
	dir := state.Direction
	if dir == "" {
		dir = Descending
	}
	slices.SortStableFunc(out, func(a, b types.Record) int {
		return Compare(a, b, state.FieldID, dir)
	})
	return out
}

// SortableFields returns the fields exposed as sort controls.
func SortableFields(schema []types.Field) []types.Field {
	var out []types.Field
	for _, f := range schema {
		if f.Sortable {
			out = append(out, f.Clone())
		}
	}
	return out
}
