package listing

import "github.com/mesh-intelligence/luxedir/pkg/types"

// Card preview limits.
const (
	gridCardFields = 10
	listCardFields = 3
	cardListItems  = 3
)

// CardField is one schema value shown on a listing card. Multi-values carry
// at most three Items and count the rest in Overflow.
type CardField struct {
	FieldID  string   `json:"fieldId"`
	Name     string   `json:"name"`
	Value    string   `json:"value,omitempty"`
	Items    []string `json:"items,omitempty"`
	Overflow int      `json:"overflow,omitempty"`
}

// CardFields returns the display-in-listing fields that have a value on the
// record, in schema order. The grid layout shows up to ten, the list layout
// up to three.
func CardFields(schema []types.Field, record types.Record, layout types.Layout) []CardField {
	limit := gridCardFields
	if layout == types.LayoutList {
		limit = listCardFields
	}

	var out []CardField
	for _, f := range schema {
		if len(out) == limit {
			break
		}
		if !f.DisplayInListing {
			continue
		}
		v := record.Value(f.ID)
		if v.IsZero() {
			continue
		}
		cf := CardField{FieldID: f.ID, Name: f.Name}
		if v.IsList() {
			items := v.Items()
			if len(items) > cardListItems {
				cf.Overflow = len(items) - cardListItems
				items = items[:cardListItems]
			}
			cf.Items = items
		} else {
			cf.Value = v.String()
		}
		out = append(out, cf)
	}
	return out
}
