package listing

import (
	"sort"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Facet is a schema field together with the distinct values observed for it
// across a record collection.
type Facet struct {
	Field           types.Field `json:"field"`
	AvailableValues []string    `json:"availableValues"`
}

// ExtractFacets returns one facet per navigable field followed by one per
// field that is filterable but not navigable, each in schema order.
func ExtractFacets(schema []types.Field, records []types.Record) []Facet {
	facets := NavigableFacets(schema, records)
	return append(facets, FilterableFacets(schema, records)...)
}

// NavigableFacets returns the facets of the fields promoted to the sidebar.
func NavigableFacets(schema []types.Field, records []types.Record) []Facet {
	return collectFacets(schema, records, func(f types.Field) bool {
		return f.Navigable
	})
}

// FilterableFacets returns the facets of secondary filter fields. Fields that
// are also navigable are left out so they are not offered twice.
func FilterableFacets(schema []types.Field, records []types.Record) []Facet {
	return collectFacets(schema, records, func(f types.Field) bool {
		return f.Filterable && !f.Navigable
	})
}

func collectFacets(schema []types.Field, records []types.Record, include func(types.Field) bool) []Facet {
	facets := []Facet{}
	for _, f := range schema {
		if !include(f) {
			continue
		}
		facets = append(facets, Facet{
			Field:           f.Clone(),
			AvailableValues: DistinctValues(records, f.ID),
		})
	}
	return facets
}

// DistinctValues returns the sorted set of string forms stored under fieldID.
// List values contribute each non-empty element; scalars contribute their
// string form unless they are "no value". Numbers sort by their string form.
func DistinctValues(records []types.Record, fieldID string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		v := r.Value(fieldID)
		if v.IsZero() {
			continue
		}
		for _, s := range v.Strings() {
			if s == "" {
				continue
			}
			seen[s] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for s := range seen {
		values = append(values, s)
	}
	sort.Strings(values)
	return values
}
