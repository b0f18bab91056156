package listing

import "github.com/mesh-intelligence/luxedir/pkg/types"

// Query is what a browsing user has chosen: filter values and a sort.
type Query struct {
	Selection Selection `json:"selection,omitempty"`
	Sort      SortState `json:"sort"`
}

// Result is a computed listing page.
type Result struct {
	Records        []types.Record `json:"records"`
	Facets         []Facet        `json:"facets"`
	SortableFields []types.Field  `json:"sortableFields"`
	Sort           SortState      `json:"sort"`
	Total          int            `json:"total"`
	Count          int            `json:"count"`
}

// Apply computes the listing for q. Facets are always drawn from the full
// record collection so that choosing a value never hides its siblings.
//
// A selection on a field ID the schema does not define matches no record,
// even when stale data under that ID is still present on some records.
func Apply(schema []types.Field, records []types.Record, q Query) Result {
	visible := []types.Record{}
	if !selectsUnknownField(schema, q.Selection) {
		visible = Sort(Filter(records, q.Selection), q.Sort)
	}
	sortable := SortableFields(schema)
	if sortable == nil {
		sortable = []types.Field{}
	}
	return Result{
		Records:        visible,
		Facets:         ExtractFacets(schema, records),
		SortableFields: sortable,
		Sort:           q.Sort,
		Total:          len(records),
		Count:          len(visible),
	}
}

func selectsUnknownField(schema []types.Field, sel Selection) bool {
	if len(sel) == 0 {
		return false
	}
	known := types.IndexFields(schema)
	for _, id := range sel.Active() {
		if _, ok := known[id]; !ok {
			return true
		}
	}
	return false
}
