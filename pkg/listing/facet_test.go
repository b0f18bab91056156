package listing

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func TestExtractFacetsOrderAndPartition(t *testing.T) {
	facets := ExtractFacets(demoSchema(), stateRecords())

	require.Len(t, facets, 2)
	assert.Equal(t, "State_01", facets[0].Field.ID, "navigable fields come first")
	assert.Equal(t, "Amenities_01", facets[1].Field.ID)

	assert.Equal(t, []string{"Gujarat", "Maharashtra"}, facets[0].AvailableValues)
	assert.Empty(t, facets[1].AvailableValues, "a facet without observed values is still listed")
	assert.NotNil(t, facets[1].AvailableValues)
}

func TestNavigableFieldIsNotDuplicatedAsFilterable(t *testing.T) {
	schema := demoSchema()
	nav := NavigableFacets(schema, nil)
	filt := FilterableFacets(schema, nil)

	require.Len(t, nav, 1)
	require.Len(t, filt, 1)
	assert.Equal(t, "State_01", nav[0].Field.ID)
	assert.Equal(t, "Amenities_01", filt[0].Field.ID)
}

func TestDistinctValues(t *testing.T) {
	records := []types.Record{
		rec("a", types.Data{"f": types.Text("beta")}),
		rec("b", types.Data{"f": types.List("alpha", "", "beta")}),
		rec("c", types.Data{"f": types.Text("")}),
		rec("d", types.Data{"f": types.Number(0)}),
		rec("e", types.Data{"f": types.Number(10)}),
		rec("f", types.Data{"f": types.Number(9)}),
		rec("g", types.Data{}),
		rec("h", types.Data{"other": types.Text("x")}),
	}

	got := DistinctValues(records, "f")
	assert.Equal(t, []string{"0", "10", "9", "alpha", "beta"}, got,
		"numbers sort by string form, zero counts, empty text does not")
}

func TestDistinctValuesOrderIndependent(t *testing.T) {
	records := manyRecords(30)
	forward := DistinctValues(records, "Amenities_01")

	reversed := make([]types.Record, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	assert.Equal(t, forward, DistinctValues(reversed, "Amenities_01"))
}

func TestFacetValuesComeFromRecordsSortedAndUnique(t *testing.T) {
	records := manyRecords(100)
	observed := map[string]bool{}
	for _, r := range records {
		for _, id := range []string{"State_01", "Amenities_01"} {
			for _, s := range r.Value(id).Strings() {
				observed[s] = true
			}
		}
	}

	for _, f := range ExtractFacets(demoSchema(), records) {
		assert.True(t, sort.StringsAreSorted(f.AvailableValues), f.Field.ID)
		seen := map[string]bool{}
		for _, v := range f.AvailableValues {
			assert.True(t, observed[v], "value %q was not fabricated", v)
			assert.False(t, seen[v], "value %q appears once", v)
			seen[v] = true
		}
	}
}

func TestExtractFacetsIgnoresOrphanedData(t *testing.T) {
	records := []types.Record{
		rec("a", types.Data{"Removed_01": types.Text("stale"), "State_01": types.List("Rajasthan")}),
	}
	facets := ExtractFacets(demoSchema(), records)
	for _, f := range facets {
		assert.NotContains(t, f.AvailableValues, "stale")
	}
}

func TestExtractFacetsDoesNotAliasSchema(t *testing.T) {
	schema := demoSchema()
	facets := ExtractFacets(schema, nil)
	facets[0].Field.Options[0] = "Changed"
	assert.Equal(t, "Gujarat", schema[0].Options[0])
}
