package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func TestCardFields(t *testing.T) {
	schema := []types.Field{
		{ID: "Amenities_01", Name: "Amenities", Type: types.FieldChoiceCheckbox, DisplayInListing: true},
		{ID: "Rating_01", Name: "Rating", Type: types.FieldNumber, DisplayInListing: true},
		{ID: "Hidden_01", Name: "Hidden", Type: types.FieldText},
		{ID: "Empty_01", Name: "Empty", Type: types.FieldText, DisplayInListing: true},
	}
	r := rec("a", types.Data{
		"Amenities_01": types.List("Wifi", "Pool", "Gym", "Valet", "Parking"),
		"Rating_01":    types.Number(4.5),
		"Hidden_01":    types.Text("secret"),
	})

	got := CardFields(schema, r, types.LayoutGrid)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Wifi", "Pool", "Gym"}, got[0].Items)
	assert.Equal(t, 2, got[0].Overflow)
	assert.Equal(t, "4.5", got[1].Value)
}

func TestCardFieldsLayoutLimits(t *testing.T) {
	var schema []types.Field
	data := types.Data{}
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("f%02d", i)
		schema = append(schema, types.Field{ID: id, Name: id, Type: types.FieldText, DisplayInListing: true})
		data[id] = types.Text("v")
	}
	r := rec("a", data)

	assert.Len(t, CardFields(schema, r, types.LayoutGrid), 10)
	assert.Len(t, CardFields(schema, r, types.LayoutList), 3)
}
