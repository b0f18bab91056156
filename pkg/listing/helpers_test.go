package listing

import (
	"fmt"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func demoSchema() []types.Field {
	return []types.Field{
		{ID: "State_01", Name: "State", Type: types.FieldChoiceCheckbox, Navigable: true, Filterable: true,
			Options: []string{"Gujarat", "Maharashtra", "Rajasthan"}, Group: "Location Details"},
		{ID: "Rating_01", Name: "Rating", Type: types.FieldNumber, Sortable: true, Group: "Performance"},
		{ID: "Amenities_01", Name: "Amenities", Type: types.FieldChoiceCheckbox, Filterable: true,
			Options: []string{"Wifi", "Parking", "Pool", "Gym", "Valet"}, Group: "Features"},
	}
}

func rec(id string, data types.Data) types.Record {
	return types.Record{
		ID:       id,
		OwnerID:  "owner-1",
		Category: types.CategoryBoutique,
		Name:     "Listing " + id,
		Data:     data,
	}
}

func ids(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// stateRecords returns three records over two states.
func stateRecords() []types.Record {
	return []types.Record{
		rec("r1", types.Data{"State_01": types.List("Gujarat"), "Rating_01": types.Number(4.5)}),
		rec("r2", types.Data{"State_01": types.List("Maharashtra"), "Rating_01": types.Number(4.1)}),
		rec("r3", types.Data{"State_01": types.List("Gujarat", "Maharashtra"), "Rating_01": types.Number(4.9)}),
	}
}

// manyRecords builds n deterministic records in the shape of the demo data.
func manyRecords(n int) []types.Record {
	states := []string{"Gujarat", "Maharashtra", "Rajasthan"}
	amenities := []string{"Valet", "Wifi", "Pool", "Gym", "Parking"}
	out := make([]types.Record, 0, n)
	for i := 1; i <= n; i++ {
		var picked []string
		for j, a := range amenities {
			if (i+j)%3 == 0 {
				picked = append(picked, a)
			}
		}
		out = append(out, rec(fmt.Sprintf("record-%d", i), types.Data{
			"State_01":     types.List(states[i%len(states)]),
			"Rating_01":    types.Number(4.0 + float64(i%10)/10),
			"Amenities_01": types.List(picked...),
		}))
	}
	return out
}
