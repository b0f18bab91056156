package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func TestSelectingStateReturnsRecordsContainingIt(t *testing.T) {
	records := stateRecords()
	sel := Selection{}.Toggle("State_01", "Gujarat")

	assert.Equal(t, []string{"r1", "r3"}, ids(Filter(records, sel)))
}

func TestEmptySelectionMatchesEverything(t *testing.T) {
	for _, r := range manyRecords(20) {
		assert.True(t, Matches(r, Selection{}))
		assert.True(t, Matches(r, nil))
		assert.True(t, Matches(r, Selection{"State_01": {}}), "a field with no values is no constraint")
	}
}

func TestMatchesSemantics(t *testing.T) {
	r := rec("x", types.Data{
		"State_01":  types.List("Gujarat", "Rajasthan"),
		"Rating_01": types.Number(4.5),
		"Tier_01":   types.Text("Gold"),
	})

	tests := []struct {
		name string
		sel  Selection
		want bool
	}{
		{"list membership", Selection{"State_01": {"Rajasthan"}}, true},
		{"or within field", Selection{"State_01": {"Goa", "Gujarat"}}, true},
		{"list miss", Selection{"State_01": {"Goa"}}, false},
		{"scalar text", Selection{"Tier_01": {"Gold"}}, true},
		{"scalar number by string form", Selection{"Rating_01": {"4.5"}}, true},
		{"scalar number miss", Selection{"Rating_01": {"4.50"}}, false},
		{"and across fields", Selection{"State_01": {"Gujarat"}, "Tier_01": {"Gold"}}, true},
		{"and across fields fails", Selection{"State_01": {"Gujarat"}, "Tier_01": {"Silver"}}, false},
		{"absent field excluded", Selection{"Amenities_01": {"Wifi"}}, false},
		{"unknown field excluded", Selection{"Nope_99": {"x"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(r, tt.sel))
		})
	}
}

func TestToggleTwiceRestoresSelection(t *testing.T) {
	base := Selection{}.Toggle("State_01", "Gujarat")
	pairs := [][2]string{
		{"State_01", "Gujarat"},
		{"State_01", "Maharashtra"},
		{"Amenities_01", "Wifi"},
	}

	records := manyRecords(40)
	for _, p := range pairs {
		round := base.Toggle(p[0], p[1]).Toggle(p[0], p[1])
		for _, r := range records {
			assert.Equal(t, Matches(r, base), Matches(r, round), "%v on %s", p, r.ID)
		}
	}
}

func TestToggleIsCopyOnWrite(t *testing.T) {
	s1 := Selection{}.Toggle("State_01", "Gujarat")
	s2 := s1.Toggle("State_01", "Maharashtra")
	s3 := s2.Toggle("State_01", "Gujarat")

	assert.Equal(t, []string{"Gujarat"}, s1["State_01"])
	assert.Equal(t, []string{"Gujarat", "Maharashtra"}, s2["State_01"])
	assert.Equal(t, []string{"Maharashtra"}, s3["State_01"])

	s4 := s3.Toggle("State_01", "Maharashtra")
	_, present := s4["State_01"]
	assert.False(t, present, "removing the last value drops the field")
	assert.True(t, s4.IsEmpty())
}

func TestSelectionHelpers(t *testing.T) {
	s := Selection{"b": {"1"}, "a": {"2"}, "c": {}}
	assert.Equal(t, []string{"a", "b"}, s.Active())
	assert.True(t, s.IsSelected("b", "1"))
	assert.False(t, s.IsSelected("b", "2"))
	assert.Empty(t, s.Clear())
	assert.Len(t, s, 3, "Clear does not touch the receiver")
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := stateRecords()
	_ = Filter(records, Selection{"State_01": {"Gujarat"}})
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(records))
}
