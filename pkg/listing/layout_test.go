package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

func pageNames(pages []Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Name
	}
	return out
}

func groupNames(p Page) []string {
	out := make([]string, len(p.Groups))
	for i, g := range p.Groups {
		out[i] = g.Name
	}
	return out
}

func TestBuildPagesFollowsFirstAppearance(t *testing.T) {
	schema := []types.Field{
		{ID: "a", Name: "A", Type: types.FieldText, Page: "Basic"},
		{ID: "b", Name: "B", Type: types.FieldText, Page: "Advanced"},
	}
	pages := BuildPages(schema)
	assert.Equal(t, []string{"Basic", "Advanced"}, pageNames(pages))
}

func TestBuildPagesWithoutPageAssignments(t *testing.T) {
	pages := BuildPages(demoSchema())
	require.Len(t, pages, 1)
	assert.Equal(t, SinglePageName, pages[0].Name)
	assert.Equal(t, []string{"Location Details", "Performance", "Features"}, groupNames(pages[0]))
}

func TestBuildPagesBlankPageIsUnset(t *testing.T) {
	schema := []types.Field{
		{ID: "a", Name: "A", Type: types.FieldText, Page: "   "},
	}
	pages := BuildPages(schema)
	require.Len(t, pages, 1)
	assert.Equal(t, SinglePageName, pages[0].Name)
}

func TestBuildPagesFallbackPageAndPerPageGroups(t *testing.T) {
	schema := []types.Field{
		{ID: "a", Name: "A", Type: types.FieldText},
		{ID: "b", Name: "B", Type: types.FieldText, Page: "Details", Group: "Beta"},
		{ID: "c", Name: "C", Type: types.FieldText, Page: "Details", Group: "Alpha"},
		{ID: "d", Name: "D", Type: types.FieldText, Group: "Alpha"},
		{ID: "e", Name: "E", Type: types.FieldText, Page: " Details ", Group: "Beta"},
	}

	pages := BuildPages(schema)
	require.Len(t, pages, 2)
	assert.Equal(t, []string{types.DefaultPageName, "Details"}, pageNames(pages))

	assert.Equal(t, []string{types.DefaultGroupName, "Alpha"}, groupNames(pages[0]),
		"group order is per page")
	assert.Equal(t, []string{"Beta", "Alpha"}, groupNames(pages[1]))

	beta := pages[1].Groups[0]
	assert.Equal(t, "b", beta.Fields[0].ID)
	assert.Equal(t, "e", beta.Fields[1].ID)
	assert.Equal(t, 3, pages[1].FieldCount())
}

func TestBuildPagesReorderingChangesOrder(t *testing.T) {
	schema := []types.Field{
		{ID: "b", Name: "B", Type: types.FieldText, Page: "Advanced"},
		{ID: "a", Name: "A", Type: types.FieldText, Page: "Basic"},
	}
	assert.Equal(t, []string{"Advanced", "Basic"}, pageNames(BuildPages(schema)))
}

func TestBuildPagesEmptySchema(t *testing.T) {
	pages := BuildPages(nil)
	require.Len(t, pages, 1)
	assert.Equal(t, SinglePageName, pages[0].Name)
	assert.Empty(t, pages[0].Groups)
}

func TestWizard(t *testing.T) {
	schema := []types.Field{
		{ID: "a", Name: "A", Type: types.FieldText, Page: "One"},
		{ID: "b", Name: "B", Type: types.FieldText, Page: "Two"},
		{ID: "c", Name: "C", Type: types.FieldText, Page: "Three"},
	}
	w := NewWizard(schema)

	assert.True(t, w.IsMultiPage())
	assert.True(t, w.IsFirst())
	assert.False(t, w.CanSubmit(), "cannot submit before the last page")
	assert.False(t, w.Previous())

	assert.True(t, w.Next())
	assert.Equal(t, "Two", w.Current().Name)
	assert.True(t, w.Next())
	assert.True(t, w.IsLast())
	assert.True(t, w.CanSubmit())
	assert.False(t, w.Next())
	assert.Equal(t, 2, w.Index())

	assert.True(t, w.Previous())
	assert.Equal(t, "Two", w.Current().Name)
}

func TestWizardSinglePageSubmits(t *testing.T) {
	w := NewWizard(demoSchema())
	assert.False(t, w.IsMultiPage())
	assert.True(t, w.CanSubmit())
	assert.Len(t, w.Pages(), 1)
}
