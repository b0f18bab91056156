package listing

import "github.com/mesh-intelligence/luxedir/pkg/types"

// SinglePageName names the only page of a schema without page assignments.
const SinglePageName = "default"

// Group is a named run of fields shown together on a form page.
type Group struct {
	Name   string        `json:"name"`
	Fields []types.Field `json:"fields"`
}

// Page is one step of the record entry form.
type Page struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// FieldCount returns the number of fields on the page.
func (p Page) FieldCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Fields)
	}
	return n
}

// BuildPages partitions the schema into form pages made of groups, in a
// single left-to-right scan. Page and group order follow first appearance;
// groups are ordered per page.
//
// When no field names a page the result is one page called SinglePageName.
// Otherwise fields without a page land on types.DefaultPageName.
func BuildPages(schema []types.Field) []Page {
	paged := false
	for _, f := range schema {
		if f.PageName() != "" {
			paged = true
			break
		}
	}

	if !paged {
		return []Page{{Name: SinglePageName, Groups: groupFields(schema)}}
	}

	var order []string
	byPage := make(map[string][]types.Field)
	for _, f := range schema {
		name := f.PageName()
		if name == "" {
			name = types.DefaultPageName
		}
		if _, ok := byPage[name]; !ok {
			order = append(order, name)
		}
		byPage[name] = append(byPage[name], f)
	}

	pages := make([]Page, 0, len(order))
	for _, name := range order {
		groups := groupFields(byPage[name])
		if len(groups) == 0 {
			continue
		}
		pages = append(pages, Page{Name: name, Groups: groups})
	}
	return pages
}

// groupFields buckets fields by group name in first-seen order.
func groupFields(fields []types.Field) []Group {
	groups := []Group{}
	index := make(map[string]int)
	for _, f := range fields {
		name := f.GroupName()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Fields = append(groups[i].Fields, f.Clone())
	}
	return groups
}

// Wizard walks the pages of a multi-step entry form.
type Wizard struct {
	pages []Page
	index int
}

// NewWizard starts a wizard on the first page of the schema's layout.
func NewWizard(schema []types.Field) *Wizard {
	return &Wizard{pages: BuildPages(schema)}
}

// Pages returns the layout the wizard walks.
func (w *Wizard) Pages() []Page { return w.pages }

// Index returns the zero-based position of the current page.
func (w *Wizard) Index() int { return w.index }

// Current returns the current page.
func (w *Wizard) Current() Page { return w.pages[w.index] }

// IsMultiPage reports whether the form has more than one page.
func (w *Wizard) IsMultiPage() bool { return len(w.pages) > 1 }

// IsFirst reports whether the current page is the first one.
func (w *Wizard) IsFirst() bool { return w.index == 0 }

// IsLast reports whether the current page is the last one.
func (w *Wizard) IsLast() bool { return w.index == len(w.pages)-1 }

// Next moves forward one page and reports whether it moved.
func (w *Wizard) Next() bool {
	if w.IsLast() {
		return false
	}
	w.index++
	return true
}

// Previous moves back one page and reports whether it moved.
func (w *Wizard) Previous() bool {
	if w.IsFirst() {
		return false
	}
	w.index--
	return true
}

// CanSubmit reports whether submitting now should create the record. A
// multi-page form only submits from its last page.
func (w *Wizard) CanSubmit() bool {
	return !w.IsMultiPage() || w.IsLast()
}
