package listing

import (
	"net/url"
	"strings"
	"time"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Form keys that carry core record attributes rather than schema values.
const (
	FormKeyName     = "name"
	FormKeyAddress  = "address"
	FormKeyCategory = "category"
	FormKeyImage    = "image"
)

// RecordInput is a submitted entry form split into core attributes and
// dynamic field values.
type RecordInput struct {
	Name     string
	Address  string
	Category types.Category
	Image    string
	Data     types.Data
}

// DecodeForm splits submitted form values into a RecordInput. Keys submitted
// more than once (checkbox groups) become lists; single keys become text.
// Empty date fields configured to default to today receive now's date.
// Values are not checked against the schema here; types.Conform does that
// when the record is written.
func DecodeForm(schema []types.Field, form url.Values, now time.Time) RecordInput {
	in := RecordInput{
		Name:     strings.TrimSpace(form.Get(FormKeyName)),
		Address:  strings.TrimSpace(form.Get(FormKeyAddress)),
		Category: types.Category(strings.TrimSpace(form.Get(FormKeyCategory))),
		Image:    strings.TrimSpace(form.Get(FormKeyImage)),
		Data:     types.Data{},
	}

	for key, values := range form {
		switch key {
		case FormKeyName, FormKeyAddress, FormKeyCategory, FormKeyImage:
			continue
		}
		switch len(values) {
		case 0:
		case 1:
			in.Data[key] = types.Text(values[0])
		default:
			in.Data[key] = types.List(values...)
		}
	}

	for _, f := range schema {
		if f.Type != types.FieldDate || f.DateConfig == nil || !f.DateConfig.DefaultToToday {
			continue
		}
		if in.Data.Get(f.ID).IsZero() {
			in.Data[f.ID] = types.Text(DefaultDate(f, now))
		}
	}
	return in
}

// DefaultDate returns the input value a date field pre-fills with: now's
// date, plus the time of day when the field includes time.
func DefaultDate(f types.Field, now time.Time) string {
	if f.DateConfig != nil && f.DateConfig.IncludeTime {
		return now.Format("2006-01-02T15:04")
	}
	return now.Format("2006-01-02")
}

// EncodeForm is the inverse of DecodeForm: it renders a record as form
// values so an edit form can be pre-filled. Only schema fields are encoded;
// orphaned keys stay with the record and never pass through the form.
func EncodeForm(schema []types.Field, r types.Record) url.Values {
	form := url.Values{}
	form.Set(FormKeyName, r.Name)
	form.Set(FormKeyAddress, r.Address)
	form.Set(FormKeyCategory, string(r.Category))
	form.Set(FormKeyImage, r.Image)
	for _, f := range schema {
		v := r.Value(f.ID)
		if v.IsZero() {
			continue
		}
		form[f.ID] = v.Strings()
	}
	return form
}
