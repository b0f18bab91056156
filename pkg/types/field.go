package types

import (
	"fmt"
	"strings"
	"time"
)

// FieldType is the closed set of input types a schema field can take.
type FieldType string

// Field types offered by the schema builder.
const (
	FieldText           FieldType = "text"
	FieldTextarea       FieldType = "textarea"
	FieldRichText       FieldType = "rich-text"
	FieldNumber         FieldType = "number"
	FieldDate           FieldType = "date"
	FieldChoiceSelect   FieldType = "choice-select"
	FieldChoiceRadio    FieldType = "choice-radio"
	FieldChoiceCheckbox FieldType = "choice-checkbox"
	FieldFile           FieldType = "file"
	FieldAddress        FieldType = "address"
)

// fieldTypeLabels maps each field type to the label shown in the schema builder.
var fieldTypeLabels = map[FieldType]string{
	FieldText:           "Text (Single Line)",
	FieldTextarea:       "Text (Multiple Lines)",
	FieldRichText:       "Rich Text (WYSIWYG)",
	FieldNumber:         "Number",
	FieldChoiceSelect:   "Choice (Dropdown)",
	FieldChoiceRadio:    "Choice (Radio)",
	FieldChoiceCheckbox: "Choice (Checkbox)",
	FieldDate:           "Date",
	FieldFile:           "File Upload",
	FieldAddress:        "Address / Map",
}

// FieldTypes lists every field type in schema-builder order.
var FieldTypes = []FieldType{
	FieldText,
	FieldTextarea,
	FieldRichText,
	FieldNumber,
	FieldChoiceSelect,
	FieldChoiceRadio,
	FieldChoiceCheckbox,
	FieldDate,
	FieldFile,
	FieldAddress,
}

// Valid reports whether t is a recognized field type.
func (t FieldType) Valid() bool {
	_, ok := fieldTypeLabels[t]
	return ok
}

// Label returns the human-readable name of the field type.
func (t FieldType) Label() string {
	if l, ok := fieldTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// IsChoice reports whether values of this type come from an option list.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldChoiceSelect, FieldChoiceRadio, FieldChoiceCheckbox:
		return true
	}
	return false
}

// IsMultiValue reports whether this type stores a list of values.
func (t FieldType) IsMultiValue() bool {
	return t == FieldChoiceCheckbox
}

// Date display formats.
const (
	DateFormatISO = "YYYY-MM-DD"
	DateFormatUS  = "MM/DD/YYYY"
	DateFormatEU  = "DD/MM/YYYY"
)

var dateLayouts = map[string]string{
	DateFormatISO: "2006-01-02",
	DateFormatUS:  "01/02/2006",
	DateFormatEU:  "02/01/2006",
}

// DateConfig holds the settings of a date field.
type DateConfig struct {
	IncludeTime    bool   `json:"includeTime,omitempty"`
	DefaultToToday bool   `json:"defaultToToday,omitempty"`
	Format         string `json:"format,omitempty"`
}

// EffectiveFormat returns the display format, defaulting to YYYY-MM-DD.
func (d DateConfig) EffectiveFormat() string {
	if d.Format == "" {
		return DateFormatISO
	}
	return d.Format
}

// FormatDate renders t in the configured display format.
func (d DateConfig) FormatDate(t time.Time) string {
	layout := dateLayouts[d.EffectiveFormat()]
	if layout == "" {
		layout = dateLayouts[DateFormatISO]
	}
	if d.IncludeTime {
		layout += " 15:04"
	}
	return t.Format(layout)
}

// Fallback names used when a field leaves group or page blank.
const (
	DefaultGroupName = "General"
	DefaultPageName  = "General Information"
)

// Field is one entry of the directory schema. Records store their dynamic
// values under the field ID, so the ID must stay stable once records use it.
type Field struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Type             FieldType   `json:"type"`
	Options          []string    `json:"options,omitempty"`
	Navigable        bool        `json:"navigable,omitempty"`
	Filterable       bool        `json:"filterable,omitempty"`
	Sortable         bool        `json:"sortable,omitempty"`
	DisplayInListing bool        `json:"displayInListing,omitempty"`
	Required         bool        `json:"required,omitempty"`
	Group            string      `json:"group,omitempty"`
	Page             string      `json:"page,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	DateConfig       *DateConfig `json:"dateConfig,omitempty"`
}

// NewField returns a text field with the defaults the schema builder uses.
// The ID is derived from now so that fields added in sequence stay unique.
func NewField(name string, now time.Time) Field {
	return Field{
		ID:    fmt.Sprintf("field_%d", now.UnixMilli()),
		Name:  name,
		Type:  FieldText,
		Group: DefaultGroupName,
	}
}

// GroupName returns the field's group, or DefaultGroupName when unset.
func (f Field) GroupName() string {
	if f.Group == "" {
		return DefaultGroupName
	}
	return f.Group
}

// PageName returns the trimmed page label; empty means no page assignment.
func (f Field) PageName() string {
	return strings.TrimSpace(f.Page)
}

// IsFacet reports whether the field contributes a filter group to the listing.
func (f Field) IsFacet() bool {
	return f.Navigable || f.Filterable
}

// HasOption reports whether value is one of the field's options.
func (f Field) HasOption(value string) bool {
	for _, o := range f.Options {
		if o == value {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	c := f
	if f.Options != nil {
		c.Options = append([]string(nil), f.Options...)
	}
	if f.DateConfig != nil {
		dc := *f.DateConfig
		c.DateConfig = &dc
	}
	return c
}

// Validate checks a single field definition.
func (f Field) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return ErrFieldIDEmpty
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("field %s: %w", f.ID, ErrFieldNameEmpty)
	}
	if !f.Type.Valid() {
		return fmt.Errorf("field %s: %w %q", f.ID, ErrFieldTypeUnknown, f.Type)
	}
	if f.Type.IsChoice() && !hasUsableOption(f.Options) {
		return fmt.Errorf("field %s: %w", f.ID, ErrOptionsMissing)
	}
	if f.DateConfig != nil {
		if f.Type != FieldDate {
			return fmt.Errorf("field %s: %w", f.ID, ErrDateConfigMisused)
		}
		if _, ok := dateLayouts[f.DateConfig.EffectiveFormat()]; !ok {
			return fmt.Errorf("field %s: %w %q", f.ID, ErrDateFormatUnknown, f.DateConfig.Format)
		}
	}
	return nil
}

func hasUsableOption(options []string) bool {
	for _, o := range options {
		if strings.TrimSpace(o) != "" {
			return true
		}
	}
	return false
}

// ValidateSchema checks every field and rejects duplicate IDs. It returns the
// first problem found, wrapping one of the error kinds.
func ValidateSchema(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.ID] {
			return fmt.Errorf("field %s: %w", f.ID, ErrDuplicateFieldID)
		}
		seen[f.ID] = true
	}
	return nil
}

// IndexFields returns a lookup from field ID to field. On duplicate IDs the
// last definition wins; ValidateSchema rejects such schemas before they are
// saved.
func IndexFields(fields []Field) map[string]Field {
	idx := make(map[string]Field, len(fields))
	for _, f := range fields {
		idx[f.ID] = f
	}
	return idx
}

// ParseOptions splits a comma-separated option list, trimming whitespace.
// Blank entries are dropped.
func ParseOptions(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
