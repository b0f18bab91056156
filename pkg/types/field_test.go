package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantErr error
	}{
		{
			name:  "text field",
			field: Field{ID: "Name_01", Name: "Name", Type: FieldText},
		},
		{
			name:    "empty id",
			field:   Field{ID: " ", Name: "Name", Type: FieldText},
			wantErr: ErrFieldIDEmpty,
		},
		{
			name:    "empty name",
			field:   Field{ID: "x", Type: FieldText},
			wantErr: ErrFieldNameEmpty,
		},
		{
			name:    "unknown type",
			field:   Field{ID: "x", Name: "X", Type: "slider"},
			wantErr: ErrFieldTypeUnknown,
		},
		{
			name:    "checkbox without options",
			field:   Field{ID: "x", Name: "X", Type: FieldChoiceCheckbox},
			wantErr: ErrOptionsMissing,
		},
		{
			name:    "select with only blank options",
			field:   Field{ID: "x", Name: "X", Type: FieldChoiceSelect, Options: []string{" ", ""}},
			wantErr: ErrOptionsMissing,
		},
		{
			name:  "radio with options",
			field: Field{ID: "x", Name: "X", Type: FieldChoiceRadio, Options: []string{"a"}},
		},
		{
			name:    "date config on text field",
			field:   Field{ID: "x", Name: "X", Type: FieldText, DateConfig: &DateConfig{}},
			wantErr: ErrDateConfigMisused,
		},
		{
			name:    "unknown date format",
			field:   Field{ID: "x", Name: "X", Type: FieldDate, DateConfig: &DateConfig{Format: "YY"}},
			wantErr: ErrDateFormatUnknown,
		},
		{
			name:  "date with default format",
			field: Field{ID: "x", Name: "X", Type: FieldDate, DateConfig: &DateConfig{IncludeTime: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidation(err), "schema problems are validation errors")
		})
	}
}

func TestValidateSchemaRejectsDuplicateIDs(t *testing.T) {
	schema := []Field{
		{ID: "Rating_01", Name: "Rating", Type: FieldNumber},
		{ID: "Rating_01", Name: "Score", Type: FieldNumber},
	}
	err := ValidateSchema(schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateFieldID)
	assert.True(t, IsConflict(err))
	assert.False(t, IsValidation(err))
}

func TestValidateSchemaAcceptsEmpty(t *testing.T) {
	assert.NoError(t, ValidateSchema(nil))
}

func TestIndexFieldsLastWins(t *testing.T) {
	idx := IndexFields([]Field{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
		{ID: "b", Name: "b"},
	})
	assert.Len(t, idx, 2)
	assert.Equal(t, "second", idx["a"].Name)
}

func TestFieldDefaults(t *testing.T) {
	f := Field{ID: "x", Page: "  Basic  "}
	assert.Equal(t, DefaultGroupName, f.GroupName())
	assert.Equal(t, "Basic", f.PageName())

	f.Group = "Location"
	assert.Equal(t, "Location", f.GroupName())
}

func TestNewField(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	f := NewField("New Field", now)
	assert.Equal(t, "field_1700000000123", f.ID)
	assert.Equal(t, FieldText, f.Type)
	assert.Equal(t, DefaultGroupName, f.Group)
	assert.False(t, f.Navigable || f.Filterable || f.Sortable || f.Required || f.DisplayInListing)
}

func TestFieldTypePredicates(t *testing.T) {
	for _, ft := range FieldTypes {
		assert.True(t, ft.Valid(), string(ft))
		assert.NotEqual(t, string(ft), ft.Label(), "every type has a label")
	}
	assert.True(t, FieldChoiceCheckbox.IsMultiValue())
	assert.False(t, FieldChoiceSelect.IsMultiValue())
	assert.True(t, FieldChoiceRadio.IsChoice())
	assert.False(t, FieldNumber.IsChoice())
}

func TestFieldCloneIsDeep(t *testing.T) {
	f := Field{ID: "x", Options: []string{"a"}, DateConfig: &DateConfig{Format: DateFormatUS}}
	c := f.Clone()
	c.Options[0] = "b"
	c.DateConfig.Format = DateFormatEU
	assert.Equal(t, "a", f.Options[0])
	assert.Equal(t, DateFormatUS, f.DateConfig.Format)
}

func TestDateConfigFormatDate(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		cfg  DateConfig
		want string
	}{
		{DateConfig{}, "2024-01-15"},
		{DateConfig{Format: DateFormatUS}, "01/15/2024"},
		{DateConfig{Format: DateFormatEU}, "15/01/2024"},
		{DateConfig{IncludeTime: true}, "2024-01-15 09:30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cfg.FormatDate(ts))
	}
}

func TestParseOptions(t *testing.T) {
	assert.Equal(t, []string{"Wifi", "Pool", "Gym"}, ParseOptions(" Wifi, Pool ,, Gym "))
	assert.Nil(t, ParseOptions(" , "))
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(ErrRecordNotFound, ErrNotFound))
	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.True(t, IsConflict(ErrDuplicateEmail))
	assert.True(t, IsValidation(ErrRequiredMissing))
}
