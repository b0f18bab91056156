package types

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the command layer wraps exactly one of
// these, so callers can branch with errors.Is on the kind alone.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Schema validation errors.
var (
	ErrFieldIDEmpty      = fmt.Errorf("%w: field id must not be empty", ErrValidation)
	ErrFieldNameEmpty    = fmt.Errorf("%w: field name must not be empty", ErrValidation)
	ErrFieldTypeUnknown  = fmt.Errorf("%w: unknown field type", ErrValidation)
	ErrOptionsMissing    = fmt.Errorf("%w: choice field needs at least one option", ErrValidation)
	ErrDateConfigMisused = fmt.Errorf("%w: date settings are only valid on date fields", ErrValidation)
	ErrDateFormatUnknown = fmt.Errorf("%w: unknown date format", ErrValidation)
	ErrDuplicateFieldID  = fmt.Errorf("%w: duplicate field id", ErrConflict)
	ErrFieldNotFound     = fmt.Errorf("%w: field", ErrNotFound)
)

// Record and value errors.
var (
	ErrRecordNameEmpty   = fmt.Errorf("%w: record name must not be empty", ErrValidation)
	ErrCategoryUnknown   = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrValueType         = fmt.Errorf("%w: value does not fit the field type", ErrValidation)
	ErrOptionUnknown     = fmt.Errorf("%w: value is not one of the field options", ErrValidation)
	ErrRequiredMissing   = fmt.Errorf("%w: required field has no value", ErrValidation)
	ErrRecordNotFound    = fmt.Errorf("%w: record", ErrNotFound)
	ErrDuplicateRecordID = fmt.Errorf("%w: duplicate record id", ErrConflict)
)

// User and session errors.
var (
	ErrEmailInvalid       = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrUserNameEmpty      = fmt.Errorf("%w: user name must not be empty", ErrValidation)
	ErrRoleUnknown        = fmt.Errorf("%w: unknown role", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrValidation)
	ErrDeleteSelf         = fmt.Errorf("%w: cannot delete the signed-in user", ErrValidation)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrDuplicateEmail     = fmt.Errorf("%w: email already registered", ErrConflict)
)

// Settings errors.
var (
	ErrLayoutUnknown = fmt.Errorf("%w: unknown default layout", ErrValidation)
)

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
