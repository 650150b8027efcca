// Package errs defines the structural value errors shared across the
// request pipeline, along with struct-tag validation helpers.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Field identifiers used as the context of a ValueError.
const (
	FieldContent    = "content"
	FieldStatusCode = "statusCode"
	FieldBaseURL    = "baseURL"
)

var (
	// ErrInvalidValue is wrapped by a [ValueError] whose value was present
	// but had the wrong shape.
	ErrInvalidValue = errors.New("invalid value")
	// ErrMissingValue is wrapped by a [ValueError] whose value was absent.
	ErrMissingValue = errors.New("missing value")
)

// ValueError reports which field failed, how it failed and, for invalid
// values, the offending value itself.
type ValueError struct {
	Field string
	Value any
	Err   error
}

// InvalidValue constructs a ValueError for a value of the wrong shape.
func InvalidValue(value any, field string) error {
	return &ValueError{
		Field: field,
		Value: value,
		Err:   ErrInvalidValue,
	}
}

// MissingValue constructs a ValueError for an absent value.
func MissingValue(field string) error {
	return &ValueError{
		Field: field,
		Err:   ErrMissingValue,
	}
}

func (e *ValueError) Error() string {
	if errors.Is(e.Err, ErrMissingValue) {
		return fmt.Sprintf("%v: %s", e.Err, e.Field)
	}

	return fmt.Sprintf("%v: %s: %v", e.Err, e.Field, e.Value)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// GetValueError returns the ValueError held in err's chain, if any.
func GetValueError(err error) (*ValueError, bool) {
	var ve *ValueError
	if !errors.As(err, &ve) {
		return nil, false
	}

	return ve, true
}

// /////////////////////////////////////////////////////////////////////////////////////////////

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// NewFieldsError creates a fields error.
func NewFieldsError(field string, err error) error {
	return FieldErrors{
		{
			Field: field,
			Err:   err.Error(),
		},
	}
}

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	d, err := json.Marshal(fe)
	if err != nil {
		return err.Error()
	}
	return string(d)
}

// Fields returns the fields that failed validation
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string, len(fe))
	for _, fld := range fe {
		m[fld.Field] = fld.Err
	}
	return m
}

// IsFieldErrors checks if an error of type FieldErrors exists.
func IsFieldErrors(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}

// GetFieldErrors returns the FieldErrors held in err's chain.
func GetFieldErrors(err error) FieldErrors {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return nil
	}
	return fe
}
