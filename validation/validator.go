package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/utilkit/errors"
)

// FieldError names one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

// Validator accumulates field errors from chained checks:
//
//	err := validation.New().Required("key", key).Min("seconds", s, 1).Validate()
type Validator struct {
	failed []FieldError
}

func New() *Validator { return &Validator{} }

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.failed = append(v.failed, FieldError{Field: field, Message: message})
}

func (v *Validator) HasErrors() bool { return len(v.failed) > 0 }

func (v *Validator) Errors() []FieldError { return v.failed }

// Validate folds the recorded failures into one INVALID_INPUT error,
// or returns nil when every check passed.
func (v *Validator) Validate() *errors.AppError {
	return invalid(v.failed)
}

// Required rejects blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(strings.TrimSpace(value) != "", field, "is required")
}

// Range rejects values outside [lo, hi].
func (v *Validator) Range(field string, value, lo, hi int) *Validator {
	return v.Custom(value >= lo && value <= hi, field, fmt.Sprintf("must be between %d and %d", lo, hi))
}

// Min rejects values below lo.
func (v *Validator) Min(field string, value, lo int) *Validator {
	return v.Custom(value >= lo, field, fmt.Sprintf("must be at least %d", lo))
}

// Custom records message for field unless ok holds.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required is the single-field form of (*Validator).Required.
func Required(field, value string) error {
	if err := New().Required(field, value).Validate(); err != nil {
		return err
	}
	return nil
}

// invalid joins failures as "field: message; ..." and attaches them
// under the "fields" detail.
func invalid(failed []FieldError) *errors.AppError {
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, len(failed))
	for i, f := range failed {
		parts[i] = f.String()
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", failed)
}
