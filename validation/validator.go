package validation

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/seqkit/errors"
)

// FieldError is a single rejected configuration key.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates rejected keys of one configuration section. Every
// check returns the receiver so checks chain.
//
//	err := validation.For("pipeline").
//	    Range("initial_capacity", c.InitialCapacity, 0, 1<<20).
//	    Validate()
type Validator struct {
	section string
	fields  []FieldError
}

// New creates a Validator whose keys are reported as given.
func New() *Validator {
	return &Validator{}
}

// For creates a Validator whose keys are reported under section, so a
// rejected "sample_rate" reads "observability.sample_rate".
func For(section string) *Validator {
	return &Validator{section: section}
}

func (v *Validator) key(field string) string {
	switch {
	case v.section == "":
		return field
	case field == "":
		return v.section
	}
	return v.section + "." + field
}

// AddError rejects field with message.
func (v *Validator) AddError(field, message string) {
	v.fields = append(v.fields, FieldError{Field: v.key(field), Message: message})
}

func (v *Validator) reject(field, format string, args ...any) *Validator {
	v.AddError(field, fmt.Sprintf(format, args...))
	return v
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.fields) > 0
}

// Errors returns the rejected keys in the order they were checked.
func (v *Validator) Errors() []FieldError {
	return v.fields
}

// Validate returns an INVALID_CONFIG AppError listing every rejected key, or
// nil when all checks passed.
func (v *Validator) Validate() *errors.AppError {
	if len(v.fields) == 0 {
		return nil
	}
	var b strings.Builder
	for i, f := range v.fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Field)
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	return errors.InvalidConfig(b.String()).WithDetail("fields", slices.Clone(v.fields))
}

// Required rejects a blank value.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) != "" {
		return v
	}
	return v.reject(field, "is required")
}

// Range rejects an integer outside [lo, hi].
func (v *Validator) Range(field string, value, lo, hi int) *Validator {
	if value >= lo && value <= hi {
		return v
	}
	return v.reject(field, "must be between %d and %d", lo, hi)
}

// Between rejects a float outside [lo, hi].
func (v *Validator) Between(field string, value, lo, hi float64) *Validator {
	if value >= lo && value <= hi {
		return v
	}
	return v.reject(field, "must be between %g and %g", lo, hi)
}

// OneOf rejects a value not in allowed. An empty value is left to Required.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" || slices.Contains(allowed, value) {
		return v
	}
	return v.reject(field, "must be one of: %s", strings.Join(allowed, ", "))
}

// Check rejects field with message unless ok holds.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if ok {
		return v
	}
	return v.reject(field, "%s", message)
}

// Struct folds the struct-tag violations of s into v, under v's section.
// Failures that are not field violations are recorded against the section.
func (v *Validator) Struct(s any) *Validator {
	err := Validate(s)
	if err == nil {
		return v
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if fields, ok := appErr.Details["fields"].([]FieldError); ok {
			for _, f := range fields {
				v.AddError(f.Field, f.Message)
			}
			return v
		}
	}
	return v.reject("", "%v", err)
}
