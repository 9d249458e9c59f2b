// Package validator wraps go-playground struct validation behind a small
// injectable type.
package validator

import "github.com/go-playground/validator/v10"

// Validator validates request payloads against their struct tags.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator. One instance is shared by all handlers; the
// underlying validate object caches struct metadata and is safe for
// concurrent use.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates a struct based on its validate tags. Returns
// validator.ValidationErrors for rule failures, which handlers flatten
// into their issue envelopes.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}
