package common

import (
	"fmt"
	"regexp"
	"strings"
)

var SlugRX = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// NotBlank reports whether s has any non-whitespace characters.
func (v *Validator) NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// CheckSlug validates a post or category slug under the given field name.
func (v *Validator) CheckSlug(slug, field string) {
	v.Check(slug != "", field, "must be provided")
	v.Check(v.CheckStringLength(slug, 1, 200), field, "must be between 1 and 200 characters long")
	v.Check(SlugRX.MatchString(slug), field, "must only contain letters, numbers, dashes, and underscores")
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
