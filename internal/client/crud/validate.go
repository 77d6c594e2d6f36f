package crud

import (
	"fmt"
	"strings"
	"time"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a draft fails client-side checks. No
// request has been sent.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// Field returns the first message recorded for field.
func (e *ValidationError) Field(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// Validator collects field errors through a chainable API. A new Validator
// is used per check.
type Validator struct {
	errs []FieldError
}

// Required fails when the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, field+" is required")
	}
	return v
}

// OneOf fails when value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
	return v
}

// NonNegative fails when value < 0.
func (v *Validator) NonNegative(field string, value float64) *Validator {
	if value < 0 {
		v.add(field, field+" must not be negative")
	}
	return v
}

// Date fails when a non-empty value does not parse with layout.
func (v *Validator) Date(field, value, layout string) *Validator {
	if value == "" {
		return v
	}
	if _, err := time.Parse(layout, value); err != nil {
		v.add(field, fmt.Sprintf("%s must be a date like %s", field, layout))
	}
	return v
}

// Selection fails when s is outside its bounds.
func (v *Validator) Selection(field string, s Selection) *Validator {
	if msg, ok := s.Check(); !ok {
		v.add(field, msg)
	}
	return v
}

// Custom records message when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a *ValidationError when any rule failed, nil otherwise.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.errs}
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}
