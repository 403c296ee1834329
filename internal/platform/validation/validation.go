// Package validation turns request binding failures into field-level errors.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a request field name to a human-readable message.
type FieldErrors map[string]string

// Error implements error so FieldErrors can travel through error returns.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Check adds msg for field when ok is false.
func (fe FieldErrors) Check(ok bool, field, msg string) {
	if !ok {
		fe.Add(field, msg)
	}
}

// Valid reports whether no field errors were collected.
func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

// FromBindError converts the error returned by gin's ShouldBind into FieldErrors.
// Errors that are not validator errors (malformed JSON, wrong types) are
// reported under the "body" key.
func FromBindError(err error) FieldErrors {
	fe := FieldErrors{}
	if err == nil {
		return fe
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("body", "invalid request body")
		return fe
	}

	for _, v := range verrs {
		fe.Add(fieldName(v), message(v))
	}
	return fe
}

// fieldName returns the snake_case form of the struct field.
func fieldName(v validator.FieldError) string {
	name := v.Field()
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 && isLowerOrDigit(name[i-1]) {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isLowerOrDigit(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func message(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", v.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", v.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", v.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", v.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", strings.ToLower(v.Param()))
	default:
		return "is invalid"
	}
}
