// Package validation performs field-level syntactic checks on request payloads
// and reports every failure as an *apperror.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
)

// messages overrides the generic text for a field and tag pair.
var messages = map[string]string{
	"email.required":          "Please provide a valid email address",
	"email.email":             "Please provide a valid email address",
	"email.max":               "Email must be at most 100 characters long",
	"password.required":       "Password is required",
	"password.min":            "Password must be at least 6 characters long",
	"password.containsany":    "Password must contain at least one number",
	"title.required":          "Title must be between 1 and 255 characters",
	"title.min":               "Title must be between 1 and 255 characters",
	"title.max":               "Title must be between 1 and 255 characters",
	"type.required":           `Type must be either "income" or "expense"`,
	"type.oneof":              `Type must be either "income" or "expense"`,
	"amount.required":         "Amount must be a positive number",
	"amount.positive_decimal": "Amount must be a positive number",
	"page.min":                "Page must be a positive integer",
	"limit.min":               "Limit must be a positive integer",
}

// Normalizer is implemented by inputs that canonicalise fields before validation.
type Normalizer interface {
	Normalize()
}

type Validator struct {
	validate *validator.Validate
}

func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	if err := v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && value.IsPositive()
	}); err != nil {
		return nil, fmt.Errorf("register positive_decimal: %w", err)
	}

	return &Validator{validate: v}, nil
}

// Struct normalises payload when it supports it, then checks its tags.
func (v *Validator) Struct(payload any) error {
	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}

	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate payload: %w", err)
	}

	details := make([]apperror.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperror.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return &apperror.ValidationError{Details: details}
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed the %s=%s rule", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
}

// NormalizeEmail lower-cases and trims an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
