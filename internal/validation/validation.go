// Package validation checks write payloads against their declared field
// constraints before any persistence call is attempted. All violations across
// all fields are collected into a single domain.ValidationErrors rather than
// failing on the first one.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/poketeam/pokedex-service/internal/domain"
)

// Validator evaluates the declarative per-field constraints on the domain
// write models. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the pokemontype rule registered and field
// names taken from json tags, so violation details match the wire format.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration can only fail for a blank tag or nil fn.
	_ = v.RegisterValidation("pokemontype", func(fl validator.FieldLevel) bool {
		return domain.IsPokemonType(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct validates s and returns nil or a *domain.ValidationErrors carrying
// every violated constraint.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator only returns InvalidValidationError for non-struct
		// input, which is a programming error on our side.
		return fmt.Errorf("validate payload: %w", err)
	}

	violations := make([]domain.FieldViolation, len(fieldErrs))
	for i, fe := range fieldErrs {
		violations[i] = domain.FieldViolation{
			Field:      fe.Field(),
			Constraint: constraintMessage(fe),
		}
	}
	return domain.NewValidationErrors(violations...)
}

// constraintMessage renders a validator tag as a human-readable constraint.
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be ≥ %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be ≤ %s", fe.Param())
	case "pokemontype":
		return fmt.Sprintf("must be one of %s", strings.Join(domain.PokemonTypes, ", "))
	default:
		return fmt.Sprintf("failed constraint %q", fe.Tag())
	}
}
