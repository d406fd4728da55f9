package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all services; it caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the validate tags on req and folds any failures into
// one ErrValidation.
func validateStruct(req any) error {
	return toValidationError(validate.Struct(req), "")
}

// validateVar checks a single value against a tag such as "required,email".
func validateVar(field string, value any, tag string) error {
	return toValidationError(validate.Var(value, tag), field)
}

func toValidationError(err error, field string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fe.Field()
		}
		msgs = append(msgs, fieldMessage(name, fe))
	}
	return validationError("%s", strings.Join(msgs, "; "))
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " is not a valid address"
	case "oneof":
		return field + " must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}
