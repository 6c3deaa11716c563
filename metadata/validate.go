package metadata

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the document for missing or malformed fields.
func (d *Document) Validate() error {
	var errs []error

	if err := validate.Struct(d); err != nil {
		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		for _, ve := range valErrs {
			errs = append(errs, fmt.Errorf("%s: %s", ve.Namespace(), formatValidationError(ve)))
		}
	}

	for class, res := range d.Resources {
		if res == nil {
			continue
		}
		for key, op := range res.Operations {
			if op == nil {
				continue
			}
			for _, p := range op.Parameters {
				if p != nil && p.Minimum != nil && p.Maximum != nil && *p.Maximum < *p.Minimum {
					errs = append(errs, fmt.Errorf("resources.%s.operations.%s: parameter %s: maximum is below minimum", class, key, p.Name))
				}
			}
		}
	}

	for name, m := range d.Models {
		if m == nil {
			continue
		}
		for prop, p := range m.Properties {
			if p != nil && p.Minimum != nil && p.Maximum != nil && *p.Maximum < *p.Minimum {
				errs = append(errs, fmt.Errorf("models.%s.properties.%s: maximum is below minimum", name, prop))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
