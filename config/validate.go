package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/http/httpguts"
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

// Validate checks the configuration. All problems are reported at once,
// wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var valErrs validator.ValidationErrors
		if !errors.As(err, &valErrs) {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		for _, ve := range valErrs {
			errs = append(errs, fmt.Errorf("%s: %s", ve.Namespace(), formatValidationError(ve)))
		}
	}

	errs = append(errs, c.validateCORS()...)
	errs = append(errs, c.validateResources()...)

	v := routeValidator{resources: make(map[string]bool), ids: make(map[string]bool)}
	for _, r := range c.Resources {
		v.resources[r.Name] = true
	}
	for i, r := range c.Routes {
		v.check(fmt.Sprintf("routes[%d]", i), r)
	}
	errs = append(errs, v.errs...)

	if c.Metadata != nil {
		if err := c.Metadata.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("metadata: %w", err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (c *Config) validateCORS() []error {
	var errs []error

	wildcard := len(c.CORS.AllowedOrigins) == 0 || slices.Contains(c.CORS.AllowedOrigins, "*")
	if wildcard && c.CORS.AllowCredentials {
		errs = append(errs, errors.New("cors: allow_credentials requires explicit allowed_origins"))
	}

	for _, name := range slices.Concat(c.CORS.AllowedHeaders, c.CORS.ExposeHeaders) {
		if !httpguts.ValidHeaderFieldName(name) {
			errs = append(errs, fmt.Errorf("cors: invalid header name %q", name))
		}
	}
	return errs
}

func (c *Config) validateResources() []error {
	var errs []error
	seen := make(map[string]bool)

	for i, r := range c.Resources {
		if seen[r.Name] {
			errs = append(errs, fmt.Errorf("resources[%d]: duplicate resource %q", i, r.Name))
		}
		seen[r.Name] = true

		methods := make(map[string]bool)
		for j, m := range r.Methods {
			token := strings.ToUpper(m.Method)
			// Methods are tokens, which share the header field name grammar.
			if token != "" && !httpguts.ValidHeaderFieldName(token) {
				errs = append(errs, fmt.Errorf("resources[%d].methods[%d]: invalid method %q", i, j, m.Method))
			}
			if methods[token] {
				errs = append(errs, fmt.Errorf("resources[%d].methods[%d]: duplicate method %s", i, j, token))
			}
			methods[token] = true
		}
	}
	return errs
}

// routeValidator checks routes in declaration order, so a ref can only
// name a route declared before it.
type routeValidator struct {
	resources map[string]bool
	ids       map[string]bool
	errs      []error
}

func (v *routeValidator) check(where string, r Route) {
	fail := func(format string, args ...any) {
		v.errs = append(v.errs, fmt.Errorf("%s: %s", where, fmt.Sprintf(format, args...)))
	}

	kinds := 0
	for _, set := range []bool{r.Resource != "", r.Ref != "", r.Filter} {
		if set {
			kinds++
		}
	}
	if kinds > 1 {
		fail("resource, ref and filter are mutually exclusive")
	}

	if r.ID != "" {
		if v.ids[r.ID] {
			fail("duplicate id %q", r.ID)
		}
		v.ids[r.ID] = true
	}

	switch {
	case r.Resource != "":
		if !v.resources[r.Resource] {
			fail("unknown resource %q", r.Resource)
		}
		if len(r.Children) > 0 {
			fail("a resource route cannot have children")
		}
	case r.Ref != "":
		if !v.ids[r.Ref] {
			fail("ref %q does not name an earlier route", r.Ref)
		}
		if len(r.Children) > 0 {
			fail("a ref route cannot have children")
		}
	case r.Filter:
		if r.Path != "" {
			fail("a filter route cannot have a path")
		}
	}

	for i, child := range r.Children {
		v.check(fmt.Sprintf("%s.children[%d]", where, i), child)
	}
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
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "url", "uri":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "startswith":
		return fmt.Sprintf("must start with %q", ve.Param())
	case "hostname_port":
		return "must be a host:port address"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
