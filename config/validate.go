package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	// metric namespaces follow the Prometheus name grammar
	namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Validate checks struct tags, then the rules tags cannot express.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalid)
	}
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if ns := c.Metrics.Namespace; ns != "" && !namespacePattern.MatchString(ns) {
		return fmt.Errorf("%w: Metrics.Namespace: %q is not a valid metric name prefix", ErrInvalid, ns)
	}
	if c.Metrics.Addr != "" && !c.Metrics.Enabled {
		return fmt.Errorf("%w: Metrics.Addr: set while metrics are disabled", ErrInvalid)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	// first error only
	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s: field is required", ErrInvalid, field)
		case "min":
			return fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, field, e.Param())
		case "max":
			return fmt.Errorf("%w: %s: must not exceed %s", ErrInvalid, field, e.Param())
		case "oneof":
			return fmt.Errorf("%w: %s: must be one of [%s], got %q", ErrInvalid, field, e.Param(), e.Value())
		case "unique":
			return fmt.Errorf("%w: %s: duplicate entries", ErrInvalid, field)
		case "ne":
			return fmt.Errorf("%w: %s: %q is reserved", ErrInvalid, field, e.Param())
		default:
			return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag())
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}
