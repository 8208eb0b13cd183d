package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate validates the Config using struct tags and cross-field rules.
// Returns an error with actionable messages if validation fails.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	// Duration fields carry free-form strings; parse them here so a typo
	// fails at startup rather than silently falling back.
	if c.API.HTTPTimeout != "" {
		d, err := time.ParseDuration(c.API.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("api.http_timeout: invalid duration %q", c.API.HTTPTimeout)
		}
		if d <= 0 {
			return fmt.Errorf("api.http_timeout: must be positive, got %q", c.API.HTTPTimeout)
		}
	}

	if c.Paging.DefaultPer > c.Paging.MaxPer {
		return fmt.Errorf("paging.default_per (%d) must not exceed paging.max_per (%d)",
			c.Paging.DefaultPer, c.Paging.MaxPer)
	}

	return nil
}

// formatValidationErrors converts validator.ValidationErrors to user-friendly messages.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, formatSingleValidationError(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

// formatSingleValidationError creates a user-friendly message for a single validation error.
func formatSingleValidationError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a valid host:port", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}
