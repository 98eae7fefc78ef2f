package actions

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dukex/crmflow/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrMissingField is returned by RequireFields for an empty required field.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidConfiguration is returned when a configuration does not match its schema.
	ErrInvalidConfiguration = errors.New("invalid action configuration")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return v
}

// RequireFields checks the validate tags of config and reports the first
// failing field by its JSON name, e.g. "subject is required".
func RequireFields(config any) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fmt.Errorf("%w: %s is required", ErrMissingField, validationErrors[0].Field())
	}

	return fmt.Errorf("%w: %w", ErrMissingField, err)
}

// MissingFieldMessage strips the sentinel prefix from a RequireFields error.
func MissingFieldMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrMissingField.Error()+": ")
}

// ValidateConfiguration checks a raw JSON configuration against a JSON schema.
func ValidateConfiguration(schema map[string]any, raw string) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(messages, "; "))
	}

	return nil
}

// MissingFieldFailure converts a RequireFields error into a validation failure.
func MissingFieldFailure(err error, usedDefaults bool) models.ActionResult {
	message := MissingFieldMessage(err)
	if usedDefaults {
		message += " (configuration missing or malformed)"
	}

	return models.ValidationFailure("%s", message)
}
