package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// username: allowed charset plus the reserved route segment "me"
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if strings.EqualFold(value, "me") {
			return false
		}
		return usernamePattern.MatchString(value)
	})

	// slug: lowercase letters, digits, hyphens and underscores
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "username":
		return "Allowed characters are letters, digits and @/./+/-/_; 'me' is reserved"
	case "slug":
		return "Allowed characters are letters, digits, hyphen and underscore"
	case "min":
		return fmt.Sprintf("Minimum value/length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum value/length is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid4":
		return "Must be a valid UUID"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
