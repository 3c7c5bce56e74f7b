package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationFieldError is one failed constraint, shaped for the response
// envelope's details field.
type ValidationFieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidateStruct checks the struct's `validate` tags.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens a validator error into field errors.
func GetValidationErrors(err error) []ValidationFieldError {
	var out []ValidationFieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}

	for _, fe := range validationErrors {
		out = append(out, ValidationFieldError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Rule:    fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "uuid":
		return fe.Field() + " must be a valid UUID"
	default:
		return fe.Field() + " failed rule " + fe.Tag()
	}
}
