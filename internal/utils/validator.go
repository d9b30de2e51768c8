// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("doc_id", validateDocumentID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDocumentID(fl validator.FieldLevel) bool {
	id := fl.Field().String()

	if len(id) < 1 || len(id) > 64 {
		return false
	}

	matched, _ := regexp.MatchString("^[a-zA-Z0-9_-]+$", id)
	return matched
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "doc_id":
		return "Identifier must contain only letters, numbers, underscores, and dashes"
	default:
		return e.Field() + " is invalid"
	}
}
