package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a business validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", ve.Field, ve.Message)
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// ToValidationErrors converts go-playground validator errors into our error type
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors

	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Message: getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
		return errors
	}

	errors = append(errors, ValidationError{
		Field:   "request",
		Message: err.Error(),
		Rule:    "invalid",
	})
	return errors
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s elements", err.Param())
	case "quiz_type":
		return "must be a valid quiz type"
	case "resource_type":
		return "must be a valid resource type"
	case "news_category":
		return "must be a valid news category"
	case "notification_type":
		return "must be a valid notification type"
	case "user_role":
		return "must be student, teacher, or admin"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
