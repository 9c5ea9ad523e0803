package services

import (
	"errors"
	"fmt"

	"github.com/edupercentage/platform-service/internal/validator"
)

// ===== SENTINEL ERRORS =====

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrEmptyQuiz            = errors.New("quiz has no questions")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrArticleNotFound      = errors.New("article not found")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAlreadyEnrolled      = errors.New("already enrolled in course")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
)

// PermissionError describes a denied operation on a resource
type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsPermissionError reports whether err is a permission denial
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string, value interface{}) *validator.ValidationError {
	return &validator.ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    "business_logic",
	}
}

// IsNotFoundError reports whether err is one of the not-found sentinels
func IsNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrResourceNotFound),
		errors.Is(err, ErrArticleNotFound),
		errors.Is(err, ErrClassroomNotFound),
		errors.Is(err, ErrStudentNotFound),
		errors.Is(err, ErrNotificationNotFound),
		errors.Is(err, ErrEnrollmentNotFound):
		return true
	}
	return false
}
