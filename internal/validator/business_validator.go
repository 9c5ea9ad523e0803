package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/edupercentage/platform-service/internal/models"
)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	err := bv.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateQuestionCreate validates quiz question creation business rules
func (bv *BusinessValidator) ValidateQuestionCreate(req *QuestionCreateRequest) ValidationErrors {
	var errors ValidationErrors

	// Basic struct validation
	errors = append(errors, bv.Validate(req)...)

	// Question-specific business validations
	errors = append(errors, bv.validateQuestionBusinessRules(req.Options, req.CorrectAnswer)...)

	return errors
}

// ValidateQuestionUpdate validates quiz question update business rules
func (bv *BusinessValidator) ValidateQuestionUpdate(req *QuestionUpdateRequest) ValidationErrors {
	var errors ValidationErrors

	// Basic struct validation
	errors = append(errors, bv.Validate(req)...)

	if req.Options != nil {
		correct := 0
		if req.CorrectAnswer != nil {
			correct = *req.CorrectAnswer
		}
		errors = append(errors, bv.validateQuestionBusinessRules(req.Options, correct)...)
	}

	return errors
}

// ValidateResultSubmit validates quiz submission business rules. The answer
// slice must match the question count of the quiz being answered.
func (bv *BusinessValidator) ValidateResultSubmit(req *ResultSubmitRequest, questionCount int) ValidationErrors {
	var errors ValidationErrors

	// Basic struct validation
	errors = append(errors, bv.Validate(req)...)

	if questionCount > 0 && len(req.Answers) != questionCount {
		errors = append(errors, ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("must contain exactly %d answers", questionCount),
			Value:   len(req.Answers),
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateNotificationSend validates notification targeting business rules
func (bv *BusinessValidator) ValidateNotificationSend(req *NotificationSendRequest) ValidationErrors {
	var errors ValidationErrors

	// Basic struct validation
	errors = append(errors, bv.Validate(req)...)

	// Single and multi recipient targeting are mutually exclusive
	if req.RecipientID != nil && len(req.RecipientIDs) > 0 {
		errors = append(errors, ValidationError{
			Field:   "recipient_ids",
			Message: "cannot combine recipient_id with recipient_ids",
			Value:   len(req.RecipientIDs),
			Rule:    "business_logic",
		})
	}

	for i, id := range req.RecipientIDs {
		if strings.TrimSpace(id) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("recipient_ids[%d]", i),
				Message: "recipient id cannot be empty",
				Value:   id,
				Rule:    "business_logic",
			})
		}
	}

	return errors
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Quiz type validation
	bv.validate.RegisterValidation("quiz_type", func(fl validator.FieldLevel) bool {
		return models.QuizType(fl.Field().String()).Valid()
	})

	// Resource type validation
	bv.validate.RegisterValidation("resource_type", func(fl validator.FieldLevel) bool {
		return models.ResourceKind(fl.Field().String()).Valid()
	})

	// News category validation
	bv.validate.RegisterValidation("news_category", func(fl validator.FieldLevel) bool {
		return models.NewsCategory(fl.Field().String()).Valid()
	})

	// Notification type validation
	bv.validate.RegisterValidation("notification_type", func(fl validator.FieldLevel) bool {
		return models.NotificationType(fl.Field().String()).Valid()
	})

	// User role validation
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch models.UserRole(fl.Field().String()) {
		case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
			return true
		}
		return false
	})
}

// validateQuestionBusinessRules validates option arity and answer index
func (bv *BusinessValidator) validateQuestionBusinessRules(options []string, correctAnswer int) ValidationErrors {
	var errors ValidationErrors

	if len(options) != models.QuestionOptionCount {
		errors = append(errors, ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("must contain exactly %d options", models.QuestionOptionCount),
			Value:   len(options),
			Rule:    "business_logic",
		})
	}

	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("options[%d]", i),
				Message: "option cannot be empty",
				Value:   opt,
				Rule:    "business_logic",
			})
		}
	}

	if correctAnswer < 0 || correctAnswer >= models.QuestionOptionCount {
		errors = append(errors, ValidationError{
			Field:   "correct_answer",
			Message: fmt.Sprintf("must reference one of the %d options", models.QuestionOptionCount),
			Value:   correctAnswer,
			Rule:    "business_logic",
		})
	}

	return errors
}
