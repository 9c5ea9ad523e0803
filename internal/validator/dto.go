package validator

import (
	"github.com/edupercentage/platform-service/internal/models"
)

// RegisterRequest represents the request structure for account registration
type RegisterRequest struct {
	FirstName string          `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string          `json:"last_name" validate:"required,min=1,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=8,max=128"`
	Role      models.UserRole `json:"role" validate:"required,user_role"`
}

// LoginRequest represents the request structure for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents the request structure for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
}

// ProfileUpdateRequest represents the request structure for profile updates
type ProfileUpdateRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=2048"`
}

// RoleUpdateRequest represents the request structure for role elevation
type RoleUpdateRequest struct {
	Role models.UserRole `json:"role" validate:"required,user_role"`
}

// QuestionCreateRequest represents the request structure for creating quiz questions
type QuestionCreateRequest struct {
	Question      string   `json:"question" validate:"required,min=1,max=2000"`
	Options       []string `json:"options" validate:"required,len=4,dive,required,max=500"`
	CorrectAnswer int      `json:"correct_answer" validate:"min=0,max=3"`
}

// QuestionUpdateRequest represents the request structure for updating quiz questions
type QuestionUpdateRequest struct {
	Question      *string  `json:"question" validate:"omitempty,min=1,max=2000"`
	Options       []string `json:"options" validate:"omitempty,len=4,dive,required,max=500"`
	CorrectAnswer *int     `json:"correct_answer" validate:"omitempty,min=0,max=3"`
}

// ResultSubmitRequest represents the request structure for submitting quiz answers
type ResultSubmitRequest struct {
	SubjectID string          `json:"subject_id" validate:"required,max=100"`
	QuizType  models.QuizType `json:"quiz_type" validate:"required,quiz_type"`
	Answers   []int           `json:"answers" validate:"required,min=1,dive,min=-1,max=3"`
}

// ResourceCreateRequest represents the request structure for adding resources
type ResourceCreateRequest struct {
	Title       string              `json:"title" validate:"required,min=1,max=200"`
	Description string              `json:"description" validate:"omitempty,max=2000"`
	Type        models.ResourceKind `json:"type" validate:"required,resource_type"`
	URL         string              `json:"url" validate:"required,max=2048"`
	Subject     string              `json:"subject" validate:"required,max=100"`
	GradeLevel  string              `json:"grade_level" validate:"omitempty,max=50"`
}

// ResourceResponseRequest represents a student response on a resource
type ResourceResponseRequest struct {
	Response string `json:"response" validate:"required,min=1,max=2000"`
}

// NewsCreateRequest represents the request structure for publishing news articles
type NewsCreateRequest struct {
	Title    string              `json:"title" validate:"required,min=1,max=200"`
	Summary  string              `json:"summary" validate:"omitempty,max=500"`
	Content  string              `json:"content" validate:"required,min=1"`
	ImageURL *string             `json:"image_url" validate:"omitempty,max=2048"`
	Category models.NewsCategory `json:"category" validate:"required,news_category"`
}

// NewsUpdateRequest represents the request structure for editing news articles
type NewsUpdateRequest struct {
	Title    *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Summary  *string              `json:"summary" validate:"omitempty,max=500"`
	Content  *string              `json:"content" validate:"omitempty,min=1"`
	ImageURL *string              `json:"image_url" validate:"omitempty,max=2048"`
	Category *models.NewsCategory `json:"category" validate:"omitempty,news_category"`
}

// ClassroomCreateRequest represents the request structure for creating classrooms
type ClassroomCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Grade string `json:"grade" validate:"required,max=50"`
}

// ClassroomStudentRequest represents adding a student to a classroom roster
type ClassroomStudentRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
}

// NotificationSendRequest represents the request structure for sending notifications.
// Omitting all recipient fields produces a broadcast visible to every user.
type NotificationSendRequest struct {
	Title        string                  `json:"title" validate:"required,min=1,max=200"`
	Message      string                  `json:"message" validate:"required,min=1,max=2000"`
	Type         models.NotificationType `json:"type" validate:"required,notification_type"`
	RecipientID  *string                 `json:"recipient_id" validate:"omitempty,max=100"`
	RecipientIDs []string                `json:"recipient_ids" validate:"omitempty,dive,max=100"`
	ClassroomID  *string                 `json:"classroom_id" validate:"omitempty,max=100"`
}

// EnrollRequest represents the request structure for course enrollment
type EnrollRequest struct {
	SubjectID string `json:"subject_id" validate:"required,max=100"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
}
