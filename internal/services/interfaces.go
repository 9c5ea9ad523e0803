package services

import (
	"context"
	"io"

	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type ChangePasswordRequest = validator.ChangePasswordRequest
type RoleUpdateRequest = validator.RoleUpdateRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type CreateQuestionRequest = validator.QuestionCreateRequest
type UpdateQuestionRequest = validator.QuestionUpdateRequest
type SubmitResultRequest = validator.ResultSubmitRequest
type CreateResourceRequest = validator.ResourceCreateRequest
type ResourceResponseRequest = validator.ResourceResponseRequest
type CreateNewsRequest = validator.NewsCreateRequest
type UpdateNewsRequest = validator.NewsUpdateRequest
type CreateClassroomRequest = validator.ClassroomCreateRequest
type AddStudentRequest = validator.ClassroomStudentRequest
type SendNotificationRequest = validator.NotificationSendRequest
type EnrollRequest = validator.EnrollRequest

// AuthResponse carries the session token and the resolved permissions
// returned from register and login.
type AuthResponse struct {
	User  *models.User      `json:"user"`
	Token string            `json:"token"`
	Role  models.UserRole   `json:"role"`
	Roles []models.UserRole `json:"roles"`
}

// ScoreResult carries a computed quiz score
type ScoreResult struct {
	Score          int `json:"score"`
	CorrectAnswers int `json:"correct_answers"`
	TotalQuestions int `json:"total_questions"`
}

// ===== SERVICE INTERFACES =====

// IdentityService manages accounts, sessions and the login audit trail
type IdentityService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, actorID string) ([]models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
	UpdateRole(ctx context.Context, actorID, userID string, req *RoleUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, actorID, userID string) error
	LoginRecords(ctx context.Context, actorID string) ([]models.LoginRecord, error)
}

// QuestionService manages per-subject, per-difficulty quiz question buckets
type QuestionService interface {
	List(ctx context.Context, subjectID string, quizType models.QuizType) ([]models.QuizQuestion, error)
	Create(ctx context.Context, actorID, subjectID string, quizType models.QuizType, req *CreateQuestionRequest) (*models.QuizQuestion, error)
	Update(ctx context.Context, actorID, subjectID string, quizType models.QuizType, id int64, req *UpdateQuestionRequest) (*models.QuizQuestion, error)
	Delete(ctx context.Context, actorID, subjectID string, quizType models.QuizType, id int64) error
}

// QuizService scores submissions and manages the shared result history
type QuizService interface {
	Score(answers []int, questions []models.QuizQuestion) (*ScoreResult, error)
	Submit(ctx context.Context, studentID string, req *SubmitResultRequest) (*models.QuizResult, error)
	ListResults(ctx context.Context, actorID string) ([]models.QuizResult, error)
}

// ResourceService manages the educational resource library
type ResourceService interface {
	List(ctx context.Context) ([]models.Resource, error)
	Create(ctx context.Context, actorID string, req *CreateResourceRequest) (*models.Resource, error)
	Delete(ctx context.Context, actorID, resourceID string) error
	AddResponse(ctx context.Context, studentID, resourceID string, req *ResourceResponseRequest) (*models.Resource, error)
	IncrementDownloads(ctx context.Context, resourceID string) (*models.Resource, error)
}

// NewsService manages school news articles
type NewsService interface {
	List(ctx context.Context, category models.NewsCategory) ([]models.NewsArticle, error)
	GetByID(ctx context.Context, id string) (*models.NewsArticle, error)
	Create(ctx context.Context, actorID string, req *CreateNewsRequest) (*models.NewsArticle, error)
	Update(ctx context.Context, actorID, id string, req *UpdateNewsRequest) (*models.NewsArticle, error)
	Delete(ctx context.Context, actorID, id string) error
}

// ClassroomService manages classrooms and their student rosters
type ClassroomService interface {
	List(ctx context.Context) ([]models.Classroom, error)
	ListForTeacher(ctx context.Context, teacherID string) ([]models.Classroom, error)
	Create(ctx context.Context, actorID string, req *CreateClassroomRequest) (*models.Classroom, error)
	Delete(ctx context.Context, actorID, classroomID string) error
	ListStudents(ctx context.Context, classroomID string) ([]models.ClassroomStudent, error)
	AddStudent(ctx context.Context, actorID, classroomID string, req *AddStudentRequest) (*models.ClassroomStudent, error)
	RemoveStudent(ctx context.Context, actorID, classroomID, studentID string) error
}

// NotificationService manages targeted and broadcast notifications
type NotificationService interface {
	Send(ctx context.Context, senderID string, req *SendNotificationRequest) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	Delete(ctx context.Context, actorID, notificationID string) error
}

// EnrollmentService manages per-user course enrollment lists
type EnrollmentService interface {
	List(ctx context.Context, userID string) ([]models.EnrolledCourse, error)
	Enroll(ctx context.Context, userID string, req *EnrollRequest) (*models.EnrolledCourse, error)
	Unenroll(ctx context.Context, userID, subjectID string) error
}

// ImportExportService moves quiz content and results through Excel workbooks
type ImportExportService interface {
	ExportResults(ctx context.Context, actorID string) ([]byte, error)
	ImportQuestions(ctx context.Context, actorID, subjectID string, quizType models.QuizType, r io.Reader) (int, error)
}

// ServiceManager provides access to all services and manages their lifecycle
type ServiceManager interface {
	Identity() IdentityService
	Question() QuestionService
	Quiz() QuizService
	Resource() ResourceService
	News() NewsService
	Classroom() ClassroomService
	Notification() NotificationService
	Enrollment() EnrollmentService
	ImportExport() ImportExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
