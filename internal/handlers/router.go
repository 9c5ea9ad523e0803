package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type HandlerManager struct {
	identityHandler     *IdentityHandler
	questionHandler     *QuestionHandler
	quizHandler         *QuizHandler
	resourceHandler     *ResourceHandler
	newsHandler         *NewsHandler
	classroomHandler    *ClassroomHandler
	notificationHandler *NotificationHandler
	enrollmentHandler   *EnrollmentHandler
	authMiddleware      *AuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		identityHandler:     NewIdentityHandler(serviceManager.Identity(), logger),
		questionHandler:     NewQuestionHandler(serviceManager.Question(), serviceManager.ImportExport(), logger),
		quizHandler:         NewQuizHandler(serviceManager.Quiz(), serviceManager.ImportExport(), logger),
		resourceHandler:     NewResourceHandler(serviceManager.Resource(), logger),
		newsHandler:         NewNewsHandler(serviceManager.News(), logger),
		classroomHandler:    NewClassroomHandler(serviceManager.Classroom(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		enrollmentHandler:   NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		authMiddleware:      NewAuthMiddleware(tokens),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public authentication routes
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", hm.identityHandler.Register)
		authRoutes.POST("/login", hm.identityHandler.Login)
	}

	// Enrollment routes share a guest bucket for anonymous callers
	enrollments := v1.Group("/enrollments")
	enrollments.Use(hm.authMiddleware.OptionalAuth())
	{
		enrollments.GET("", hm.enrollmentHandler.ListEnrollments)
		enrollments.POST("", hm.enrollmentHandler.Enroll)
		enrollments.DELETE("/:subject_id", hm.enrollmentHandler.Unenroll)
	}

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.RequireAuth())
	{
		// User routes
		users := authed.Group("/users")
		{
			users.GET("/me", hm.identityHandler.Me)
			users.PUT("/me", hm.identityHandler.UpdateProfile)
			users.PUT("/me/password", hm.identityHandler.ChangePassword)
			users.GET("/:id", hm.identityHandler.GetUser)

			// Admin only
			users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.identityHandler.ListUsers)
			users.PUT("/:id/role", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.identityHandler.UpdateUserRole)
			users.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.identityHandler.DeleteUser)
		}

		// Login audit trail - Admins only
		authed.GET("/login-records", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.identityHandler.ListLoginRecords)

		// Quiz question routes, bucketed per subject and quiz type
		quizzes := authed.Group("/subjects/:subject_id/quizzes/:quiz_type")
		{
			quizzes.GET("/questions", hm.questionHandler.ListQuestions)

			// Content management - Teachers and Admins only
			quizzes.POST("/questions", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.questionHandler.CreateQuestion)
			quizzes.PUT("/questions/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.questionHandler.UpdateQuestion)
			quizzes.DELETE("/questions/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.questionHandler.DeleteQuestion)
			quizzes.POST("/questions/import", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.questionHandler.ImportQuestions)
		}

		// Quiz result routes
		quizResults := authed.Group("/quiz-results")
		{
			quizResults.POST("", hm.quizHandler.SubmitResult)
			quizResults.GET("", hm.quizHandler.ListResults)
			quizResults.GET("/export", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.quizHandler.ExportResults)
		}

		// Resource routes
		resources := authed.Group("/resources")
		{
			resources.GET("", hm.resourceHandler.ListResources)
			resources.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.resourceHandler.CreateResource)
			resources.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.resourceHandler.DeleteResource)
			resources.POST("/:id/responses", hm.resourceHandler.AddResponse)
			resources.POST("/:id/downloads", hm.resourceHandler.RegisterDownload)
		}

		// News routes
		news := authed.Group("/news")
		{
			news.GET("", hm.newsHandler.ListArticles)
			news.GET("/:id", hm.newsHandler.GetArticle)
			news.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.newsHandler.CreateArticle)
			news.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.newsHandler.UpdateArticle)
			news.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.newsHandler.DeleteArticle)
		}

		// Classroom routes - Teachers and Admins only
		classrooms := authed.Group("/classrooms")
		classrooms.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin))
		{
			classrooms.GET("", hm.classroomHandler.ListClassrooms)
			classrooms.GET("/mine", hm.classroomHandler.ListMyClassrooms)
			classrooms.POST("", hm.classroomHandler.CreateClassroom)
			classrooms.DELETE("/:id", hm.classroomHandler.DeleteClassroom)
			classrooms.GET("/:id/students", hm.classroomHandler.ListStudents)
			classrooms.POST("/:id/students", hm.classroomHandler.AddStudent)
			classrooms.DELETE("/:id/students/:student_id", hm.classroomHandler.RemoveStudent)
		}

		// Notification routes
		notifications := authed.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.notificationHandler.SendNotification)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkRead)
			notifications.DELETE("/:id", hm.notificationHandler.DeleteNotification)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "edupercentage-service",
		})
	})
}
