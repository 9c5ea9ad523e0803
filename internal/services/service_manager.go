package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Global settings
	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	store          store.Store
	resolver       *auth.Resolver
	tokens         *auth.TokenManager
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	config         ServiceManagerConfig

	// Service instances
	identityService     IdentityService
	questionService     QuestionService
	quizService         QuizService
	resourceService     ResourceService
	newsService         NewsService
	classroomService    ClassroomService
	notificationService NotificationService
	enrollmentService   EnrollmentService
	importExportService ImportExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(s store.Store, resolver *auth.Resolver, tokens *auth.TokenManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		store:          s,
		resolver:       resolver,
		tokens:         tokens,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
		config:         config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(s store.Store, resolver *auth.Resolver, tokens *auth.TokenManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,
		DefaultTimeout:     30 * time.Second,
	}
	return NewServiceManager(s, resolver, tokens, publisher, logger, v, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.identityService = NewIdentityService(sm.store, sm.resolver, sm.tokens, sm.eventPublisher, sm.logger, sm.validator)
	sm.logger.Info("Identity service initialized")

	sm.questionService = NewQuestionService(sm.store, sm.resolver, sm.logger, sm.validator)
	sm.logger.Info("Question service initialized")

	sm.quizService = NewQuizService(sm.store, sm.resolver, sm.eventPublisher, sm.logger, sm.validator)
	sm.logger.Info("Quiz service initialized")

	sm.resourceService = NewResourceService(sm.store, sm.resolver, sm.eventPublisher, sm.logger, sm.validator)
	sm.logger.Info("Resource service initialized")

	sm.newsService = NewNewsService(sm.store, sm.resolver, sm.eventPublisher, sm.logger, sm.validator)
	sm.logger.Info("News service initialized")

	sm.classroomService = NewClassroomService(sm.store, sm.resolver, sm.logger, sm.validator)
	sm.logger.Info("Classroom service initialized")

	sm.notificationService = NewNotificationService(sm.store, sm.resolver, sm.eventPublisher, sm.logger, sm.validator)
	sm.logger.Info("Notification service initialized")

	sm.enrollmentService = NewEnrollmentService(sm.store, sm.eventPublisher, sm.logger, sm.validator)
	sm.logger.Info("Enrollment service initialized")

	sm.importExportService = NewImportExportService(sm.store, sm.resolver, sm.logger, sm.validator)
	sm.logger.Info("ImportExport service initialized")

	// Validate backing store is reachable before serving
	if err := sm.store.Ping(ctx); err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Identity() IdentityService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.identityService
}

func (sm *serviceManager) Question() QuestionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.questionService
}

func (sm *serviceManager) Quiz() QuizService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.quizService
}

func (sm *serviceManager) Resource() ResourceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.resourceService
}

func (sm *serviceManager) News() NewsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.newsService
}

func (sm *serviceManager) Classroom() ClassroomService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.classroomService
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.notificationService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.enrollmentService
}

func (sm *serviceManager) ImportExport() ImportExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.importExportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.store.Ping(ctx); err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.eventPublisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}
	if err := sm.store.Close(); err != nil {
		sm.logger.Error("Failed to close store", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// IsInitialized returns whether the service manager has been initialized
func (sm *serviceManager) IsInitialized() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.initialized
}
