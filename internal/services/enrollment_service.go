package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

// enrollmentService keeps one course list per user. An empty user ID falls
// back to the shared guest bucket.
type enrollmentService struct {
	store          store.Store
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewEnrollmentService(s store.Store, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) EnrollmentService {
	return &enrollmentService{
		store:          s,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

func (s *enrollmentService) List(ctx context.Context, userID string) ([]models.EnrolledCourse, error) {
	return store.ReadAll[models.EnrolledCourse](ctx, s.store, store.EnrolledCoursesKey(userID)), nil
}

func (s *enrollmentService) Enroll(ctx context.Context, userID string, req *EnrollRequest) (*models.EnrolledCourse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	key := store.EnrolledCoursesKey(userID)
	courses := store.ReadAll[models.EnrolledCourse](ctx, s.store, key)
	for i := range courses {
		if courses[i].SubjectID == req.SubjectID {
			return nil, ErrAlreadyEnrolled
		}
	}

	course := models.EnrolledCourse{
		SubjectID:  req.SubjectID,
		Title:      req.Title,
		EnrolledAt: time.Now(),
	}

	courses = append(courses, course)
	if err := store.WriteAll(ctx, s.store, key, courses); err != nil {
		return nil, fmt.Errorf("failed to save enrollments: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewEvent(events.EventStudentEnrolled, map[string]interface{}{
		"user_id":    userID,
		"subject_id": course.SubjectID,
	})); err != nil {
		s.logger.Error("Failed to publish enrollment event", "error", err, "subject_id", course.SubjectID)
	}

	s.logger.Info("Course enrolled", "user_id", userID, "subject_id", course.SubjectID)
	return &course, nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, userID, subjectID string) error {
	key := store.EnrolledCoursesKey(userID)
	courses := store.ReadAll[models.EnrolledCourse](ctx, s.store, key)

	filtered := courses[:0]
	found := false
	for i := range courses {
		if courses[i].SubjectID == subjectID {
			found = true
			continue
		}
		filtered = append(filtered, courses[i])
	}
	if !found {
		return ErrEnrollmentNotFound
	}

	if err := store.WriteAll(ctx, s.store, key, filtered); err != nil {
		return fmt.Errorf("failed to save enrollments: %w", err)
	}

	s.logger.Info("Course unenrolled", "user_id", userID, "subject_id", subjectID)
	return nil
}
