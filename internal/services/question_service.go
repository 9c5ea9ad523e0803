package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

type questionService struct {
	store     store.Store
	resolver  *auth.Resolver
	logger    *slog.Logger
	validator *validator.Validator
}

func NewQuestionService(s store.Store, resolver *auth.Resolver, logger *slog.Logger, v *validator.Validator) QuestionService {
	return &questionService{
		store:     s,
		resolver:  resolver,
		logger:    logger,
		validator: v,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *questionService) List(ctx context.Context, subjectID string, quizType models.QuizType) ([]models.QuizQuestion, error) {
	if !quizType.Valid() {
		return nil, NewValidationError("quiz_type", "must be a valid quiz type", quizType)
	}
	return store.ReadAll[models.QuizQuestion](ctx, s.store, store.QuizKey(subjectID, quizType)), nil
}

func (s *questionService) Create(ctx context.Context, actorID, subjectID string, quizType models.QuizType, req *CreateQuestionRequest) (*models.QuizQuestion, error) {
	s.logger.Info("Creating question", "actor_id", actorID, "subject_id", subjectID, "quiz_type", quizType)

	// Validate request with business rules
	if errors := s.validator.GetBusinessValidator().ValidateQuestionCreate(req); len(errors) > 0 {
		return nil, errors
	}
	if !quizType.Valid() {
		return nil, NewValidationError("quiz_type", "must be a valid quiz type", quizType)
	}

	// Check user permissions
	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(actorID, "", "question", "create", "insufficient role permissions")
	}

	key := store.QuizKey(subjectID, quizType)
	questions := store.ReadAll[models.QuizQuestion](ctx, s.store, key)

	question := models.QuizQuestion{
		ID:            time.Now().UnixMilli(),
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}

	questions = append(questions, question)
	if err := store.WriteAll(ctx, s.store, key, questions); err != nil {
		return nil, fmt.Errorf("failed to save questions: %w", err)
	}

	s.logger.Info("Question created", "question_id", question.ID, "subject_id", subjectID)
	return &question, nil
}

func (s *questionService) Update(ctx context.Context, actorID, subjectID string, quizType models.QuizType, id int64, req *UpdateQuestionRequest) (*models.QuizQuestion, error) {
	if errors := s.validator.GetBusinessValidator().ValidateQuestionUpdate(req); len(errors) > 0 {
		return nil, errors
	}
	if !quizType.Valid() {
		return nil, NewValidationError("quiz_type", "must be a valid quiz type", quizType)
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(actorID, fmt.Sprint(id), "question", "update", "insufficient role permissions")
	}

	key := store.QuizKey(subjectID, quizType)
	questions := store.ReadAll[models.QuizQuestion](ctx, s.store, key)

	for i := range questions {
		if questions[i].ID != id {
			continue
		}

		if req.Question != nil {
			questions[i].Question = *req.Question
		}
		if req.Options != nil {
			questions[i].Options = req.Options
		}
		if req.CorrectAnswer != nil {
			questions[i].CorrectAnswer = *req.CorrectAnswer
		}

		if err := store.WriteAll(ctx, s.store, key, questions); err != nil {
			return nil, fmt.Errorf("failed to save questions: %w", err)
		}

		s.logger.Info("Question updated", "question_id", id, "subject_id", subjectID)
		return &questions[i], nil
	}

	return nil, ErrQuestionNotFound
}

func (s *questionService) Delete(ctx context.Context, actorID, subjectID string, quizType models.QuizType, id int64) error {
	if !quizType.Valid() {
		return NewValidationError("quiz_type", "must be a valid quiz type", quizType)
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return NewPermissionError(actorID, fmt.Sprint(id), "question", "delete", "insufficient role permissions")
	}

	key := store.QuizKey(subjectID, quizType)
	questions := store.ReadAll[models.QuizQuestion](ctx, s.store, key)

	filtered := questions[:0]
	found := false
	for i := range questions {
		if questions[i].ID == id {
			found = true
			continue
		}
		filtered = append(filtered, questions[i])
	}
	if !found {
		return ErrQuestionNotFound
	}

	if err := store.WriteAll(ctx, s.store, key, filtered); err != nil {
		return fmt.Errorf("failed to save questions: %w", err)
	}

	s.logger.Info("Question deleted", "question_id", id, "subject_id", subjectID)
	return nil
}
