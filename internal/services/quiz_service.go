package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

type quizService struct {
	store          store.Store
	resolver       *auth.Resolver
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewQuizService(s store.Store, resolver *auth.Resolver, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) QuizService {
	return &quizService{
		store:          s,
		resolver:       resolver,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

// ===== SCORING =====

// Score grades an answer sheet against the question list. The score is the
// percentage of correct answers rounded to the nearest integer. An answer
// index outside the option range counts as wrong; extra answers beyond the
// question count are ignored.
func (s *quizService) Score(answers []int, questions []models.QuizQuestion) (*ScoreResult, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	correct := 0
	for i := range questions {
		if i < len(answers) && answers[i] == questions[i].CorrectAnswer {
			correct++
		}
	}

	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return &ScoreResult{
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: len(questions),
	}, nil
}

// ===== RESULT HISTORY =====

func (s *quizService) Submit(ctx context.Context, studentID string, req *SubmitResultRequest) (*models.QuizResult, error) {
	s.logger.Info("Submitting quiz result", "student_id", studentID, "subject_id", req.SubjectID, "quiz_type", req.QuizType)

	questions := store.ReadAll[models.QuizQuestion](ctx, s.store, store.QuizKey(req.SubjectID, req.QuizType))
	if errors := s.validator.GetBusinessValidator().ValidateResultSubmit(req, len(questions)); len(errors) > 0 {
		return nil, errors
	}

	scored, err := s.Score(req.Answers, questions)
	if err != nil {
		return nil, err
	}

	student, err := findUser(ctx, s.store, studentID)
	if err != nil {
		return nil, err
	}

	result := models.QuizResult{
		StudentID:      student.ID,
		StudentName:    student.FullName(),
		SubjectID:      req.SubjectID,
		QuizType:       req.QuizType,
		Score:          scored.Score,
		TotalQuestions: scored.TotalQuestions,
		Date:           time.Now(),
		Answers:        req.Answers,
	}

	results := store.ReadAll[models.QuizResult](ctx, s.store, store.KeyQuizResults)
	results = append(results, result)
	if err := store.WriteAll(ctx, s.store, store.KeyQuizResults, results); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewEvent(events.EventQuizSubmitted, map[string]interface{}{
		"student_id": result.StudentID,
		"subject_id": result.SubjectID,
		"quiz_type":  result.QuizType,
		"score":      result.Score,
	})); err != nil {
		s.logger.Error("Failed to publish quiz result event", "error", err, "student_id", studentID)
	}

	s.logger.Info("Quiz result saved",
		"student_id", result.StudentID,
		"subject_id", result.SubjectID,
		"score", result.Score)
	return &result, nil
}

// ListResults returns every result for teachers and admins, and only the
// actor's own results otherwise.
func (s *quizService) ListResults(ctx context.Context, actorID string) ([]models.QuizResult, error) {
	results := store.ReadAll[models.QuizResult](ctx, s.store, store.KeyQuizResults)

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if canManage {
		return results, nil
	}

	own := make([]models.QuizResult, 0)
	for i := range results {
		if results[i].StudentID == actorID {
			own = append(own, results[i])
		}
	}
	return own, nil
}
