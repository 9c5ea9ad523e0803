package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

const resultsSheet = "Results"

type importExportService struct {
	store     store.Store
	resolver  *auth.Resolver
	logger    *slog.Logger
	validator *validator.Validator
}

func NewImportExportService(s store.Store, resolver *auth.Resolver, logger *slog.Logger, v *validator.Validator) ImportExportService {
	return &importExportService{
		store:     s,
		resolver:  resolver,
		logger:    logger,
		validator: v,
	}
}

// ExportResults writes the full quiz result history into an Excel workbook
func (s *importExportService) ExportResults(ctx context.Context, actorID string) ([]byte, error) {
	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(actorID, "", "quiz_result", "export", "insufficient role permissions")
	}

	results := store.ReadAll[models.QuizResult](ctx, s.store, store.KeyQuizResults)

	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := []string{"Student", "Subject", "Quiz Type", "Score (%)", "Questions", "Date"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(resultsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, result := range results {
		values := []interface{}{
			result.StudentName,
			result.SubjectID,
			string(result.QuizType),
			result.Score,
			result.TotalQuestions,
			result.Date.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Results exported", "actor_id", actorID, "count", len(results))
	return buf.Bytes(), nil
}

// ImportQuestions reads questions from an Excel workbook and appends them to
// the quiz bucket. Expected columns: question, four options, then the
// 1-based index of the correct option. The first row is a header and is
// skipped. Returns the number of imported questions.
func (s *importExportService) ImportQuestions(ctx context.Context, actorID, subjectID string, quizType models.QuizType, r io.Reader) (int, error) {
	if !quizType.Valid() {
		return 0, NewValidationError("quiz_type", "must be a valid quiz type", quizType)
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return 0, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return 0, NewPermissionError(actorID, "", "question", "import", "insufficient role permissions")
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, NewValidationError("workbook", "contains no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("failed to read rows: %w", err)
	}

	parsed := make([]models.QuizQuestion, 0, len(rows))
	base := time.Now().UnixMilli()
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < models.QuestionOptionCount+2 {
			return 0, NewValidationError(fmt.Sprintf("rows[%d]", i+1), "expected question, 4 options and correct option index", len(row))
		}

		question := strings.TrimSpace(row[0])
		options := make([]string, models.QuestionOptionCount)
		for j := 0; j < models.QuestionOptionCount; j++ {
			options[j] = strings.TrimSpace(row[j+1])
		}
		correct, err := strconv.Atoi(strings.TrimSpace(row[models.QuestionOptionCount+1]))
		if err != nil || correct < 1 || correct > models.QuestionOptionCount {
			return 0, NewValidationError(fmt.Sprintf("rows[%d]", i+1), "correct option must be between 1 and 4", row[models.QuestionOptionCount+1])
		}

		req := &CreateQuestionRequest{
			Question:      question,
			Options:       options,
			CorrectAnswer: correct - 1,
		}
		if errors := s.validator.GetBusinessValidator().ValidateQuestionCreate(req); len(errors) > 0 {
			return 0, errors
		}

		parsed = append(parsed, models.QuizQuestion{
			ID:            base + int64(len(parsed)),
			Question:      question,
			Options:       options,
			CorrectAnswer: correct - 1,
		})
	}

	if len(parsed) == 0 {
		return 0, NewValidationError("workbook", "contains no question rows", nil)
	}

	key := store.QuizKey(subjectID, quizType)
	questions := store.ReadAll[models.QuizQuestion](ctx, s.store, key)
	questions = append(questions, parsed...)
	if err := store.WriteAll(ctx, s.store, key, questions); err != nil {
		return 0, fmt.Errorf("failed to save questions: %w", err)
	}

	s.logger.Info("Questions imported",
		"actor_id", actorID,
		"subject_id", subjectID,
		"quiz_type", quizType,
		"count", len(parsed))
	return len(parsed), nil
}
