package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	service      services.QuestionService
	importExport services.ImportExportService
}

func NewQuestionHandler(service services.QuestionService, importExport services.ImportExportService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:  NewBaseHandler(logger),
		service:      service,
		importExport: importExport,
	}
}

// ===== CORE CRUD ENDPOINTS =====

// ListQuestions returns the question bucket for one subject and quiz type
// @Summary List quiz questions
// @Tags questions
// @Produce json
// @Param subject_id path string true "Subject ID"
// @Param quiz_type path string true "Quiz type"
// @Success 200 {array} models.QuizQuestion
// @Router /subjects/{subject_id}/quizzes/{quiz_type}/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.service.List(c.Request.Context(), c.Param("subject_id"), models.QuizType(c.Param("quiz_type")))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "total": len(questions)})
}

// CreateQuestion adds a question to a bucket
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.service.Create(c.Request.Context(), userID, c.Param("subject_id"), models.QuizType(c.Param("quiz_type")), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion edits a question in place
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid question ID",
		})
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.service.Update(c.Request.Context(), userID, c.Param("subject_id"), models.QuizType(c.Param("quiz_type")), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question from a bucket
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid question ID",
		})
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("subject_id"), models.QuizType(c.Param("quiz_type")), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}

// ===== IMPORT =====

// ImportQuestions loads questions into a bucket from an uploaded Excel file
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	count, err := h.importExport.ImportQuestions(c.Request.Context(), userID, c.Param("subject_id"), models.QuizType(c.Param("quiz_type")), file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imported": count})
}
