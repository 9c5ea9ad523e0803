package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	service      services.QuizService
	importExport services.ImportExportService
}

func NewQuizHandler(service services.QuizService, importExport services.ImportExportService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:  NewBaseHandler(logger),
		service:      service,
		importExport: importExport,
	}
}

// SubmitResult scores an answer sheet and appends it to the result history
// @Summary Submit quiz answers
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body services.SubmitResultRequest true "Quiz submission"
// @Success 201 {object} models.QuizResult
// @Failure 422 {object} ErrorResponse "Quiz has no questions"
// @Router /quizzes/submit [post]
func (h *QuizHandler) SubmitResult(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListResults returns quiz results visible to the caller, optionally narrowed
// to one subject via the subject_id query parameter
func (h *QuizHandler) ListResults(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	results, err := h.service.ListResults(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if subjectID := c.Query("subject_id"); subjectID != "" {
		filtered := results[:0]
		for i := range results {
			if results[i].SubjectID == subjectID {
				filtered = append(filtered, results[i])
			}
		}
		results = filtered
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "total": len(results)})
}

// ExportResults streams the result history as an Excel workbook
func (h *QuizHandler) ExportResults(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	data, err := h.importExport.ExportResults(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_results_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
