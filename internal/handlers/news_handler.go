package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type NewsHandler struct {
	BaseHandler
	service services.NewsService
}

func NewNewsHandler(service services.NewsService, logger utils.Logger) *NewsHandler {
	return &NewsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListArticles returns published articles newest first, optionally filtered
// by the category query parameter
func (h *NewsHandler) ListArticles(c *gin.Context) {
	category := models.NewsCategory(c.Query("category"))
	articles, err := h.service.List(c.Request.Context(), category)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "total": len(articles)})
}

// GetArticle returns one article by ID
func (h *NewsHandler) GetArticle(c *gin.Context) {
	article, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// CreateArticle publishes a news article
func (h *NewsHandler) CreateArticle(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	article, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

// UpdateArticle edits a published article
func (h *NewsHandler) UpdateArticle(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	article, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// DeleteArticle removes an article
func (h *NewsHandler) DeleteArticle(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}
