package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type ResourceHandler struct {
	BaseHandler
	service services.ResourceService
}

func NewResourceHandler(service services.ResourceService, logger utils.Logger) *ResourceHandler {
	return &ResourceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListResources returns the whole resource library
func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources, "total": len(resources)})
}

// CreateResource adds a resource to the library
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resource, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// DeleteResource removes a resource
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "resource deleted"})
}

// AddResponse records a student response under a resource
func (h *ResourceHandler) AddResponse(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.ResourceResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resource, err := h.service.AddResponse(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// RegisterDownload bumps a resource's download counter
func (h *ResourceHandler) RegisterDownload(c *gin.Context) {
	resource, err := h.service.IncrementDownloads(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}
