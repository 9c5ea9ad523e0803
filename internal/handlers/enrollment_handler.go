package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

// EnrollmentHandler serves per-user course lists. Routes use optional
// authentication: anonymous callers share the guest bucket.
type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
}

func NewEnrollmentHandler(service services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// callerID returns the authenticated user ID or empty for guests
func (h *EnrollmentHandler) callerID(c *gin.Context) string {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		return ""
	}
	return userID
}

// ListEnrollments returns the caller's enrolled courses
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	courses, err := h.service.List(c.Request.Context(), h.callerID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses, "total": len(courses)})
}

// Enroll adds a course to the caller's enrollment list
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.service.Enroll(c.Request.Context(), h.callerID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// Unenroll removes a course from the caller's enrollment list
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	if err := h.service.Unenroll(c.Request.Context(), h.callerID(c), c.Param("subject_id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course unenrolled"})
}
