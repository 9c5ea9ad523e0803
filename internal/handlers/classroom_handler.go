package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type ClassroomHandler struct {
	BaseHandler
	service services.ClassroomService
}

func NewClassroomHandler(service services.ClassroomService, logger utils.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== CLASSROOM ENDPOINTS =====

// ListClassrooms returns every classroom
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	classrooms, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"classrooms": classrooms, "total": len(classrooms)})
}

// ListMyClassrooms returns the caller's classrooms
func (h *ClassroomHandler) ListMyClassrooms(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	classrooms, err := h.service.ListForTeacher(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"classrooms": classrooms, "total": len(classrooms)})
}

// CreateClassroom creates a classroom owned by the caller
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	classroom, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, classroom)
}

// DeleteClassroom removes a classroom and its roster
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "classroom deleted"})
}

// ===== ROSTER ENDPOINTS =====

// ListStudents returns a classroom roster
func (h *ClassroomHandler) ListStudents(c *gin.Context) {
	students, err := h.service.ListStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students, "total": len(students)})
}

// AddStudent appends a student to a classroom roster
func (h *ClassroomHandler) AddStudent(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.service.AddStudent(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// RemoveStudent drops a student from a classroom roster
func (h *ClassroomHandler) RemoveStudent(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveStudent(c.Request.Context(), userID, c.Param("id"), c.Param("student_id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "student removed"})
}
