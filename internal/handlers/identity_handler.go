package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type IdentityHandler struct {
	BaseHandler
	service services.IdentityService
}

func NewIdentityHandler(service services.IdentityService, logger utils.Logger) *IdentityHandler {
	return &IdentityHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== PUBLIC ENDPOINTS =====

// Register creates a new account
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration request"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Conflict - email already registered"
// @Router /auth/register [post]
func (h *IdentityHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login authenticates an account and issues a session token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login request"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *IdentityHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ===== PROFILE ENDPOINTS =====

// Me returns the authenticated user's record
func (h *IdentityHandler) Me(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile fields
func (h *IdentityHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword rotates the authenticated user's password
func (h *IdentityHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// ===== ADMIN ENDPOINTS =====

// ListUsers returns every account (admin only)
func (h *IdentityHandler) ListUsers(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	users, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// GetUser returns one account by ID
func (h *IdentityHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUserRole changes an account's role (admin only)
func (h *IdentityHandler) UpdateUserRole(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account (admin only)
func (h *IdentityHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// ListLoginRecords returns the login audit trail (admin only)
func (h *IdentityHandler) ListLoginRecords(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	records, err := h.service.LoginRecords(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records, "total": len(records)})
}
