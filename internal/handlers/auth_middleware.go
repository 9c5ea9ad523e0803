package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/models"
)

// AuthMiddleware validates session tokens and loads the caller's identity
// into the request context.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth returns a Gin middleware that rejects unauthenticated requests
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := am.parseRequestToken(c)
		if !ok {
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("user_roles", claims.Roles)

		c.Next()
	}
}

// OptionalAuth loads identity when a valid token is present and continues
// anonymously otherwise. Used for routes with a guest fallback.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := am.tokens.Parse(tokenParts[1])
		if err == nil {
			c.Set("user_id", claims.Subject)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)
			c.Set("user_roles", claims.Roles)
		}

		c.Next()
	}
}

// RequireRoleMiddleware checks if the caller holds one of the required roles.
// Admins pass every check.
func (am *AuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, err := GetUserRolesFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "user role not found in context",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
	outer:
		for _, role := range roles {
			if role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
			for _, required := range requiredRoles {
				if role == required {
					hasRequiredRole = true
					break outer
				}
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (am *AuthMiddleware) parseRequestToken(c *gin.Context) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "authorization header missing",
		})
		c.Abort()
		return nil, false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "invalid authorization header format",
		})
		c.Abort()
		return nil, false
	}

	claims, err := am.tokens.Parse(tokenParts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: fmt.Sprintf("invalid token: %v", err),
		})
		c.Abort()
		return nil, false
	}

	return claims, true
}

// GetUserIDFromContext extracts user ID from Gin context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}

// GetUserRoleFromContext extracts the primary role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	userRole, exists := c.Get("user_role")
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := userRole.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}

	return role, nil
}

// GetUserRolesFromContext extracts the full role set from Gin context
func GetUserRolesFromContext(c *gin.Context) ([]models.UserRole, error) {
	userRoles, exists := c.Get("user_roles")
	if !exists {
		return nil, fmt.Errorf("user roles not found in context")
	}

	roles, ok := userRoles.([]models.UserRole)
	if !ok {
		return nil, fmt.Errorf("invalid user roles type in context")
	}

	return roles, nil
}
