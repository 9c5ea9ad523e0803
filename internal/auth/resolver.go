package auth

import (
	"strings"

	"github.com/edupercentage/platform-service/internal/models"
)

// Resolver derives effective permissions from a user record. Superuser emails
// come from configuration and are unconditionally both admin and teacher,
// regardless of the stored role or role set.
type Resolver struct {
	superusers map[string]struct{}
}

func NewResolver(superuserEmails []string) *Resolver {
	superusers := make(map[string]struct{}, len(superuserEmails))
	for _, email := range superuserEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			superusers[email] = struct{}{}
		}
	}
	return &Resolver{superusers: superusers}
}

// IsSuperuser reports whether email is on the configured allow-list.
func (r *Resolver) IsSuperuser(email string) bool {
	_, ok := r.superusers[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// IsAdmin reports whether the user holds admin permissions. An absent user is
// never admin.
func (r *Resolver) IsAdmin(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.Role == models.RoleAdmin || u.HasRole(models.RoleAdmin) || r.IsSuperuser(u.Email)
}

// IsTeacher reports whether the user holds teacher permissions. An absent
// user is never a teacher.
func (r *Resolver) IsTeacher(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.Role == models.RoleTeacher || u.HasRole(models.RoleTeacher) || r.IsSuperuser(u.Email)
}

// EffectiveRole returns the primary role the user acts under. Superusers act
// as admin no matter what is stored.
func (r *Resolver) EffectiveRole(u *models.User) models.UserRole {
	if u == nil {
		return models.RoleStudent
	}
	if r.IsSuperuser(u.Email) {
		return models.RoleAdmin
	}
	return u.Role
}

// EffectiveRoles returns the full role set the user acts under. Superusers
// always carry both admin and teacher.
func (r *Resolver) EffectiveRoles(u *models.User) []models.UserRole {
	if u == nil {
		return nil
	}
	if r.IsSuperuser(u.Email) {
		return []models.UserRole{models.RoleAdmin, models.RoleTeacher}
	}
	roles := make([]models.UserRole, 0, len(u.Roles)+1)
	roles = append(roles, u.Roles...)
	if !u.HasRole(u.Role) {
		roles = append(roles, u.Role)
	}
	return roles
}
