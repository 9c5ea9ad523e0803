package auth

import (
	"testing"

	"github.com/edupercentage/platform-service/internal/models"
)

func TestResolver(t *testing.T) {
	resolver := NewResolver([]string{"liofisdimitris@gmail.com"})

	t.Run("Nil_User_Has_No_Permissions", func(t *testing.T) {
		if resolver.IsAdmin(nil) {
			t.Error("Expected nil user to not be admin")
		}
		if resolver.IsTeacher(nil) {
			t.Error("Expected nil user to not be teacher")
		}
	})

	t.Run("Superuser_Is_Admin_And_Teacher", func(t *testing.T) {
		u := &models.User{
			Email: "liofisdimitris@gmail.com",
			Role:  models.RoleStudent,
			Roles: []models.UserRole{models.RoleStudent},
		}

		if !resolver.IsAdmin(u) {
			t.Error("Expected superuser to be admin regardless of stored role")
		}
		if !resolver.IsTeacher(u) {
			t.Error("Expected superuser to be teacher regardless of stored role")
		}
		if resolver.EffectiveRole(u) != models.RoleAdmin {
			t.Errorf("Expected effective role admin, got %s", resolver.EffectiveRole(u))
		}

		roles := resolver.EffectiveRoles(u)
		if len(roles) != 2 || roles[0] != models.RoleAdmin || roles[1] != models.RoleTeacher {
			t.Errorf("Expected [admin teacher], got %v", roles)
		}
	})

	t.Run("Superuser_Match_Is_Case_Insensitive", func(t *testing.T) {
		u := &models.User{Email: "LiofisDimitris@Gmail.com", Role: models.RoleStudent}
		if !resolver.IsAdmin(u) {
			t.Error("Expected case-insensitive superuser match")
		}
	})

	t.Run("Stored_Role_Grants_Permission", func(t *testing.T) {
		teacher := &models.User{Email: "t@example.com", Role: models.RoleTeacher, Roles: []models.UserRole{models.RoleTeacher}}
		if !resolver.IsTeacher(teacher) {
			t.Error("Expected teacher role to grant teacher permission")
		}
		if resolver.IsAdmin(teacher) {
			t.Error("Expected teacher to not be admin")
		}
	})

	t.Run("Role_Set_Grants_Permission", func(t *testing.T) {
		// Primary tag teacher, elevated via the role set
		u := &models.User{
			Email: "elevated@example.com",
			Role:  models.RoleTeacher,
			Roles: []models.UserRole{models.RoleTeacher, models.RoleAdmin},
		}
		if !resolver.IsAdmin(u) {
			t.Error("Expected role set admin entry to grant admin permission")
		}
	})

	t.Run("Student_Has_No_Elevated_Permissions", func(t *testing.T) {
		student := &models.User{Email: "s@example.com", Role: models.RoleStudent, Roles: []models.UserRole{models.RoleStudent}}
		if resolver.IsAdmin(student) || resolver.IsTeacher(student) {
			t.Error("Expected student to have no elevated permissions")
		}
		if resolver.EffectiveRole(student) != models.RoleStudent {
			t.Errorf("Expected student effective role, got %s", resolver.EffectiveRole(student))
		}
	})
}

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-secret", 3600000000000)
	user := &models.User{
		ID:        "u1",
		FirstName: "Maria",
		LastName:  "Papadopoulou",
		Email:     "maria@example.com",
	}

	t.Run("Issue_And_Parse_Round_Trip", func(t *testing.T) {
		token, err := tm.Issue(user, models.RoleTeacher, []models.UserRole{models.RoleTeacher})
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		claims, err := tm.Parse(token)
		if err != nil {
			t.Fatalf("Failed to parse token: %v", err)
		}
		if claims.Subject != "u1" {
			t.Errorf("Expected subject u1, got %s", claims.Subject)
		}
		if claims.Role != models.RoleTeacher {
			t.Errorf("Expected role teacher, got %s", claims.Role)
		}
		if claims.Name != "Maria Papadopoulou" {
			t.Errorf("Expected full name, got %s", claims.Name)
		}
	})

	t.Run("Wrong_Secret_Is_Rejected", func(t *testing.T) {
		token, err := tm.Issue(user, models.RoleStudent, []models.UserRole{models.RoleStudent})
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		other := NewTokenManager("other-secret", 3600000000000)
		if _, err := other.Parse(token); err == nil {
			t.Error("Expected parse to fail with wrong secret")
		}
	})

	t.Run("Garbage_Is_Rejected", func(t *testing.T) {
		if _, err := tm.Parse("not.a.token"); err == nil {
			t.Error("Expected parse to fail for garbage input")
		}
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("Failed to hash: %v", err)
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("Expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("Expected wrong password to fail")
	}
}
