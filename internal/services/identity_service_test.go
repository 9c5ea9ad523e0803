package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
)

func newIdentityService(env *testEnv) IdentityService {
	return NewIdentityService(env.store, env.resolver, env.tokens, env.publisher, env.logger, env.validator)
}

func TestIdentityService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates_Account_And_Publishes_Event", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)

		resp, err := service.Register(ctx, &RegisterRequest{
			FirstName: "Maria",
			LastName:  "Papadopoulou",
			Email:     "Maria@Example.com",
			Password:  "supersecret",
			Role:      models.RoleStudent,
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if resp.Token == "" {
			t.Error("Expected a session token")
		}
		if resp.User.Email != "maria@example.com" {
			t.Errorf("Expected lowercased email, got %s", resp.User.Email)
		}
		if resp.User.PasswordHash != "" {
			t.Error("Expected sanitized user in response")
		}
		if resp.Role != models.RoleStudent {
			t.Errorf("Role = %s, want student", resp.Role)
		}

		users := store.ReadAll[models.User](ctx, env.store, store.KeyUsers)
		if len(users) != 1 {
			t.Fatalf("Expected 1 stored user, got %d", len(users))
		}
		if users[0].PasswordHash == "" || users[0].PasswordHash == "supersecret" {
			t.Error("Expected stored password to be hashed")
		}

		published := env.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventUserRegistered {
			t.Fatalf("Expected one registration event, got %+v", published)
		}
	})

	t.Run("Duplicate_Email_Is_Rejected", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "u1", "taken@example.com", models.RoleStudent)

		_, err := service.Register(ctx, &RegisterRequest{
			FirstName: "Other",
			LastName:  "User",
			Email:     "TAKEN@example.com",
			Password:  "supersecret",
			Role:      models.RoleStudent,
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("Expected ErrEmailTaken, got %v", err)
		}

		users := store.ReadAll[models.User](ctx, env.store, store.KeyUsers)
		if len(users) != 1 {
			t.Fatalf("Expected no new user, got %d", len(users))
		}
	})

	t.Run("Invalid_Request_Is_Rejected", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)

		_, err := service.Register(ctx, &RegisterRequest{
			FirstName: "Short",
			LastName:  "Password",
			Email:     "short@example.com",
			Password:  "short",
			Role:      models.RoleStudent,
		})
		if err == nil {
			t.Fatal("Expected validation error for short password")
		}
	})
}

func TestIdentityService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid_Credentials_Return_Token", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "u1", "user@example.com", models.RoleTeacher)

		resp, err := service.Login(ctx, &LoginRequest{Email: "user@example.com", Password: testPassword})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Role != models.RoleTeacher {
			t.Errorf("Role = %s, want teacher", resp.Role)
		}

		claims, err := env.tokens.Parse(resp.Token)
		if err != nil {
			t.Fatalf("Failed to parse issued token: %v", err)
		}
		if claims.Subject != "u1" {
			t.Errorf("Token subject = %s, want u1", claims.Subject)
		}
	})

	t.Run("Wrong_Password_Is_Rejected", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "u1", "user@example.com", models.RoleStudent)

		if _, err := service.Login(ctx, &LoginRequest{Email: "user@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Unknown_Email_Is_Rejected", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)

		if _, err := service.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: testPassword}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Superuser_Gets_Admin_Permissions", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "root", "liofisdimitris@gmail.com", models.RoleStudent)

		resp, err := service.Login(ctx, &LoginRequest{Email: "liofisdimitris@gmail.com", Password: testPassword})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Role != models.RoleAdmin {
			t.Errorf("Role = %s, want admin", resp.Role)
		}
		if len(resp.Roles) != 2 || resp.Roles[0] != models.RoleAdmin || resp.Roles[1] != models.RoleTeacher {
			t.Errorf("Roles = %v, want [admin teacher]", resp.Roles)
		}
	})

	t.Run("Repeated_Logins_Produce_One_Record", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "u1", "user@example.com", models.RoleStudent)

		for i := 0; i < 3; i++ {
			if _, err := service.Login(ctx, &LoginRequest{Email: "user@example.com", Password: testPassword}); err != nil {
				t.Fatalf("Login %d failed: %v", i, err)
			}
		}

		records := store.ReadAll[models.LoginRecord](ctx, env.store, store.KeyLoginRecords)
		if len(records) != 1 {
			t.Fatalf("Expected 1 login record after dedup, got %d", len(records))
		}
	})

	t.Run("Old_Record_Does_Not_Suppress_New_One", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		user := env.seedUser(t, "u1", "user@example.com", models.RoleStudent)

		stale := []models.LoginRecord{{
			UserID:    user.ID,
			UserName:  user.FullName(),
			Email:     user.Email,
			Role:      models.RoleStudent,
			Timestamp: time.Now().Add(-5 * time.Minute),
		}}
		if err := store.WriteAll(ctx, env.store, store.KeyLoginRecords, stale); err != nil {
			t.Fatalf("Failed to seed record: %v", err)
		}

		if _, err := service.Login(ctx, &LoginRequest{Email: "user@example.com", Password: testPassword}); err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		records := store.ReadAll[models.LoginRecord](ctx, env.store, store.KeyLoginRecords)
		if len(records) != 2 {
			t.Fatalf("Expected 2 login records, got %d", len(records))
		}
	})
}

func TestIdentityService_AccountManagement(t *testing.T) {
	ctx := context.Background()

	t.Run("List_Requires_Admin", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "s1", "student@example.com", models.RoleStudent)

		if _, err := service.List(ctx, "s1"); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
	})

	t.Run("List_Sanitizes_Users", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "a1", "admin@example.com", models.RoleAdmin)
		env.seedUser(t, "s1", "student@example.com", models.RoleStudent)

		users, err := service.List(ctx, "a1")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(users) != 2 {
			t.Fatalf("Expected 2 users, got %d", len(users))
		}
		for _, u := range users {
			if u.PasswordHash != "" {
				t.Errorf("Password hash leaked for %s", u.ID)
			}
		}
	})

	t.Run("ChangePassword_Verifies_Current", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "u1", "user@example.com", models.RoleStudent)

		err := service.ChangePassword(ctx, "u1", &ChangePasswordRequest{
			CurrentPassword: "not-the-password",
			NewPassword:     "newsecret123",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
		}

		if err := service.ChangePassword(ctx, "u1", &ChangePasswordRequest{
			CurrentPassword: testPassword,
			NewPassword:     "newsecret123",
		}); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}

		if _, err := service.Login(ctx, &LoginRequest{Email: "user@example.com", Password: "newsecret123"}); err != nil {
			t.Fatalf("Login with new password failed: %v", err)
		}
	})

	t.Run("UpdateRole_Keeps_Previous_Tags", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "a1", "admin@example.com", models.RoleAdmin)
		env.seedUser(t, "t1", "teacher@example.com", models.RoleTeacher)

		updated, err := service.UpdateRole(ctx, "a1", "t1", &RoleUpdateRequest{Role: models.RoleAdmin})
		if err != nil {
			t.Fatalf("UpdateRole failed: %v", err)
		}
		if updated.Role != models.RoleAdmin {
			t.Errorf("Role = %s, want admin", updated.Role)
		}
		if !updated.HasRole(models.RoleTeacher) || !updated.HasRole(models.RoleAdmin) {
			t.Errorf("Roles = %v, want teacher and admin", updated.Roles)
		}
	})

	t.Run("UpdateRole_Requires_Admin", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "t1", "teacher@example.com", models.RoleTeacher)
		env.seedUser(t, "s1", "student@example.com", models.RoleStudent)

		if _, err := service.UpdateRole(ctx, "t1", "s1", &RoleUpdateRequest{Role: models.RoleTeacher}); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}
	})

	t.Run("Delete_Requires_Admin_And_Removes_Only_Target", func(t *testing.T) {
		env := newTestEnv(t)
		service := newIdentityService(env)
		env.seedUser(t, "a1", "admin@example.com", models.RoleAdmin)
		env.seedUser(t, "s1", "one@example.com", models.RoleStudent)
		env.seedUser(t, "s2", "two@example.com", models.RoleStudent)

		if err := service.Delete(ctx, "s2", "s1"); !IsPermissionError(err) {
			t.Fatalf("Expected permission error, got %v", err)
		}

		if err := service.Delete(ctx, "a1", "s1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		users := store.ReadAll[models.User](ctx, env.store, store.KeyUsers)
		if len(users) != 2 {
			t.Fatalf("Expected 2 remaining users, got %d", len(users))
		}
		for _, u := range users {
			if u.ID == "s1" {
				t.Error("Deleted user still present")
			}
		}

		if err := service.Delete(ctx, "a1", "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
