package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

const testPassword = "password123"

// testEnv bundles the collaborators every service constructor takes.
type testEnv struct {
	store     *store.MemoryStore
	resolver  *auth.Resolver
	tokens    *auth.TokenManager
	publisher *events.MockEventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		store:     store.NewMemoryStore(),
		resolver:  auth.NewResolver([]string{"liofisdimitris@gmail.com"}),
		tokens:    auth.NewTokenManager("test-secret", time.Hour),
		publisher: events.NewMockEventPublisher(logger),
		validator: validator.New(),
		logger:    logger,
	}
}

// seedUser writes a user straight into the collection, bypassing Register.
func (e *testEnv) seedUser(t *testing.T, id, email string, role models.UserRole) models.User {
	t.Helper()

	ctx := context.Background()
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := models.User{
		ID:           id,
		FirstName:    "Test",
		LastName:     id,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Roles:        []models.UserRole{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	users := store.ReadAll[models.User](ctx, e.store, store.KeyUsers)
	users = append(users, user)
	if err := store.WriteAll(ctx, e.store, store.KeyUsers, users); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

func (e *testEnv) seedQuestions(t *testing.T, subjectID string, quizType models.QuizType, questions []models.QuizQuestion) {
	t.Helper()

	if err := store.WriteAll(context.Background(), e.store, store.QuizKey(subjectID, quizType), questions); err != nil {
		t.Fatalf("Failed to seed questions: %v", err)
	}
}
