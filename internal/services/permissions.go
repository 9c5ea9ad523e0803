package services

import (
	"context"
	"strings"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
)

// findUser loads a user record from the users collection by ID
func findUser(ctx context.Context, s store.Store, id string) (*models.User, error) {
	users := store.ReadAll[models.User](ctx, s, store.KeyUsers)
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// findUserByEmail loads a user record by email, case-insensitively
func findUserByEmail(ctx context.Context, s store.Store, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users := store.ReadAll[models.User](ctx, s, store.KeyUsers)
	for i := range users {
		if strings.ToLower(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, ErrUserNotFound
}

// canManageContent reports whether the actor may create or modify shared
// content. Teachers and admins qualify; unknown actors never do.
func canManageContent(ctx context.Context, s store.Store, resolver *auth.Resolver, actorID string) (bool, error) {
	actor, err := findUser(ctx, s, actorID)
	if err != nil {
		if IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return resolver.IsTeacher(actor) || resolver.IsAdmin(actor), nil
}

// isAdminActor reports whether the actor holds admin permissions
func isAdminActor(ctx context.Context, s store.Store, resolver *auth.Resolver, actorID string) (bool, error) {
	actor, err := findUser(ctx, s, actorID)
	if err != nil {
		if IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return resolver.IsAdmin(actor), nil
}
