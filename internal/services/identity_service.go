package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edupercentage/platform-service/internal/auth"
	"github.com/edupercentage/platform-service/internal/events"
	"github.com/edupercentage/platform-service/internal/models"
	"github.com/edupercentage/platform-service/internal/store"
	"github.com/edupercentage/platform-service/internal/validator"
)

// loginDedupWindow collapses repeated logins of the same user into a single
// audit record.
const loginDedupWindow = 60 * time.Second

type identityService struct {
	store          store.Store
	resolver       *auth.Resolver
	tokens         *auth.TokenManager
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewIdentityService(s store.Store, resolver *auth.Resolver, tokens *auth.TokenManager, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) IdentityService {
	return &identityService{
		store:          s,
		resolver:       resolver,
		tokens:         tokens,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

// ===== ACCOUNT LIFECYCLE =====

func (s *identityService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	s.logger.Info("Registering user", "email", req.Email, "role", req.Role)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	users := store.ReadAll[models.User](ctx, s.store, store.KeyUsers)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	for i := range users {
		if strings.ToLower(users[i].Email) == email {
			return nil, ErrEmailTaken
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Roles:        []models.UserRole{req.Role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	users = append(users, user)
	if err := store.WriteAll(ctx, s.store, store.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewEvent(events.EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})); err != nil {
		s.logger.Error("Failed to publish registration event", "error", err, "user_id", user.ID)
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return s.buildAuthResponse(&user)
}

func (s *identityService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := findUserByEmail(ctx, s.store, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	s.recordLogin(ctx, user)

	if err := s.eventPublisher.Publish(ctx, events.NewEvent(events.EventUserLoggedIn, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})); err != nil {
		s.logger.Error("Failed to publish login event", "error", err, "user_id", user.ID)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)
	return s.buildAuthResponse(user)
}

// recordLogin appends to the login audit trail. Logins of the same user
// within the dedup window do not produce a second record.
func (s *identityService) recordLogin(ctx context.Context, user *models.User) {
	records := store.ReadAll[models.LoginRecord](ctx, s.store, store.KeyLoginRecords)
	now := time.Now()

	for i := len(records) - 1; i >= 0; i-- {
		if records[i].UserID != user.ID {
			continue
		}
		if now.Sub(records[i].Timestamp) < loginDedupWindow {
			return
		}
		break
	}

	records = append(records, models.LoginRecord{
		UserID:    user.ID,
		UserName:  user.FullName(),
		Email:     user.Email,
		Role:      s.resolver.EffectiveRole(user),
		Timestamp: now,
	})
	if err := store.WriteAll(ctx, s.store, store.KeyLoginRecords, records); err != nil {
		s.logger.Error("Failed to save login record", "error", err, "user_id", user.ID)
	}
}

func (s *identityService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	role := s.resolver.EffectiveRole(user)
	roles := s.resolver.EffectiveRoles(user)

	token, err := s.tokens.Issue(user, role, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		User:  user.Sanitized(),
		Token: token,
		Role:  role,
		Roles: roles,
	}, nil
}

// ===== LOOKUPS =====

func (s *identityService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := findUser(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *identityService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := findUserByEmail(ctx, s.store, email)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *identityService) List(ctx context.Context, actorID string) ([]models.User, error) {
	isAdmin, err := isAdminActor(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, NewPermissionError(actorID, "", "user", "list", "insufficient role permissions")
	}

	users := store.ReadAll[models.User](ctx, s.store, store.KeyUsers)
	out := make([]models.User, 0, len(users))
	for i := range users {
		out = append(out, *users[i].Sanitized())
	}
	return out, nil
}

// ===== ACCOUNT UPDATES =====

func (s *identityService) UpdateProfile(ctx context.Context, userID string, req *ProfileUpdateRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	users := store.ReadAll[models.User](ctx, s.store, store.KeyUsers)
	for i := range users {
		if users[i].ID != userID {
			continue
		}

		if req.FirstName != nil {
			users[i].FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			users[i].LastName = strings.TrimSpace(*req.LastName)
		}
		if req.ProfileImage != nil {
			users[i].ProfileImage = req.ProfileImage
		}
		users[i].UpdatedAt = time.Now()

		if err := store.WriteAll(ctx, s.store, store.KeyUsers, users); err != nil {
			return nil, fmt.Errorf("failed to save user: %w", err)
		}

		s.logger.Info("Profile updated", "user_id", userID)
		return users[i].Sanitized(), nil
	}

	return nil, ErrUserNotFound
}

func (s *identityService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	users := store.ReadAll[models.User](ctx, s.store, store.KeyUsers)
	for i := range users {
		if users[i].ID != userID {
			continue
		}

		if !auth.CheckPassword(users[i].PasswordHash, req.CurrentPassword) {
			return ErrInvalidCredentials
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		users[i].PasswordHash = hash
		users[i].UpdatedAt = time.Now()

		if err := store.WriteAll(ctx, s.store, store.KeyUsers, users); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		s.logger.Info("Password changed", "user_id", userID)
		return nil
	}

	return ErrUserNotFound
}

// UpdateRole changes a user's primary role and adds it to the role set. The
// previous set entries are kept, so elevating a teacher to admin leaves the
// teacher tag in place.
func (s *identityService) UpdateRole(ctx context.Context, actorID, userID string, req *RoleUpdateRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	isAdmin, err := isAdminActor(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, NewPermissionError(actorID, userID, "user", "update_role", "insufficient role permissions")
	}

	users := store.ReadAll[models.User](ctx, s.store, store.KeyUsers)
	for i := range users {
		if users[i].ID != userID {
			continue
		}

		users[i].Role = req.Role
		if !users[i].HasRole(req.Role) {
			users[i].Roles = append(users[i].Roles, req.Role)
		}
		users[i].UpdatedAt = time.Now()

		if err := store.WriteAll(ctx, s.store, store.KeyUsers, users); err != nil {
			return nil, fmt.Errorf("failed to save user: %w", err)
		}

		s.logger.Info("Role updated", "user_id", userID, "role", req.Role, "actor_id", actorID)
		return users[i].Sanitized(), nil
	}

	return nil, ErrUserNotFound
}

func (s *identityService) Delete(ctx context.Context, actorID, userID string) error {
	isAdmin, err := isAdminActor(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return NewPermissionError(actorID, userID, "user", "delete", "insufficient role permissions")
	}

	users := store.ReadAll[models.User](ctx, s.store, store.KeyUsers)
	filtered := users[:0]
	found := false
	for i := range users {
		if users[i].ID == userID {
			found = true
			continue
		}
		filtered = append(filtered, users[i])
	}
	if !found {
		return ErrUserNotFound
	}

	if err := store.WriteAll(ctx, s.store, store.KeyUsers, filtered); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	s.logger.Info("User deleted", "user_id", userID, "actor_id", actorID)
	return nil
}

// ===== AUDIT =====

func (s *identityService) LoginRecords(ctx context.Context, actorID string) ([]models.LoginRecord, error) {
	isAdmin, err := isAdminActor(ctx, s.store, s.resolver, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, NewPermissionError(actorID, "", "login_record", "list", "insufficient role permissions")
	}

	return store.ReadAll[models.LoginRecord](ctx, s.store, store.KeyLoginRecords), nil
}
