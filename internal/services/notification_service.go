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

type notificationService struct {
	store          store.Store
	resolver       *auth.Resolver
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNotificationService(s store.Store, resolver *auth.Resolver, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) NotificationService {
	return &notificationService{
		store:          s,
		resolver:       resolver,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

// Send stores a notification. With no recipient fields set the notification
// is a broadcast visible to every user. A classroom target is expanded into
// the recipient ID list at send time; the classroom ID itself is kept on the
// record but plays no part in visibility.
func (s *notificationService) Send(ctx context.Context, senderID string, req *SendNotificationRequest) (*models.Notification, error) {
	s.logger.Info("Sending notification", "sender_id", senderID, "type", req.Type)

	if errors := s.validator.GetBusinessValidator().ValidateNotificationSend(req); len(errors) > 0 {
		return nil, errors
	}

	canManage, err := canManageContent(ctx, s.store, s.resolver, senderID)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !canManage {
		return nil, NewPermissionError(senderID, "", "notification", "send", "insufficient role permissions")
	}

	sender, err := findUser(ctx, s.store, senderID)
	if err != nil {
		return nil, err
	}

	recipientIDs := req.RecipientIDs
	if req.ClassroomID != nil && req.RecipientID == nil && len(recipientIDs) == 0 {
		recipientIDs, err = s.expandClassroom(ctx, *req.ClassroomID)
		if err != nil {
			return nil, err
		}
	}

	notification := models.Notification{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Message:      req.Message,
		Type:         req.Type,
		SenderID:     sender.ID,
		SenderName:   sender.FullName(),
		RecipientID:  req.RecipientID,
		RecipientIDs: recipientIDs,
		ClassroomID:  req.ClassroomID,
		Timestamp:    time.Now(),
	}

	notifications := store.ReadAll[models.Notification](ctx, s.store, store.KeyNotifications)
	notifications = append(notifications, notification)
	if err := store.WriteAll(ctx, s.store, store.KeyNotifications, notifications); err != nil {
		return nil, fmt.Errorf("failed to save notifications: %w", err)
	}

	eventType := events.EventNotificationSent
	if notification.RecipientID == nil && len(notification.RecipientIDs) == 0 {
		eventType = events.EventNotificationBroadcast
	}
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, map[string]interface{}{
		"notification_id": notification.ID,
		"sender_id":       notification.SenderID,
		"type":            notification.Type,
		"recipients":      len(notification.RecipientIDs),
	})); err != nil {
		s.logger.Error("Failed to publish notification event", "error", err, "notification_id", notification.ID)
	}

	s.logger.Info("Notification sent",
		"notification_id", notification.ID,
		"sender_id", notification.SenderID,
		"recipients", len(notification.RecipientIDs))
	return &notification, nil
}

// expandClassroom resolves a classroom roster to user IDs by matching roster
// emails against registered accounts. Roster entries without an account are
// skipped.
func (s *notificationService) expandClassroom(ctx context.Context, classroomID string) ([]string, error) {
	roster := store.ReadAll[models.ClassroomStudent](ctx, s.store, store.ClassroomStudentsKey(classroomID))
	if len(roster) == 0 {
		return nil, ErrClassroomNotFound
	}

	byEmail := make(map[string]string)
	users := store.ReadAll[models.User](ctx, s.store, store.KeyUsers)
	for i := range users {
		byEmail[strings.ToLower(users[i].Email)] = users[i].ID
	}

	ids := make([]string, 0, len(roster))
	for i := range roster {
		if id, ok := byEmail[strings.ToLower(roster[i].Email)]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ListForUser returns the notifications visible to the user: broadcasts plus
// anything addressed to them directly or through the recipient list.
func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications := store.ReadAll[models.Notification](ctx, s.store, store.KeyNotifications)

	visible := make([]models.Notification, 0)
	for i := range notifications {
		if notifications[i].VisibleTo(userID) {
			n := notifications[i]
			n.IsRead = n.ReadByUser(userID)
			visible = append(visible, n)
		}
	}
	return visible, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	notifications := store.ReadAll[models.Notification](ctx, s.store, store.KeyNotifications)
	for i := range notifications {
		if notifications[i].ID != notificationID {
			continue
		}
		if !notifications[i].VisibleTo(userID) {
			return NewPermissionError(userID, notificationID, "notification", "mark_read", "not a recipient")
		}

		if notifications[i].ReadByUser(userID) {
			return nil
		}
		notifications[i].ReadBy = append(notifications[i].ReadBy, userID)
		if err := store.WriteAll(ctx, s.store, store.KeyNotifications, notifications); err != nil {
			return fmt.Errorf("failed to save notifications: %w", err)
		}
		return nil
	}
	return ErrNotificationNotFound
}

func (s *notificationService) Delete(ctx context.Context, actorID, notificationID string) error {
	notifications := store.ReadAll[models.Notification](ctx, s.store, store.KeyNotifications)

	filtered := make([]models.Notification, 0, len(notifications))
	found := false
	for i := range notifications {
		if notifications[i].ID == notificationID {
			found = true
			if notifications[i].SenderID != actorID {
				isAdmin, err := isAdminActor(ctx, s.store, s.resolver, actorID)
				if err != nil {
					return fmt.Errorf("permission check failed: %w", err)
				}
				if !isAdmin {
					return NewPermissionError(actorID, notificationID, "notification", "delete", "not sender or insufficient permissions")
				}
			}
			continue
		}
		filtered = append(filtered, notifications[i])
	}
	if !found {
		return ErrNotificationNotFound
	}

	if err := store.WriteAll(ctx, s.store, store.KeyNotifications, filtered); err != nil {
		return fmt.Errorf("failed to save notifications: %w", err)
	}

	s.logger.Info("Notification deleted", "notification_id", notificationID, "actor_id", actorID)
	return nil
}
