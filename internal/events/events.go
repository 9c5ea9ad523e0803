package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope published to the message broker
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Event types emitted by the platform
const (
	EventUserRegistered        = "identity.user_registered"
	EventUserLoggedIn          = "identity.user_logged_in"
	EventQuizSubmitted         = "quiz.result_submitted"
	EventResourceAdded         = "resources.resource_added"
	EventNewsPublished         = "news.article_published"
	EventNotificationSent      = "notifications.notification_sent"
	EventNotificationBroadcast = "notifications.broadcast_sent"
	EventStudentEnrolled       = "enrollments.student_enrolled"
)

// NewEvent builds an event envelope with a fresh ID and timestamp
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "edupercentage-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
