package models

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

func (nt NotificationType) Valid() bool {
	switch nt {
	case NotificationInfo, NotificationWarning, NotificationSuccess, NotificationError:
		return true
	}
	return false
}

// Notification is persisted in the "notifications" collection.
//
// Targeting: no RecipientID and no RecipientIDs means broadcast. Classroom
// sends expand the roster into RecipientIDs at send time; ClassroomID is
// stored alongside but visibility filtering never consults it.
//
// Read state is per user: ReadBy holds the IDs of users who marked the
// notification read, and IsRead is filled in for the viewer when listing.
type Notification struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	Type         NotificationType `json:"type"`
	SenderID     string           `json:"sender_id"`
	SenderName   string           `json:"sender_name"`
	RecipientID  *string          `json:"recipient_id,omitempty"`
	RecipientIDs []string         `json:"recipient_ids,omitempty"`
	ClassroomID  *string          `json:"classroom_id,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
	ReadBy       []string         `json:"read_by,omitempty"`
	IsRead       bool             `json:"is_read"`
}

// ReadByUser reports whether userID has marked the notification read.
func (n *Notification) ReadByUser(userID string) bool {
	for _, id := range n.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// VisibleTo implements the targeting rule: broadcast when no recipients are
// set, otherwise an exact RecipientID match or membership in RecipientIDs.
func (n *Notification) VisibleTo(userID string) bool {
	if n.RecipientID == nil && len(n.RecipientIDs) == 0 {
		return true
	}
	if n.RecipientID != nil && *n.RecipientID == userID {
		return true
	}
	for _, id := range n.RecipientIDs {
		if id == userID {
			return true
		}
	}
	return false
}
