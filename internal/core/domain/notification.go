package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationLevel classifies the severity of a recorded notification.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "INFO"
	NotificationWarning NotificationLevel = "WARNING"
)

// Notification is a row written as a side effect of settlement and
// withdrawal flows. Warnings record degraded outcomes (e.g. a skipped
// forwarding leg) that need manual follow-up.
type Notification struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Level     NotificationLevel `json:"level"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	CreatedAt time.Time         `json:"created_at"`
}
