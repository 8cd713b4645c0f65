package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeEmail = "email"
	NotificationTypeSMS   = "sms"

	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// Notification is a fire-and-forget message to a user. Rows are created
// by the notification worker after the triggering transaction has
// committed; a failed create never rolls anything back.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"not null;default:'email'"`
	Message   string    `gorm:"not null"`
	Status    string    `gorm:"not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
