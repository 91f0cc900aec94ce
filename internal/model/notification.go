package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationPairingIssue NotificationType = "PAIRING_ISSUE"
)

type NotificationPriority string

const (
	NotificationPriorityHigh   NotificationPriority = "HIGH"
	NotificationPriorityNormal NotificationPriority = "NORMAL"
)

const RelatedEntityMeeting = "MEETING"

type Notification struct {
	ID                int64                `json:"id"`
	UserID            *int64               `json:"user_id"` // nil — уведомление для всей команды планирования
	Type              NotificationType     `json:"type"`
	Message           string               `json:"message"`
	Priority          NotificationPriority `json:"priority"`
	RelatedEntityType string               `json:"related_entity_type"`
	RelatedEntityID   *int64               `json:"related_entity_id"`
	ReferenceID       uuid.UUID            `json:"reference_id"`
	Read              bool                 `json:"read"`
	CreatedAt         time.Time            `json:"created_at"`
}
