package model

import (
	"time"

	"github.com/google/uuid"
)

type ConflictPriority string

const (
	ConflictPriorityHigh   ConflictPriority = "high"
	ConflictPriorityMedium ConflictPriority = "medium"
	ConflictPriorityLow    ConflictPriority = "low"
)

type ConflictStatus string

const (
	ConflictStatusOpen     ConflictStatus = "open"
	ConflictStatusResolved ConflictStatus = "resolved"
)

// Conflict запись о проблеме планирования. Никогда не удаляется —
// история конфликтов служит журналом аудита.
type Conflict struct {
	ID               int64            `json:"id"`
	RelatedUserID    *int64           `json:"related_user_id"`
	RelatedMeetingID *int64           `json:"related_meeting_id"`
	Description      string           `json:"description"`
	Priority         ConflictPriority `json:"priority"`
	Status           ConflictStatus   `json:"status"`
	AssignedToID     *int64           `json:"assigned_to_id"`
	ReportedByID     *int64           `json:"reported_by_id"`
	ResolvedByID     *int64           `json:"resolved_by_id"`
	ReferenceID      uuid.UUID        `json:"reference_id"` // связывает конфликт с порождёнными им уведомлениями
	CreatedAt        time.Time        `json:"created_at"`
	ResolvedAt       *time.Time       `json:"resolved_at"`
}

// IsResolved проверяет, закрыт ли конфликт
func (c *Conflict) IsResolved() bool {
	return c.Status == ConflictStatusResolved
}
