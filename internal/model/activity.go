package model

import "time"

// Activity запись журнала действий для ленты на дашборде
type Activity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	Metadata     string    `json:"metadata"` // JSON-строка с деталями
	CreatedAt    time.Time `json:"created_at"`
}
