package model

import "time"

// Availability еженедельное окно доступности пользователя.
// Время хранится строками "HH:MM", день недели 0-6 (воскресенье = 0).
type Availability struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsRecurring bool      `json:"is_recurring"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}
