package repository

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db base.Queryer
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: pool}
}

// Create создаёт уведомление
func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, message, priority, related_entity_type, related_entity_id, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		notification.UserID,
		notification.Type,
		notification.Message,
		notification.Priority,
		notification.RelatedEntityType,
		notification.RelatedEntityID,
		notification.ReferenceID,
	).Scan(&notification.ID, &notification.CreatedAt)

	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

// ListByUser получает уведомления пользователя, новые первыми
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, type, message, priority, related_entity_type, related_entity_id, reference_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications by user: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var notification model.Notification
		err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Type,
			&notification.Message,
			&notification.Priority,
			&notification.RelatedEntityType,
			&notification.RelatedEntityID,
			&notification.ReferenceID,
			&notification.Read,
			&notification.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// MarkRead помечает уведомление прочитанным
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}
