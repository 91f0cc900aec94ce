package repository

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository struct {
	db base.Queryer
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: pool}
}

// Create записывает действие в журнал
func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	query := `
		INSERT INTO activities (user_id, activity_type, description, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		activity.UserID,
		activity.ActivityType,
		activity.Description,
		activity.Metadata,
	).Scan(&activity.ID, &activity.CreatedAt)

	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	return nil
}

// ListRecent получает последние записи журнала
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, user_id, activity_type, description, metadata, created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var activity model.Activity
		err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.ActivityType,
			&activity.Description,
			&activity.Metadata,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, nil
}
