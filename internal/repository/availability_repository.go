package repository

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository struct {
	db base.Queryer
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{db: pool}
}

// Create добавляет окно доступности
func (r *AvailabilityRepository) Create(ctx context.Context, window *model.Availability) error {
	query := `
		INSERT INTO availability (user_id, day_of_week, start_time, end_time, is_recurring, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		window.UserID,
		window.DayOfWeek,
		window.StartTime,
		window.EndTime,
		window.IsRecurring,
		window.Location,
	).Scan(&window.ID, &window.CreatedAt)

	if err != nil {
		return fmt.Errorf("create availability: %w", err)
	}

	return nil
}

// ListByUser получает все окна доступности пользователя
func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID int64) ([]model.Availability, error) {
	query := `
		SELECT id, user_id, day_of_week, start_time, end_time, is_recurring, location, created_at
		FROM availability
		WHERE user_id = $1
		ORDER BY day_of_week, start_time
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list availability by user: %w", err)
	}
	defer rows.Close()

	var windows []model.Availability
	for rows.Next() {
		var window model.Availability
		err := rows.Scan(
			&window.ID,
			&window.UserID,
			&window.DayOfWeek,
			&window.StartTime,
			&window.EndTime,
			&window.IsRecurring,
			&window.Location,
			&window.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		windows = append(windows, window)
	}

	return windows, nil
}

// Delete удаляет окно доступности
func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("availability not found")
	}
	return nil
}
