package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConflictRepository struct {
	db base.Queryer
}

func NewConflictRepository(pool *pgxpool.Pool) *ConflictRepository {
	return &ConflictRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *ConflictRepository) WithTx(tx pgx.Tx) *ConflictRepository {
	return &ConflictRepository{db: tx}
}

const conflictColumns = `id, related_user_id, related_meeting_id, description, priority, status, assigned_to_id, reported_by_id, resolved_by_id, reference_id, created_at, resolved_at`

// Create создаёт запись о конфликте
func (r *ConflictRepository) Create(ctx context.Context, conflict *model.Conflict) error {
	query := `
		INSERT INTO conflicts (related_user_id, related_meeting_id, description, priority, status, assigned_to_id, reported_by_id, reference_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		conflict.RelatedUserID,
		conflict.RelatedMeetingID,
		conflict.Description,
		conflict.Priority,
		conflict.Status,
		conflict.AssignedToID,
		conflict.ReportedByID,
		conflict.ReferenceID,
	).Scan(&conflict.ID, &conflict.CreatedAt)

	if err != nil {
		return fmt.Errorf("create conflict: %w", err)
	}

	return nil
}

// GetByID получает конфликт по ID
func (r *ConflictRepository) GetByID(ctx context.Context, id int64) (*model.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts WHERE id = $1`

	conflict, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conflict by id: %w", err)
	}

	return conflict, nil
}

// List получает конфликты, опционально отфильтрованные по статусу
// (пустой статус — все)
func (r *ConflictRepository) List(ctx context.Context, status model.ConflictStatus) ([]model.Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []model.Conflict
	for rows.Next() {
		conflict, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conflict: %w", err)
		}
		conflicts = append(conflicts, *conflict)
	}

	return conflicts, nil
}

// SetAssignee назначает ответственного за открытый конфликт
func (r *ConflictRepository) SetAssignee(ctx context.Context, id, staffID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE conflicts SET assigned_to_id = $2 WHERE id = $1`, id, staffID)
	if err != nil {
		return fmt.Errorf("assign conflict: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conflict not found")
	}
	return nil
}

// MarkResolved закрывает конфликт и фиксирует, кто и когда его разрешил
func (r *ConflictRepository) MarkResolved(ctx context.Context, id, resolverID int64, at time.Time) error {
	query := `
		UPDATE conflicts
		SET status = $2, resolved_by_id = $3, resolved_at = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, model.ConflictStatusResolved, resolverID, at)
	if err != nil {
		return fmt.Errorf("resolve conflict: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("conflict not found")
	}
	return nil
}

// ExistsOpenForMeeting проверяет, есть ли уже открытый конфликт по встрече
func (r *ConflictRepository) ExistsOpenForMeeting(ctx context.Context, meetingID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM conflicts WHERE related_meeting_id = $1 AND status = 'open')`

	var exists bool
	if err := r.db.QueryRow(ctx, query, meetingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check open conflict for meeting: %w", err)
	}
	return exists, nil
}

func (r *ConflictRepository) scanOne(row pgx.Row) (*model.Conflict, error) {
	var conflict model.Conflict
	err := row.Scan(
		&conflict.ID,
		&conflict.RelatedUserID,
		&conflict.RelatedMeetingID,
		&conflict.Description,
		&conflict.Priority,
		&conflict.Status,
		&conflict.AssignedToID,
		&conflict.ReportedByID,
		&conflict.ResolvedByID,
		&conflict.ReferenceID,
		&conflict.CreatedAt,
		&conflict.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conflict, nil
}
