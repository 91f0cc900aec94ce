package repository

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpertiseRepository struct {
	db base.Queryer
}

func NewExpertiseRepository(pool *pgxpool.Pool) *ExpertiseRepository {
	return &ExpertiseRepository{db: pool}
}

// Create добавляет сотруднику компетенцию по предмету
func (r *ExpertiseRepository) Create(ctx context.Context, expertise *model.StaffExpertise) error {
	query := `
		INSERT INTO staff_expertise (user_id, subject_id, proficiency_level)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		expertise.UserID,
		expertise.SubjectID,
		expertise.ProficiencyLevel,
	).Scan(&expertise.ID)

	if err != nil {
		return fmt.Errorf("create staff expertise: %w", err)
	}

	return nil
}

// ListByUser получает все компетенции сотрудника
func (r *ExpertiseRepository) ListByUser(ctx context.Context, userID int64) ([]model.StaffExpertise, error) {
	query := `
		SELECT id, user_id, subject_id, proficiency_level
		FROM staff_expertise
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list expertise by user: %w", err)
	}
	defer rows.Close()

	return scanExpertise(rows)
}

// List получает все компетенции всех сотрудников
func (r *ExpertiseRepository) List(ctx context.Context) ([]model.StaffExpertise, error) {
	query := `SELECT id, user_id, subject_id, proficiency_level FROM staff_expertise`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list expertise: %w", err)
	}
	defer rows.Close()

	return scanExpertise(rows)
}

func scanExpertise(rows pgx.Rows) ([]model.StaffExpertise, error) {
	var result []model.StaffExpertise
	for rows.Next() {
		var expertise model.StaffExpertise
		err := rows.Scan(
			&expertise.ID,
			&expertise.UserID,
			&expertise.SubjectID,
			&expertise.ProficiencyLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("scan expertise: %w", err)
		}
		result = append(result, expertise)
	}
	return result, nil
}
