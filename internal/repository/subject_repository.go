package repository

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubjectRepository struct {
	db base.Queryer
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: pool}
}

// Create создаёт новый предмет
func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (name, code)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, subject.Name, subject.Code).Scan(&subject.ID)
	if err != nil {
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetByID получает предмет по ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	query := `SELECT id, name, code FROM subjects WHERE id = $1`

	var subject model.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(&subject.ID, &subject.Name, &subject.Code)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return &subject, nil
}

// List получает все предметы
func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	query := `SELECT id, name, code FROM subjects ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		var subject model.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Code); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	return subjects, nil
}
