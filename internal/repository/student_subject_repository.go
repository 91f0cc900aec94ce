package repository

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentSubjectRepository struct {
	db base.Queryer
}

func NewStudentSubjectRepository(pool *pgxpool.Pool) *StudentSubjectRepository {
	return &StudentSubjectRepository{db: pool}
}

// Create записывает потребность студента в помощи по предмету
func (r *StudentSubjectRepository) Create(ctx context.Context, need *model.StudentSubject) error {
	query := `
		INSERT INTO student_subjects (user_id, subject_id, priority_level)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		need.UserID,
		need.SubjectID,
		need.PriorityLevel,
	).Scan(&need.ID)

	if err != nil {
		return fmt.Errorf("create student subject: %w", err)
	}

	return nil
}

// ListByUser получает все потребности студента
func (r *StudentSubjectRepository) ListByUser(ctx context.Context, userID int64) ([]model.StudentSubject, error) {
	query := `
		SELECT id, user_id, subject_id, priority_level
		FROM student_subjects
		WHERE user_id = $1
		ORDER BY priority_level DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list student subjects: %w", err)
	}
	defer rows.Close()

	var needs []model.StudentSubject
	for rows.Next() {
		var need model.StudentSubject
		err := rows.Scan(&need.ID, &need.UserID, &need.SubjectID, &need.PriorityLevel)
		if err != nil {
			return nil, fmt.Errorf("scan student subject: %w", err)
		}
		needs = append(needs, need)
	}

	return needs, nil
}
