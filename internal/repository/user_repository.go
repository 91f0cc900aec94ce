package repository

import (
	"context"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db base.Queryer
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

const userColumns = `id, username, first_name, last_name, email, role, is_remote, is_commuter, preferred_location, created_at`

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, first_name, last_name, email, role, is_remote, is_commuter, preferred_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Role,
		user.IsRemote,
		user.IsCommuter,
		user.PreferredLocation,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Role,
		&user.IsRemote,
		&user.IsCommuter,
		&user.PreferredLocation,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// ListByRole получает всех пользователей с указанной ролью
func (r *UserRepository) ListByRole(ctx context.Context, role model.UserRole) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// ListStaff получает всех сотрудников (студенческий и профессиональный штат)
func (r *UserRepository) ListStaff(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ANY($1) ORDER BY id`

	roles := []string{string(model.RoleStudentStaff), string(model.RoleProfessionalStaff)}
	rows, err := r.db.Query(ctx, query, roles)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	var users []model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Role,
			&user.IsRemote,
			&user.IsCommuter,
			&user.PreferredLocation,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}
