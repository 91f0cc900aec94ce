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

type MeetingRepository struct {
	db base.Queryer
}

func NewMeetingRepository(pool *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{db: pool}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *MeetingRepository) WithTx(tx pgx.Tx) *MeetingRepository {
	return &MeetingRepository{db: tx}
}

const meetingColumns = `id, student_id, staff_id, meeting_type, subject_id, date, start_time, end_time, location, is_virtual, status, created_at, updated_at`

// Create создаёт новую встречу
func (r *MeetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	query := `
		INSERT INTO meetings (student_id, staff_id, meeting_type, subject_id, date, start_time, end_time, location, is_virtual, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		meeting.StudentID,
		meeting.StaffID,
		meeting.MeetingType,
		meeting.SubjectID,
		meeting.Date,
		meeting.StartTime,
		meeting.EndTime,
		meeting.Location,
		meeting.IsVirtual,
		meeting.Status,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}

	return nil
}

// GetByID получает встречу по ID
func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	var meeting model.Meeting
	err := r.db.QueryRow(ctx, query, id).Scan(
		&meeting.ID,
		&meeting.StudentID,
		&meeting.StaffID,
		&meeting.MeetingType,
		&meeting.SubjectID,
		&meeting.Date,
		&meeting.StartTime,
		&meeting.EndTime,
		&meeting.Location,
		&meeting.IsVirtual,
		&meeting.Status,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meeting by id: %w", err)
	}

	return &meeting, nil
}

// ListByStudent получает все встречи студента
func (r *MeetingRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE student_id = $1 ORDER BY date, start_time`
	return r.list(ctx, query, studentID)
}

// ListByStaff получает все встречи сотрудника
func (r *MeetingRepository) ListByStaff(ctx context.Context, staffID int64) ([]model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE staff_id = $1 ORDER BY date, start_time`
	return r.list(ctx, query, staffID)
}

// ListByDate получает все встречи на календарную дату
func (r *MeetingRepository) ListByDate(ctx context.Context, date time.Time) ([]model.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE date = $1 ORDER BY start_time`
	return r.list(ctx, query, date)
}

// ListOnDateForParticipants получает неотменённые встречи на дату,
// в которых занят студент или сотрудник. Используется при проверке
// конфликтов перед созданием встречи.
func (r *MeetingRepository) ListOnDateForParticipants(ctx context.Context, date time.Time, studentID, staffID int64) ([]model.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE date = $1
		  AND (student_id = $2 OR staff_id = $3)
		  AND status <> 'cancelled'
		ORDER BY start_time
	`
	return r.list(ctx, query, date, studentID, staffID)
}

// ListScheduledFrom получает запланированные встречи начиная с даты
func (r *MeetingRepository) ListScheduledFrom(ctx context.Context, from time.Time) ([]model.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE date >= $1 AND status = 'scheduled'
		ORDER BY date, start_time
	`
	return r.list(ctx, query, from)
}

// Update обновляет время, место и формат встречи
func (r *MeetingRepository) Update(ctx context.Context, meeting *model.Meeting) error {
	query := `
		UPDATE meetings
		SET date = $2, start_time = $3, end_time = $4, location = $5, is_virtual = $6, staff_id = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		meeting.ID,
		meeting.Date,
		meeting.StartTime,
		meeting.EndTime,
		meeting.Location,
		meeting.IsVirtual,
		meeting.StaffID,
	).Scan(&meeting.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("meeting not found")
		}
		return fmt.Errorf("update meeting: %w", err)
	}

	return nil
}

// UpdateStatus меняет статус встречи
func (r *MeetingRepository) UpdateStatus(ctx context.Context, id int64, status model.MeetingStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE meetings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update meeting status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meeting not found")
	}
	return nil
}

func (r *MeetingRepository) list(ctx context.Context, query string, args ...any) ([]model.Meeting, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		var meeting model.Meeting
		err := rows.Scan(
			&meeting.ID,
			&meeting.StudentID,
			&meeting.StaffID,
			&meeting.MeetingType,
			&meeting.SubjectID,
			&meeting.Date,
			&meeting.StartTime,
			&meeting.EndTime,
			&meeting.Location,
			&meeting.IsVirtual,
			&meeting.Status,
			&meeting.CreatedAt,
			&meeting.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}

	return meetings, nil
}
