package service

import (
	"context"
	"errors"
	"time"

	"github.com/bridges-advising/scheduler/internal/model"
)

// Ошибки уровня сервисов. Отсутствие подходящих сотрудников или слотов
// ошибкой не считается — это обычный результат.
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrConflictNotFound = errors.New("conflict not found")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrNotStaff         = errors.New("user is not a staff member")
	ErrMeetingCompleted = errors.New("completed meeting cannot be changed")
)

// Узкие интерфейсы хранилища. Реализуются pgx-репозиториями, в тестах —
// хранилищем в памяти; сервисам неважно, что за ними стоит.

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ListByRole(ctx context.Context, role model.UserRole) ([]model.User, error)
	ListStaff(ctx context.Context) ([]model.User, error)
}

type ExpertiseStore interface {
	List(ctx context.Context) ([]model.StaffExpertise, error)
	ListByUser(ctx context.Context, userID int64) ([]model.StaffExpertise, error)
}

type StudentSubjectStore interface {
	ListByUser(ctx context.Context, userID int64) ([]model.StudentSubject, error)
}

type AvailabilityStore interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Availability, error)
}

type MeetingStore interface {
	GetByID(ctx context.Context, id int64) (*model.Meeting, error)
	ListScheduledFrom(ctx context.Context, from time.Time) ([]model.Meeting, error)
}

type MeetingWriteStore interface {
	MeetingStore
	ListOnDateForParticipants(ctx context.Context, date time.Time, studentID, staffID int64) ([]model.Meeting, error)
	Create(ctx context.Context, meeting *model.Meeting) error
	Update(ctx context.Context, meeting *model.Meeting) error
	UpdateStatus(ctx context.Context, id int64, status model.MeetingStatus) error
}

// SchedulingTx исполняет fn атомарно над встречами и конфликтами:
// проверка конфликтов и вставка встречи должны видеть одно и то же
// состояние расписания
type SchedulingTx interface {
	InTx(ctx context.Context, fn func(meetings MeetingWriteStore, conflicts ConflictStore) error) error
}

type ConflictStore interface {
	Create(ctx context.Context, conflict *model.Conflict) error
	GetByID(ctx context.Context, id int64) (*model.Conflict, error)
	List(ctx context.Context, status model.ConflictStatus) ([]model.Conflict, error)
	SetAssignee(ctx context.Context, id, staffID int64) error
	MarkResolved(ctx context.Context, id, resolverID int64, at time.Time) error
	ExistsOpenForMeeting(ctx context.Context, meetingID int64) (bool, error)
}

type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
}

type ActivityStore interface {
	Create(ctx context.Context, activity *model.Activity) error
}
