package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bridges-advising/scheduler/internal/matching"
	"github.com/bridges-advising/scheduler/internal/model"
	"go.uber.org/zap"
)

// MatchingService подбирает студентам подходящих сотрудников, общие
// свободные окна и рекомендуемый тип встречи. Сама логика подбора живёт
// в пакете matching, сервис только собирает для неё данные.
type MatchingService struct {
	users        UserStore
	expertise    ExpertiseStore
	needs        StudentSubjectStore
	availability AvailabilityStore
	mergeSlots   bool
	logger       *zap.Logger
}

func NewMatchingService(
	users UserStore,
	expertise ExpertiseStore,
	needs StudentSubjectStore,
	availability AvailabilityStore,
	mergeSlots bool,
	logger *zap.Logger,
) *MatchingService {
	return &MatchingService{
		users:        users,
		expertise:    expertise,
		needs:        needs,
		availability: availability,
		mergeSlots:   mergeSlots,
		logger:       logger,
	}
}

// MatchStaffForStudent возвращает сотрудников, подходящих студенту по
// компетенциям. При withAvailability дополнительно требуется хотя бы одно
// общее свободное окно от 30 минут. Пустой результат — не ошибка.
func (s *MatchingService) MatchStaffForStudent(ctx context.Context, studentID int64, subjectID *int64, withAvailability bool) ([]model.User, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	roster, err := s.users.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}

	needs, err := s.needs.ListByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student needs: %w", err)
	}

	expertise, err := s.expertise.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expertise: %w", err)
	}

	matched := matching.MatchStaff(studentID, subjectID, roster, needs, expertise)

	if withAvailability && len(matched) > 0 {
		matched, err = s.filterByAvailability(ctx, studentID, matched)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Staff matched for student",
		zap.Int64("student_id", studentID),
		zap.Int("roster_size", len(roster)),
		zap.Int("matched", len(matched)),
		zap.Bool("with_availability", withAvailability))

	return matched, nil
}

// filterByAvailability оставляет сотрудников, у которых есть общее
// свободное окно со студентом
func (s *MatchingService) filterByAvailability(ctx context.Context, studentID int64, staff []model.User) ([]model.User, error) {
	studentWindows, err := s.availability.ListByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student availability: %w", err)
	}

	var available []model.User
	for _, member := range staff {
		staffWindows, err := s.availability.ListByUser(ctx, member.ID)
		if err != nil {
			return nil, fmt.Errorf("list staff availability: %w", err)
		}

		slots, err := matching.FindSlots(studentWindows, staffWindows)
		if err != nil {
			return nil, fmt.Errorf("find slots: %w", err)
		}
		if len(slots) > 0 {
			available = append(available, member)
		}
	}

	return available, nil
}

// FindAvailableTimeslots возвращает общие свободные окна студента и
// сотрудника длительностью от 30 минут
func (s *MatchingService) FindAvailableTimeslots(ctx context.Context, studentID, staffID int64) ([]matching.Slot, error) {
	studentWindows, err := s.availability.ListByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student availability: %w", err)
	}

	staffWindows, err := s.availability.ListByUser(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("list staff availability: %w", err)
	}

	slots, err := matching.FindSlots(studentWindows, staffWindows)
	if err != nil {
		return nil, fmt.Errorf("find slots: %w", err)
	}

	if s.mergeSlots {
		slots = matching.MergeSlots(slots)
	}

	return slots, nil
}

// SuggestMeetingType рекомендует тип встречи для пары студент-сотрудник.
// Рекомендация носит справочный характер и ничего не блокирует.
func (s *MatchingService) SuggestMeetingType(ctx context.Context, studentID, staffID int64) (model.MeetingType, error) {
	needs, err := s.needs.ListByUser(ctx, studentID)
	if err != nil {
		return "", fmt.Errorf("list student needs: %w", err)
	}

	expertise, err := s.expertise.ListByUser(ctx, staffID)
	if err != nil {
		return "", fmt.Errorf("list staff expertise: %w", err)
	}

	return matching.RecommendMeetingType(studentID, staffID, needs, expertise), nil
}

// ProposeMeetingRequest параметры черновика встречи
type ProposeMeetingRequest struct {
	StudentID int64
	StaffID   int64
	SubjectID *int64
	Date      time.Time
	StartTime string
	EndTime   string
}

// ProposeMeeting собирает черновик встречи для подобранной пары: тип по
// рекомендации, место и формат по окнам доступности. Если студент или
// сотрудник работает удалённо, встреча принудительно становится
// виртуальной. Черновик не сохраняется — это делает MeetingService после
// проверки конфликтов.
func (s *MatchingService) ProposeMeeting(ctx context.Context, req ProposeMeetingRequest) (*model.Meeting, error) {
	student, err := s.users.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	staff, err := s.users.GetByID(ctx, req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	if !staff.IsStaff() {
		return nil, ErrNotStaff
	}

	meetingType, err := s.SuggestMeetingType(ctx, req.StudentID, req.StaffID)
	if err != nil {
		return nil, err
	}

	studentWindows, err := s.availability.ListByUser(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("list student availability: %w", err)
	}
	staffWindows, err := s.availability.ListByUser(ctx, req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("list staff availability: %w", err)
	}

	placement := matching.DetermineLocation(*student, *staff, studentWindows, staffWindows)

	return &model.Meeting{
		StudentID:   req.StudentID,
		StaffID:     req.StaffID,
		MeetingType: meetingType,
		SubjectID:   req.SubjectID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    placement.Location,
		IsVirtual:   placement.IsVirtual,
		Status:      model.MeetingStatusScheduled,
	}, nil
}
