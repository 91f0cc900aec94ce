package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bridges-advising/scheduler/internal/matching"
	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConflictService ведёт жизненный цикл конфликтов планирования и путь
// эскалации, когда встрече не находится замена сотрудника.
//
// Состояний два: open и resolved. Назначение ответственного — атрибут
// открытого конфликта, не отдельное состояние. resolved — терминальное,
// повторное открытие не предусмотрено.
type ConflictService struct {
	conflicts     ConflictStore
	notifications NotificationStore
	activities    ActivityStore
	users         UserStore
	expertise     ExpertiseStore
	availability  AvailabilityStore
	meetings      MeetingStore
	logger        *zap.Logger
}

func NewConflictService(
	conflicts ConflictStore,
	notifications NotificationStore,
	activities ActivityStore,
	users UserStore,
	expertise ExpertiseStore,
	availability AvailabilityStore,
	meetings MeetingStore,
	logger *zap.Logger,
) *ConflictService {
	return &ConflictService{
		conflicts:     conflicts,
		notifications: notifications,
		activities:    activities,
		users:         users,
		expertise:     expertise,
		availability:  availability,
		meetings:      meetings,
		logger:        logger,
	}
}

// ReportRequest параметры нового конфликта
type ReportRequest struct {
	RelatedUserID    *int64
	RelatedMeetingID *int64
	Description      string
	Priority         model.ConflictPriority
	ReportedByID     *int64
}

// Report создаёт открытый конфликт
func (s *ConflictService) Report(ctx context.Context, req ReportRequest) (*model.Conflict, error) {
	if req.Priority == "" {
		req.Priority = model.ConflictPriorityMedium
	}

	conflict := &model.Conflict{
		RelatedUserID:    req.RelatedUserID,
		RelatedMeetingID: req.RelatedMeetingID,
		Description:      req.Description,
		Priority:         req.Priority,
		Status:           model.ConflictStatusOpen,
		ReportedByID:     req.ReportedByID,
		ReferenceID:      uuid.New(),
	}

	if err := s.conflicts.Create(ctx, conflict); err != nil {
		return nil, fmt.Errorf("create conflict: %w", err)
	}

	s.logActivity(ctx, req.ReportedByID, "conflict_reported",
		fmt.Sprintf("New %s priority conflict reported: %s", conflict.Priority, truncate(conflict.Description, 50)),
		map[string]any{"conflict_id": conflict.ID, "priority": conflict.Priority})

	s.logger.Info("Conflict reported",
		zap.Int64("conflict_id", conflict.ID),
		zap.String("priority", string(conflict.Priority)))

	return conflict, nil
}

// Assign назначает сотрудника ответственным за конфликт. Конфликт
// остаётся открытым; переназначение разрешено.
func (s *ConflictService) Assign(ctx context.Context, conflictID, staffID int64) (*model.Conflict, error) {
	conflict, err := s.conflicts.GetByID(ctx, conflictID)
	if err != nil {
		return nil, fmt.Errorf("get conflict: %w", err)
	}
	if conflict == nil {
		return nil, ErrConflictNotFound
	}
	if conflict.IsResolved() {
		return nil, fmt.Errorf("conflict #%d is already resolved", conflictID)
	}

	if err := s.conflicts.SetAssignee(ctx, conflictID, staffID); err != nil {
		return nil, fmt.Errorf("set assignee: %w", err)
	}

	conflict.AssignedToID = &staffID
	return conflict, nil
}

// Resolve закрывает конфликт и фиксирует, кто его разрешил. Повторный
// вызов для уже закрытого конфликта ничего не меняет: время разрешения
// остаётся от первого вызова.
func (s *ConflictService) Resolve(ctx context.Context, conflictID, resolverID int64) (*model.Conflict, error) {
	conflict, err := s.conflicts.GetByID(ctx, conflictID)
	if err != nil {
		return nil, fmt.Errorf("get conflict: %w", err)
	}
	if conflict == nil {
		return nil, ErrConflictNotFound
	}
	if conflict.IsResolved() {
		return conflict, nil
	}

	now := time.Now().UTC()
	if err := s.conflicts.MarkResolved(ctx, conflictID, resolverID, now); err != nil {
		return nil, fmt.Errorf("mark resolved: %w", err)
	}

	conflict.Status = model.ConflictStatusResolved
	conflict.ResolvedByID = &resolverID
	conflict.ResolvedAt = &now

	s.logActivity(ctx, &resolverID, "conflict_resolved",
		fmt.Sprintf("Conflict #%d resolved: %s", conflictID, truncate(conflict.Description, 50)),
		map[string]any{"conflict_id": conflictID, "resolved_by_id": resolverID})

	s.logger.Info("Conflict resolved",
		zap.Int64("conflict_id", conflictID),
		zap.Int64("resolver_id", resolverID))

	return conflict, nil
}

// List возвращает конфликты, опционально по статусу (пустой — все)
func (s *ConflictService) List(ctx context.Context, status model.ConflictStatus) ([]model.Conflict, error) {
	return s.conflicts.List(ctx, status)
}

// ReplacementResult итог поиска замены сотрудника
type ReplacementResult struct {
	Success      bool
	Alternatives []model.User
	Message      string
}

// FindAlternatives ищет замену сотруднику встречи: профессиональный штат
// с компетенцией по тому же предмету не ниже уровня исходного сотрудника,
// с окном доступности на всё время встречи и подходящим форматом. Чистый
// запрос без побочных эффектов; пустой список — обычный результат.
func (s *ConflictService) FindAlternatives(ctx context.Context, meeting *model.Meeting, modality matching.Modality) ([]model.User, error) {
	required, err := s.requiredExpertise(ctx, meeting.StaffID)
	if err != nil {
		return nil, err
	}
	if required == nil {
		return nil, nil
	}

	candidates, err := s.collectCandidates(ctx)
	if err != nil {
		return nil, err
	}

	alternatives, err := matching.FindAlternativeStaff(*meeting, meeting.StaffID, *required, candidates, modality)
	if err != nil {
		return nil, fmt.Errorf("find alternative staff: %w", err)
	}

	return alternatives, nil
}

// Escalate фиксирует неразрешимую проблему подбора: конфликт с высоким
// приоритетом для команды планирования и уведомление PAIRING_ISSUE,
// связанные общим reference id.
func (s *ConflictService) Escalate(ctx context.Context, meeting *model.Meeting) (*model.Conflict, error) {
	reference := uuid.New()

	conflict := &model.Conflict{
		RelatedUserID:    &meeting.StaffID,
		RelatedMeetingID: &meeting.ID,
		Description: fmt.Sprintf(
			"Unable to find alternative staff for meeting #%d. Original staff: %d",
			meeting.ID, meeting.StaffID,
		),
		Priority:    model.ConflictPriorityHigh,
		Status:      model.ConflictStatusOpen,
		ReferenceID: reference,
	}

	if err := s.conflicts.Create(ctx, conflict); err != nil {
		return nil, fmt.Errorf("create escalation conflict: %w", err)
	}

	notification := &model.Notification{
		Type: model.NotificationPairingIssue,
		Message: fmt.Sprintf(
			"Unable to find alternative staff for meeting #%d. Original staff: %d",
			meeting.ID, meeting.StaffID,
		),
		Priority:          model.NotificationPriorityHigh,
		RelatedEntityType: model.RelatedEntityMeeting,
		RelatedEntityID:   &meeting.ID,
		ReferenceID:       reference,
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("create escalation notification: %w", err)
	}

	s.logger.Warn("Pairing issue escalated",
		zap.Int64("meeting_id", meeting.ID),
		zap.Int64("original_staff_id", meeting.StaffID),
		zap.String("reference_id", reference.String()))

	return conflict, nil
}

// RequestStaffReplacement ищет замену сотруднику встречи и при неудаче
// эскалирует проблему команде планирования
func (s *ConflictService) RequestStaffReplacement(ctx context.Context, meetingID int64, modality matching.Modality) (*ReplacementResult, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}

	required, err := s.requiredExpertise(ctx, meeting.StaffID)
	if err != nil {
		return nil, err
	}
	if required == nil {
		return &ReplacementResult{
			Success: false,
			Message: "Could not determine required expertise",
		}, nil
	}

	alternatives, err := s.FindAlternatives(ctx, meeting, modality)
	if err != nil {
		return nil, err
	}

	if len(alternatives) == 0 {
		if _, err := s.Escalate(ctx, meeting); err != nil {
			return nil, err
		}
		return &ReplacementResult{
			Success: false,
			Message: "No qualified and available staff found. Scheduling team has been notified.",
		}, nil
	}

	return &ReplacementResult{
		Success:      true,
		Alternatives: alternatives,
	}, nil
}

// AuditMeetings перепроверяет будущие запланированные встречи на двойные
// бронирования (они могли появиться через сознательный override) и
// заводит конфликты по тем, о которых ещё не заявлено. Возвращает число
// созданных записей.
func (s *ConflictService) AuditMeetings(ctx context.Context, from time.Time) (int, error) {
	meetings, err := s.meetings.ListScheduledFrom(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("list scheduled meetings: %w", err)
	}

	filed := 0
	for i, meeting := range meetings {
		// Каждую пару рассматриваем один раз
		colliding, err := matching.DetectConflicts(matching.ProposedMeeting{
			StudentID: meeting.StudentID,
			StaffID:   meeting.StaffID,
			Date:      meeting.Date,
			StartTime: meeting.StartTime,
			EndTime:   meeting.EndTime,
		}, meetings[i+1:])
		if err != nil {
			return filed, fmt.Errorf("audit meeting %d: %w", meeting.ID, err)
		}
		if len(colliding) == 0 {
			continue
		}

		exists, err := s.conflicts.ExistsOpenForMeeting(ctx, meeting.ID)
		if err != nil {
			return filed, fmt.Errorf("check existing conflict: %w", err)
		}
		if exists {
			continue
		}

		meetingID := meeting.ID
		staffID := meeting.StaffID
		conflict := &model.Conflict{
			RelatedUserID:    &staffID,
			RelatedMeetingID: &meetingID,
			Description: fmt.Sprintf(
				"Audit: meeting #%d on %s %s-%s overlaps meeting #%d",
				meeting.ID, meeting.Date.Format("2006-01-02"),
				meeting.StartTime, meeting.EndTime, colliding[0].ID,
			),
			Priority:    model.ConflictPriorityMedium,
			Status:      model.ConflictStatusOpen,
			ReferenceID: uuid.New(),
		}

		if err := s.conflicts.Create(ctx, conflict); err != nil {
			return filed, fmt.Errorf("create audit conflict: %w", err)
		}
		filed++
	}

	return filed, nil
}

// requiredExpertise определяет требуемую компетенцию по исходному
// сотруднику встречи; nil — у сотрудника не записано ни одной компетенции
func (s *ConflictService) requiredExpertise(ctx context.Context, staffID int64) (*model.StaffExpertise, error) {
	edges, err := s.expertise.ListByUser(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("list staff expertise: %w", err)
	}
	if len(edges) == 0 {
		return nil, nil
	}
	return &edges[0], nil
}

// collectCandidates собирает профили профессионального штата с их
// компетенциями и окнами доступности
func (s *ConflictService) collectCandidates(ctx context.Context) ([]matching.StaffProfile, error) {
	roster, err := s.users.ListByRole(ctx, model.RoleProfessionalStaff)
	if err != nil {
		return nil, fmt.Errorf("list professional staff: %w", err)
	}

	profiles := make([]matching.StaffProfile, 0, len(roster))
	for _, member := range roster {
		edges, err := s.expertise.ListByUser(ctx, member.ID)
		if err != nil {
			return nil, fmt.Errorf("list candidate expertise: %w", err)
		}

		windows, err := s.availability.ListByUser(ctx, member.ID)
		if err != nil {
			return nil, fmt.Errorf("list candidate availability: %w", err)
		}

		profiles = append(profiles, matching.StaffProfile{
			User:         member,
			Expertise:    edges,
			Availability: windows,
		})
	}

	return profiles, nil
}

func (s *ConflictService) logActivity(ctx context.Context, userID *int64, activityType, description string, metadata map[string]any) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		raw = []byte("{}")
	}

	var uid int64
	if userID != nil {
		uid = *userID
	}

	activity := &model.Activity{
		UserID:       uid,
		ActivityType: activityType,
		Description:  description,
		Metadata:     string(raw),
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		s.logger.Warn("Failed to log activity",
			zap.String("activity_type", activityType),
			zap.Error(err))
	}
}

// truncate укорачивает строку до n символов. Режем по рунам, чтобы не
// разорвать многобайтовый символ посередине.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
