package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bridges-advising/scheduler/internal/matching"
	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeetingService создаёт и изменяет встречи. Проверка конфликтов и
// вставка выполняются в одной транзакции, чтобы два одновременных
// запроса на пересекающееся время не прошли оба незамеченными.
type MeetingService struct {
	tx         SchedulingTx
	meetings   MeetingWriteStore
	activities ActivityStore
	logger     *zap.Logger
}

func NewMeetingService(
	tx SchedulingTx,
	meetings MeetingWriteStore,
	activities ActivityStore,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		tx:         tx,
		meetings:   meetings,
		activities: activities,
		logger:     logger,
	}
}

// CheckConflict проверяет, приведёт ли встреча к двойному бронированию
// студента или сотрудника. Возвращает пересекающиеся встречи — пустой
// список значит, что время свободно.
func (s *MeetingService) CheckConflict(ctx context.Context, proposed matching.ProposedMeeting) ([]model.Meeting, error) {
	existing, err := s.meetings.ListOnDateForParticipants(ctx, proposed.Date, proposed.StudentID, proposed.StaffID)
	if err != nil {
		return nil, fmt.Errorf("list meetings for conflict check: %w", err)
	}

	colliding, err := matching.DetectConflicts(proposed, existing)
	if err != nil {
		return nil, fmt.Errorf("detect conflicts: %w", err)
	}

	return colliding, nil
}

// ScheduleMeeting сохраняет встречу. Обнаруженный конфликт не блокирует
// создание: встреча сохраняется, а рядом с ней создаётся запись Conflict
// для разбора командой планирования. Пересекающиеся встречи возвращаются
// вызывающей стороне, чтобы она могла предупредить пользователя заранее
// через CheckConflict и решить, создавать ли встречу вообще.
func (s *MeetingService) ScheduleMeeting(ctx context.Context, meeting *model.Meeting) ([]model.Meeting, error) {
	startMinutes, err := matching.TimeToMinutes(meeting.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeRange, err)
	}
	endMinutes, err := matching.TimeToMinutes(meeting.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeRange, err)
	}
	if startMinutes >= endMinutes {
		return nil, ErrInvalidTimeRange
	}

	if meeting.Status == "" {
		meeting.Status = model.MeetingStatusScheduled
	}

	var colliding []model.Meeting
	err = s.tx.InTx(ctx, func(meetings MeetingWriteStore, conflicts ConflictStore) error {
		existing, err := meetings.ListOnDateForParticipants(ctx, meeting.Date, meeting.StudentID, meeting.StaffID)
		if err != nil {
			return fmt.Errorf("list meetings for conflict check: %w", err)
		}

		colliding, err = matching.DetectConflicts(matching.ProposedMeeting{
			StudentID: meeting.StudentID,
			StaffID:   meeting.StaffID,
			Date:      meeting.Date,
			StartTime: meeting.StartTime,
			EndTime:   meeting.EndTime,
		}, existing)
		if err != nil {
			return fmt.Errorf("detect conflicts: %w", err)
		}

		if err := meetings.Create(ctx, meeting); err != nil {
			return fmt.Errorf("create meeting: %w", err)
		}

		// Двойное бронирование фиксируем записью о конфликте, а не отказом:
		// пользователю разрешено ставить встречу поверх с явным пониманием
		if len(colliding) > 0 {
			conflict := &model.Conflict{
				RelatedUserID:    &meeting.StaffID,
				RelatedMeetingID: &meeting.ID,
				Description: fmt.Sprintf(
					"Meeting #%d on %s %s-%s overlaps %d existing meeting(s), first is #%d",
					meeting.ID, meeting.Date.Format("2006-01-02"),
					meeting.StartTime, meeting.EndTime,
					len(colliding), colliding[0].ID,
				),
				Priority:    model.ConflictPriorityMedium,
				Status:      model.ConflictStatusOpen,
				ReferenceID: uuid.New(),
			}

			if err := conflicts.Create(ctx, conflict); err != nil {
				return fmt.Errorf("create conflict record: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, meeting.StudentID, "meeting_scheduled",
		fmt.Sprintf("Meeting #%d scheduled for %s %s-%s", meeting.ID, meeting.Date.Format("2006-01-02"), meeting.StartTime, meeting.EndTime),
		map[string]any{
			"meeting_id":   meeting.ID,
			"meeting_type": meeting.MeetingType,
			"student_id":   meeting.StudentID,
			"staff_id":     meeting.StaffID,
		})

	s.logger.Info("Meeting scheduled",
		zap.Int64("meeting_id", meeting.ID),
		zap.Int64("student_id", meeting.StudentID),
		zap.Int64("staff_id", meeting.StaffID),
		zap.Int("collisions", len(colliding)))

	return colliding, nil
}

// MeetingUpdate изменяемые поля встречи; nil — поле не трогаем
type MeetingUpdate struct {
	StartTime *string
	EndTime   *string
	Location  *string
	IsVirtual *bool
	StaffID   *int64
}

// UpdateMeeting меняет время, место или сотрудника встречи. Завершённые
// встречи неизменяемы. При смене времени конфликты перепроверяются так же,
// как при создании.
func (s *MeetingService) UpdateMeeting(ctx context.Context, meetingID int64, update MeetingUpdate) ([]model.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	if meeting.Status == model.MeetingStatusCompleted {
		return nil, ErrMeetingCompleted
	}

	timeChanged := false
	if update.StartTime != nil {
		meeting.StartTime = *update.StartTime
		timeChanged = true
	}
	if update.EndTime != nil {
		meeting.EndTime = *update.EndTime
		timeChanged = true
	}
	if update.Location != nil {
		meeting.Location = *update.Location
	}
	if update.IsVirtual != nil {
		meeting.IsVirtual = *update.IsVirtual
	}
	if update.StaffID != nil {
		meeting.StaffID = *update.StaffID
		timeChanged = true
	}

	startMinutes, err := matching.TimeToMinutes(meeting.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeRange, err)
	}
	endMinutes, err := matching.TimeToMinutes(meeting.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeRange, err)
	}
	if startMinutes >= endMinutes {
		return nil, ErrInvalidTimeRange
	}

	var colliding []model.Meeting
	err = s.tx.InTx(ctx, func(meetings MeetingWriteStore, conflicts ConflictStore) error {
		if timeChanged {
			existing, err := meetings.ListOnDateForParticipants(ctx, meeting.Date, meeting.StudentID, meeting.StaffID)
			if err != nil {
				return fmt.Errorf("list meetings for conflict check: %w", err)
			}

			// Сама изменяемая встреча не конфликтует с собой
			others := existing[:0:0]
			for _, m := range existing {
				if m.ID != meeting.ID {
					others = append(others, m)
				}
			}

			colliding, err = matching.DetectConflicts(matching.ProposedMeeting{
				StudentID: meeting.StudentID,
				StaffID:   meeting.StaffID,
				Date:      meeting.Date,
				StartTime: meeting.StartTime,
				EndTime:   meeting.EndTime,
			}, others)
			if err != nil {
				return fmt.Errorf("detect conflicts: %w", err)
			}
		}

		if err := meetings.Update(ctx, meeting); err != nil {
			return fmt.Errorf("update meeting: %w", err)
		}

		if len(colliding) > 0 {
			conflict := &model.Conflict{
				RelatedUserID:    &meeting.StaffID,
				RelatedMeetingID: &meeting.ID,
				Description: fmt.Sprintf(
					"Rescheduled meeting #%d now overlaps %d existing meeting(s)",
					meeting.ID, len(colliding),
				),
				Priority:    model.ConflictPriorityMedium,
				Status:      model.ConflictStatusOpen,
				ReferenceID: uuid.New(),
			}

			if err := conflicts.Create(ctx, conflict); err != nil {
				return fmt.Errorf("create conflict record: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, meeting.StudentID, "meeting_updated",
		fmt.Sprintf("Meeting #%d was updated", meeting.ID),
		map[string]any{"meeting_id": meeting.ID})

	return colliding, nil
}

// CancelMeeting отменяет встречу. Отменённая встреча перестаёт
// участвовать в проверках конфликтов.
func (s *MeetingService) CancelMeeting(ctx context.Context, meetingID int64) error {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("get meeting: %w", err)
	}
	if meeting == nil {
		return ErrMeetingNotFound
	}
	if meeting.Status == model.MeetingStatusCompleted {
		return ErrMeetingCompleted
	}

	if err := s.meetings.UpdateStatus(ctx, meetingID, model.MeetingStatusCancelled); err != nil {
		return fmt.Errorf("cancel meeting: %w", err)
	}

	s.logActivity(ctx, meeting.StudentID, "meeting_cancelled",
		fmt.Sprintf("Meeting #%d was cancelled", meetingID),
		map[string]any{"meeting_id": meetingID})

	s.logger.Info("Meeting cancelled", zap.Int64("meeting_id", meetingID))
	return nil
}

// CompleteMeeting помечает встречу завершённой
func (s *MeetingService) CompleteMeeting(ctx context.Context, meetingID int64) error {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("get meeting: %w", err)
	}
	if meeting == nil {
		return ErrMeetingNotFound
	}

	if err := s.meetings.UpdateStatus(ctx, meetingID, model.MeetingStatusCompleted); err != nil {
		return fmt.Errorf("complete meeting: %w", err)
	}

	return nil
}

// logActivity пишет запись в журнал действий; сбой журнала не валит
// основную операцию
func (s *MeetingService) logActivity(ctx context.Context, userID int64, activityType, description string, metadata map[string]any) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		raw = []byte("{}")
	}

	activity := &model.Activity{
		UserID:       userID,
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
