package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridges-advising/scheduler/internal/model"
)

var march4 = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func scheduledMeeting(id, studentID, staffID int64, date time.Time, start, end string) model.Meeting {
	return model.Meeting{
		ID:        id,
		StudentID: studentID,
		StaffID:   staffID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    model.MeetingStatusScheduled,
	}
}

func TestDetectConflictsOverlap(t *testing.T) {
	existing := []model.Meeting{
		scheduledMeeting(1, 1, 10, march4, "09:00", "10:00"),
	}

	colliding, err := DetectConflicts(ProposedMeeting{
		StudentID: 2,
		StaffID:   10,
		Date:      march4,
		StartTime: "09:30",
		EndTime:   "09:45",
	}, existing)
	require.NoError(t, err)
	require.Len(t, colliding, 1)
	assert.Equal(t, int64(1), colliding[0].ID)
}

func TestDetectConflictsTouchingIsNotConflict(t *testing.T) {
	existing := []model.Meeting{
		scheduledMeeting(1, 1, 10, march4, "11:00", "12:00"),
	}

	// [10:00,11:00) и [11:00,12:00) — касание, не конфликт
	colliding, err := DetectConflicts(ProposedMeeting{
		StudentID: 2, StaffID: 10, Date: march4,
		StartTime: "10:00", EndTime: "11:00",
	}, existing)
	require.NoError(t, err)
	assert.Empty(t, colliding)

	// [10:30,11:30) пересекает [11:00,12:00)
	colliding, err = DetectConflicts(ProposedMeeting{
		StudentID: 2, StaffID: 10, Date: march4,
		StartTime: "10:30", EndTime: "11:30",
	}, existing)
	require.NoError(t, err)
	assert.Len(t, colliding, 1)
}

func TestDetectConflictsContainment(t *testing.T) {
	existing := []model.Meeting{
		scheduledMeeting(1, 1, 10, march4, "10:00", "10:30"),
	}

	// Новая встреча целиком накрывает существующую
	colliding, err := DetectConflicts(ProposedMeeting{
		StudentID: 1, StaffID: 20, Date: march4,
		StartTime: "09:00", EndTime: "12:00",
	}, existing)
	require.NoError(t, err)
	assert.Len(t, colliding, 1)
}

func TestDetectConflictsScopedToDateAndParticipants(t *testing.T) {
	existing := []model.Meeting{
		scheduledMeeting(1, 1, 10, march4, "09:00", "10:00"),
	}

	// Другая дата
	colliding, err := DetectConflicts(ProposedMeeting{
		StudentID: 1, StaffID: 10,
		Date:      march4.AddDate(0, 0, 1),
		StartTime: "09:00", EndTime: "10:00",
	}, existing)
	require.NoError(t, err)
	assert.Empty(t, colliding)

	// Те же время и дата, но другие участники
	colliding, err = DetectConflicts(ProposedMeeting{
		StudentID: 2, StaffID: 20, Date: march4,
		StartTime: "09:00", EndTime: "10:00",
	}, existing)
	require.NoError(t, err)
	assert.Empty(t, colliding)
}

func TestDetectConflictsIgnoresCancelled(t *testing.T) {
	cancelled := scheduledMeeting(1, 1, 10, march4, "09:00", "10:00")
	cancelled.Status = model.MeetingStatusCancelled

	colliding, err := DetectConflicts(ProposedMeeting{
		StudentID: 1, StaffID: 10, Date: march4,
		StartTime: "09:00", EndTime: "10:00",
	}, []model.Meeting{cancelled})
	require.NoError(t, err)
	assert.Empty(t, colliding)
}

func TestDetectConflictsStudentDoubleBooking(t *testing.T) {
	// Конфликт по студенту: другой сотрудник, тот же студент
	existing := []model.Meeting{
		scheduledMeeting(1, 1, 10, march4, "09:00", "10:00"),
	}

	colliding, err := DetectConflicts(ProposedMeeting{
		StudentID: 1, StaffID: 20, Date: march4,
		StartTime: "09:30", EndTime: "10:30",
	}, existing)
	require.NoError(t, err)
	assert.Len(t, colliding, 1)
}

func TestDetectConflictsMalformedTime(t *testing.T) {
	_, err := DetectConflicts(ProposedMeeting{
		StudentID: 1, StaffID: 10, Date: march4,
		StartTime: "late", EndTime: "10:00",
	}, nil)
	assert.Error(t, err)
}
