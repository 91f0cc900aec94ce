package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bridges-advising/scheduler/internal/matching"
	"github.com/bridges-advising/scheduler/internal/model"
	"github.com/bridges-advising/scheduler/internal/repository/memstore"
)

type matchingFixture struct {
	store   *memstore.Store
	service *MatchingService
}

func newMatchingFixture(t *testing.T, mergeSlots bool) *matchingFixture {
	t.Helper()
	store := memstore.New()
	return &matchingFixture{
		store: store,
		service: NewMatchingService(
			store, store, store.Needs(), store.Windows(),
			mergeSlots, zap.NewNop(),
		),
	}
}

func (f *matchingFixture) addUser(t *testing.T, role model.UserRole, isRemote bool) *model.User {
	t.Helper()
	user := &model.User{Role: role, IsRemote: isRemote}
	require.NoError(t, f.store.CreateUser(context.Background(), user))
	return user
}

func TestMatchStaffForStudentBySubjectNeed(t *testing.T) {
	ctx := context.Background()
	f := newMatchingFixture(t, false)

	student := f.addUser(t, model.RoleStudent, false)
	staffA := f.addUser(t, model.RoleProfessionalStaff, false)
	staffB := f.addUser(t, model.RoleProfessionalStaff, false)

	require.NoError(t, f.store.CreateNeed(ctx, &model.StudentSubject{
		UserID: student.ID, SubjectID: 1, PriorityLevel: 5,
	}))
	require.NoError(t, f.store.CreateExpertise(ctx, &model.StaffExpertise{
		UserID: staffA.ID, SubjectID: 1, ProficiencyLevel: 5,
	}))
	require.NoError(t, f.store.CreateExpertise(ctx, &model.StaffExpertise{
		UserID: staffB.ID, SubjectID: 2, ProficiencyLevel: 5,
	}))

	matched, err := f.service.MatchStaffForStudent(ctx, student.ID, nil, false)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, staffA.ID, matched[0].ID)

	// Компетентность 5 по приоритетному предмету — learning strategist
	meetingType, err := f.service.SuggestMeetingType(ctx, student.ID, staffA.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingLearningStrategist, meetingType)
}

func TestMatchStaffForStudentFailOpen(t *testing.T) {
	ctx := context.Background()
	f := newMatchingFixture(t, false)

	student := f.addUser(t, model.RoleStudent, false)
	f.addUser(t, model.RoleProfessionalStaff, false)
	f.addUser(t, model.RoleStudentStaff, false)
	f.addUser(t, model.RoleProfessionalStaff, false)

	// Потребности не записаны — возвращается весь штат
	matched, err := f.service.MatchStaffForStudent(ctx, student.ID, nil, false)
	require.NoError(t, err)
	assert.Len(t, matched, 3)
}

func TestMatchStaffForStudentUnknownStudent(t *testing.T) {
	f := newMatchingFixture(t, false)

	_, err := f.service.MatchStaffForStudent(context.Background(), 42, nil, false)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestMatchStaffForStudentWithAvailability(t *testing.T) {
	ctx := context.Background()
	f := newMatchingFixture(t, false)

	student := f.addUser(t, model.RoleStudent, false)
	staffA := f.addUser(t, model.RoleProfessionalStaff, false)
	staffB := f.addUser(t, model.RoleProfessionalStaff, false)

	for _, staffID := range []int64{staffA.ID, staffB.ID} {
		require.NoError(t, f.store.CreateExpertise(ctx, &model.StaffExpertise{
			UserID: staffID, SubjectID: 1, ProficiencyLevel: 4,
		}))
	}
	require.NoError(t, f.store.CreateNeed(ctx, &model.StudentSubject{
		UserID: student.ID, SubjectID: 1, PriorityLevel: 3,
	}))

	// Студент свободен в понедельник утром; пересечение есть только у staffA
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: student.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00",
	}))
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: staffA.ID, DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00",
	}))
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: staffB.ID, DayOfWeek: 4, StartTime: "10:00", EndTime: "12:00",
	}))

	matched, err := f.service.MatchStaffForStudent(ctx, student.ID, nil, true)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, staffA.ID, matched[0].ID)
}

func TestFindAvailableTimeslots(t *testing.T) {
	ctx := context.Background()
	f := newMatchingFixture(t, false)

	student := f.addUser(t, model.RoleStudent, false)
	staff := f.addUser(t, model.RoleProfessionalStaff, false)

	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: student.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00",
	}))
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: staff.ID, DayOfWeek: 1, StartTime: "09:30", EndTime: "10:30",
	}))

	slots, err := f.service.FindAvailableTimeslots(ctx, student.ID, staff.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, matching.Slot{Day: 1, Start: "09:30", End: "10:00"}, slots[0])
}

func TestFindAvailableTimeslotsMergeOption(t *testing.T) {
	ctx := context.Background()
	f := newMatchingFixture(t, true)

	student := f.addUser(t, model.RoleStudent, false)
	staff := f.addUser(t, model.RoleProfessionalStaff, false)

	// Пересекающиеся окна студента дали бы два слота; с включённым
	// объединением остаётся один
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: student.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	}))
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: student.ID, DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00",
	}))
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: staff.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	}))

	slots, err := f.service.FindAvailableTimeslots(ctx, student.ID, staff.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, matching.Slot{Day: 1, Start: "09:00", End: "12:00"}, slots[0])
}

func TestProposeMeetingRemoteOverride(t *testing.T) {
	ctx := context.Background()
	f := newMatchingFixture(t, false)

	student := f.addUser(t, model.RoleStudent, false)
	remoteStaff := f.addUser(t, model.RoleProfessionalStaff, true)

	// Несмотря на указанное в окнах место, встреча с удалённым
	// сотрудником виртуальная
	require.NoError(t, f.store.CreateAvailability(ctx, &model.Availability{
		UserID: remoteStaff.ID, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", Location: "Office 214",
	}))

	meeting, err := f.service.ProposeMeeting(ctx, ProposeMeetingRequest{
		StudentID: student.ID,
		StaffID:   remoteStaff.ID,
		Date:      time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.True(t, meeting.IsVirtual)
	assert.Equal(t, matching.LocationVirtual, meeting.Location)
	assert.Equal(t, model.MeetingStatusScheduled, meeting.Status)
	assert.Equal(t, model.MeetingCombo, meeting.MeetingType)
}

func TestProposeMeetingRejectsNonStaff(t *testing.T) {
	ctx := context.Background()
	f := newMatchingFixture(t, false)

	student := f.addUser(t, model.RoleStudent, false)
	other := f.addUser(t, model.RoleFaculty, false)

	_, err := f.service.ProposeMeeting(ctx, ProposeMeetingRequest{
		StudentID: student.ID,
		StaffID:   other.ID,
		Date:      time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrNotStaff)
}
