package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridges-advising/scheduler/internal/model"
)

// 2024-03-04 — понедельник
var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func replacementMeeting() model.Meeting {
	return model.Meeting{
		ID:        7,
		StudentID: 1,
		StaffID:   10,
		Date:      monday,
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    model.MeetingStatusScheduled,
	}
}

func candidate(id int64, proficiency int, windows ...model.Availability) StaffProfile {
	return StaffProfile{
		User: model.User{ID: id, Role: model.RoleProfessionalStaff},
		Expertise: []model.StaffExpertise{
			{UserID: id, SubjectID: subjectMath, ProficiencyLevel: proficiency},
		},
		Availability: windows,
	}
}

func TestFindAlternativeStaff(t *testing.T) {
	required := model.StaffExpertise{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 3}

	candidates := []StaffProfile{
		candidate(10, 5, window(1, "09:00", "12:00", "")), // исходный сотрудник
		candidate(11, 4, window(1, "09:00", "12:00", "")), // подходит
		candidate(12, 2, window(1, "09:00", "12:00", "")), // компетентность ниже требуемой
		candidate(13, 5, window(1, "10:30", "12:00", "")), // окно не покрывает встречу целиком
		candidate(14, 5, window(2, "09:00", "12:00", "")), // не тот день недели
	}

	alternatives, err := FindAlternativeStaff(replacementMeeting(), 10, required, candidates, ModalityAny)
	require.NoError(t, err)
	require.Len(t, alternatives, 1)
	assert.Equal(t, int64(11), alternatives[0].ID)
}

func TestFindAlternativeStaffModality(t *testing.T) {
	required := model.StaffExpertise{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 3}

	onCampus := candidate(11, 5, window(1, "09:00", "12:00", ""))
	remote := candidate(12, 5, window(1, "09:00", "12:00", ""))
	remote.User.IsRemote = true

	candidates := []StaffProfile{onCampus, remote}

	virtual, err := FindAlternativeStaff(replacementMeeting(), 10, required, candidates, ModalityVirtual)
	require.NoError(t, err)
	require.Len(t, virtual, 1)
	assert.Equal(t, int64(12), virtual[0].ID)

	inPerson, err := FindAlternativeStaff(replacementMeeting(), 10, required, candidates, ModalityInPerson)
	require.NoError(t, err)
	require.Len(t, inPerson, 1)
	assert.Equal(t, int64(11), inPerson[0].ID)

	any, err := FindAlternativeStaff(replacementMeeting(), 10, required, candidates, ModalityAny)
	require.NoError(t, err)
	assert.Len(t, any, 2)
}

func TestFindAlternativeStaffNoCandidates(t *testing.T) {
	required := model.StaffExpertise{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 5}

	// Пустой результат — обычное значение, не ошибка
	alternatives, err := FindAlternativeStaff(replacementMeeting(), 10, required, nil, ModalityAny)
	require.NoError(t, err)
	assert.Empty(t, alternatives)
}

func TestFindAlternativeStaffExactWindowCover(t *testing.T) {
	required := model.StaffExpertise{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 3}

	// Окно, совпадающее с временем встречи, подходит
	exact := candidate(11, 3, window(1, "10:00", "11:00", ""))
	alternatives, err := FindAlternativeStaff(replacementMeeting(), 10, required, []StaffProfile{exact}, ModalityAny)
	require.NoError(t, err)
	assert.Len(t, alternatives, 1)
}
