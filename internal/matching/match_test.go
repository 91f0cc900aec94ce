package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridges-advising/scheduler/internal/model"
)

const (
	subjectMath int64 = 1
	subjectEngl int64 = 2
	subjectCS   int64 = 3
)

func staffMember(id int64) model.User {
	return model.User{ID: id, Role: model.RoleProfessionalStaff}
}

func TestMatchStaffBySubjectNeed(t *testing.T) {
	staffA := staffMember(10)
	staffB := staffMember(11)

	needs := []model.StudentSubject{
		{UserID: 1, SubjectID: subjectMath, PriorityLevel: 5},
	}
	expertise := []model.StaffExpertise{
		{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 5},
		{UserID: 11, SubjectID: subjectEngl, ProficiencyLevel: 5},
	}

	matched := MatchStaff(1, nil, []model.User{staffA, staffB}, needs, expertise)
	require.Len(t, matched, 1)
	assert.Equal(t, staffA.ID, matched[0].ID)
}

func TestMatchStaffFailOpen(t *testing.T) {
	// Нет потребностей и нет фильтра по предмету — весь список сотрудников
	roster := []model.User{staffMember(10), staffMember(11), staffMember(12)}

	matched := MatchStaff(1, nil, roster, nil, []model.StaffExpertise{
		{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 3},
	})
	assert.Len(t, matched, len(roster))
}

func TestMatchStaffExplicitSubjectFailClosed(t *testing.T) {
	// Явный фильтр по предмету без компетентных сотрудников — пустой
	// результат, без отката к полному списку
	roster := []model.User{staffMember(10), staffMember(11)}
	expertise := []model.StaffExpertise{
		{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 5},
	}

	subject := subjectCS
	matched := MatchStaff(1, &subject, roster, nil, expertise)
	assert.Empty(t, matched)
}

func TestMatchStaffExplicitSubjectOverridesNeeds(t *testing.T) {
	roster := []model.User{staffMember(10), staffMember(11)}
	needs := []model.StudentSubject{
		{UserID: 1, SubjectID: subjectMath, PriorityLevel: 5},
	}
	expertise := []model.StaffExpertise{
		{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 5},
		{UserID: 11, SubjectID: subjectEngl, ProficiencyLevel: 4},
	}

	subject := subjectEngl
	matched := MatchStaff(1, &subject, roster, needs, expertise)
	require.Len(t, matched, 1)
	assert.Equal(t, int64(11), matched[0].ID)
}

func TestMatchStaffIgnoresOtherStudentsNeeds(t *testing.T) {
	roster := []model.User{staffMember(10)}
	needs := []model.StudentSubject{
		{UserID: 2, SubjectID: subjectMath, PriorityLevel: 5}, // чужая потребность
	}
	expertise := []model.StaffExpertise{
		{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 5},
	}

	// Для студента 1 потребностей нет — fail-open
	matched := MatchStaff(1, nil, roster, needs, expertise)
	assert.Len(t, matched, 1)
}

func TestMatchStaffPreservesRosterOrder(t *testing.T) {
	roster := []model.User{staffMember(12), staffMember(10), staffMember(11)}
	needs := []model.StudentSubject{
		{UserID: 1, SubjectID: subjectMath, PriorityLevel: 3},
	}
	expertise := []model.StaffExpertise{
		{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 2},
		{UserID: 12, SubjectID: subjectMath, ProficiencyLevel: 4},
	}

	matched := MatchStaff(1, nil, roster, needs, expertise)
	require.Len(t, matched, 2)
	assert.Equal(t, int64(12), matched[0].ID)
	assert.Equal(t, int64(10), matched[1].ID)
}
