package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bridges-advising/scheduler/internal/model"
)

func TestRecommendMeetingType(t *testing.T) {
	tests := []struct {
		name      string
		needs     []model.StudentSubject
		expertise []model.StaffExpertise
		want      model.MeetingType
	}{
		{
			name: "high proficiency in top subject",
			needs: []model.StudentSubject{
				{UserID: 1, SubjectID: subjectMath, PriorityLevel: 5},
			},
			expertise: []model.StaffExpertise{
				{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 5},
			},
			want: model.MeetingLearningStrategist,
		},
		{
			name: "threshold proficiency",
			needs: []model.StudentSubject{
				{UserID: 1, SubjectID: subjectMath, PriorityLevel: 5},
			},
			expertise: []model.StaffExpertise{
				{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: StrategistProficiencyMin},
			},
			want: model.MeetingLearningStrategist,
		},
		{
			name: "low proficiency in top subject",
			needs: []model.StudentSubject{
				{UserID: 1, SubjectID: subjectMath, PriorityLevel: 5},
			},
			expertise: []model.StaffExpertise{
				{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 3},
			},
			want: model.MeetingAcademicCoach,
		},
		{
			name: "no expertise in top subject",
			needs: []model.StudentSubject{
				{UserID: 1, SubjectID: subjectMath, PriorityLevel: 5},
				{UserID: 1, SubjectID: subjectEngl, PriorityLevel: 2},
			},
			expertise: []model.StaffExpertise{
				{UserID: 10, SubjectID: subjectEngl, ProficiencyLevel: 5},
			},
			want: model.MeetingCombo,
		},
		{
			name:      "no needs at all",
			needs:     nil,
			expertise: []model.StaffExpertise{{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 5}},
			want:      model.MeetingCombo,
		},
		{
			name: "top subject picked by priority",
			needs: []model.StudentSubject{
				{UserID: 1, SubjectID: subjectEngl, PriorityLevel: 2},
				{UserID: 1, SubjectID: subjectMath, PriorityLevel: 4},
			},
			expertise: []model.StaffExpertise{
				{UserID: 10, SubjectID: subjectMath, ProficiencyLevel: 2},
				{UserID: 10, SubjectID: subjectEngl, ProficiencyLevel: 5},
			},
			want: model.MeetingAcademicCoach,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendMeetingType(1, 10, tt.needs, tt.expertise)
			assert.Equal(t, tt.want, got)
		})
	}
}
