package matching

import (
	"sort"

	"github.com/bridges-advising/scheduler/internal/model"
)

// StrategistProficiencyMin минимальная компетентность сотрудника по
// приоритетному предмету студента, при которой рекомендуется встреча
// с learning strategist вместо academic coach.
const StrategistProficiencyMin = 4

// RecommendMeetingType подбирает тип встречи по потребностям студента
// и компетенциям сотрудника. Рекомендация — подсказка для формы,
// создание встречи она не блокирует.
func RecommendMeetingType(
	studentID, staffID int64,
	studentNeeds []model.StudentSubject,
	staffExpertise []model.StaffExpertise,
) model.MeetingType {
	var needs []model.StudentSubject
	for _, need := range studentNeeds {
		if need.UserID == studentID {
			needs = append(needs, need)
		}
	}

	if len(needs) == 0 {
		return model.MeetingCombo
	}

	sort.SliceStable(needs, func(i, j int) bool {
		return needs[i].PriorityLevel > needs[j].PriorityLevel
	})
	topSubject := needs[0].SubjectID

	for _, expertise := range staffExpertise {
		if expertise.UserID != staffID || expertise.SubjectID != topSubject {
			continue
		}
		if expertise.ProficiencyLevel >= StrategistProficiencyMin {
			return model.MeetingLearningStrategist
		}
		return model.MeetingAcademicCoach
	}

	// Компетенции по приоритетному предмету нет — комбинированная встреча
	return model.MeetingCombo
}
