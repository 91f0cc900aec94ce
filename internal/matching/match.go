package matching

import "github.com/bridges-advising/scheduler/internal/model"

// MatchStaff отбирает из списка сотрудников тех, кто подходит студенту
// по компетенциям.
//
// Если subjectID задан, сотрудник должен быть компетентен именно в этом
// предмете. Иначе подходит компетенция в любом предмете из потребностей
// студента. Если у студента не записано ни одной потребности и предмет
// не задан, возвращается весь список сотрудников — лучше дать человеку
// выбрать, чем заблокировать запись из-за незаполненных данных.
//
// Порядок результата повторяет порядок входного списка сотрудников.
func MatchStaff(
	studentID int64,
	subjectID *int64,
	staff []model.User,
	studentNeeds []model.StudentSubject,
	staffExpertise []model.StaffExpertise,
) []model.User {
	relevantSubjects := make(map[int64]struct{})
	if subjectID != nil {
		relevantSubjects[*subjectID] = struct{}{}
	} else {
		for _, need := range studentNeeds {
			if need.UserID == studentID {
				relevantSubjects[need.SubjectID] = struct{}{}
			}
		}
	}

	if len(relevantSubjects) == 0 {
		matched := make([]model.User, len(staff))
		copy(matched, staff)
		return matched
	}

	qualified := make(map[int64]struct{})
	for _, expertise := range staffExpertise {
		if _, ok := relevantSubjects[expertise.SubjectID]; ok {
			qualified[expertise.UserID] = struct{}{}
		}
	}

	var matched []model.User
	for _, member := range staff {
		if _, ok := qualified[member.ID]; ok {
			matched = append(matched, member)
		}
	}

	return matched
}
