package matching

import "github.com/bridges-advising/scheduler/internal/model"

// Modality требуемый формат встречи при поиске замены
type Modality string

const (
	ModalityAny      Modality = ""
	ModalityVirtual  Modality = "VIRTUAL"
	ModalityInPerson Modality = "IN_PERSON"
)

// StaffProfile кандидат на замену вместе с его компетенциями и доступностью
type StaffProfile struct {
	User         model.User
	Expertise    []model.StaffExpertise
	Availability []model.Availability
}

// FindAlternativeStaff ищет замену сотруднику для существующей встречи.
// Кандидат подходит, если он:
//   - не исходный сотрудник;
//   - компетентен в том же предмете не ниже уровня исходного сотрудника;
//   - имеет в день недели встречи окно, целиком покрывающее её время;
//   - соответствует требуемому формату (удалённый — для виртуальных встреч).
//
// Пустой результат — не ошибка: эскалация остаётся на вызывающей стороне.
func FindAlternativeStaff(
	meeting model.Meeting,
	originalStaffID int64,
	required model.StaffExpertise,
	candidates []StaffProfile,
	modality Modality,
) ([]model.User, error) {
	meetingStart, err := TimeToMinutes(meeting.StartTime)
	if err != nil {
		return nil, err
	}
	meetingEnd, err := TimeToMinutes(meeting.EndTime)
	if err != nil {
		return nil, err
	}
	weekday := int(meeting.Date.UTC().Weekday())

	var alternatives []model.User
	for _, candidate := range candidates {
		if candidate.User.ID == originalStaffID {
			continue
		}

		hasExpertise := false
		for _, expertise := range candidate.Expertise {
			if expertise.SubjectID == required.SubjectID &&
				expertise.ProficiencyLevel >= required.ProficiencyLevel {
				hasExpertise = true
				break
			}
		}
		if !hasExpertise {
			continue
		}

		isAvailable := false
		for _, window := range candidate.Availability {
			if window.DayOfWeek != weekday {
				continue
			}
			windowStart, err := TimeToMinutes(window.StartTime)
			if err != nil {
				return nil, err
			}
			windowEnd, err := TimeToMinutes(window.EndTime)
			if err != nil {
				return nil, err
			}
			if windowStart <= meetingStart && windowEnd >= meetingEnd {
				isAvailable = true
				break
			}
		}
		if !isAvailable {
			continue
		}

		switch modality {
		case ModalityVirtual:
			if !candidate.User.IsRemote {
				continue
			}
		case ModalityInPerson:
			if candidate.User.IsRemote {
				continue
			}
		}

		alternatives = append(alternatives, candidate.User)
	}

	return alternatives, nil
}
