package matching

import "github.com/bridges-advising/scheduler/internal/model"

const (
	LocationVirtual = "Virtual"
	LocationTBD     = "TBD"
)

// Placement место и формат будущей встречи
type Placement struct {
	Location  string
	IsVirtual bool
}

// DetermineLocation выбирает место встречи. Если студент или сотрудник
// работает удалённо, встреча становится виртуальной независимо от любых
// предпочтений по месту — это жёсткое правило, не рекомендация.
// Иначе берётся первое окно сотрудника с указанным местом, затем окно
// студента, затем "TBD".
func DetermineLocation(student, staff model.User, studentWindows, staffWindows []model.Availability) Placement {
	if staff.IsRemote || student.IsRemote {
		return Placement{Location: LocationVirtual, IsVirtual: true}
	}

	for _, window := range staffWindows {
		if window.Location != "" {
			return Placement{Location: window.Location}
		}
	}

	for _, window := range studentWindows {
		if window.Location != "" {
			return Placement{Location: window.Location}
		}
	}

	return Placement{Location: LocationTBD}
}
