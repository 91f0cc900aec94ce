package matching

import (
	"sort"

	"github.com/bridges-advising/scheduler/internal/model"
)

// MinSlotMinutes минимальная длительность пересечения, при которой
// окно считается пригодным для встречи.
const MinSlotMinutes = 30

// Slot общее свободное окно студента и сотрудника
type Slot struct {
	Day      int    `json:"day"` // 0-6, воскресенье = 0
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

// FindSlots перебирает по каждому дню недели все пары окон студента и
// сотрудника и возвращает пересечения длительностью не меньше MinSlotMinutes.
// Окна внутри одного списка не объединяются: если у пользователя записаны
// пересекающиеся окна на один день, в результате будут дубликаты по одному
// и тому же времени — по одному на каждую пару. Вызывающая сторона может
// убрать их через MergeSlots.
//
// Для места встречи предпочитается окно сотрудника, затем окно студента.
func FindSlots(studentWindows, staffWindows []model.Availability) ([]Slot, error) {
	if len(studentWindows) == 0 || len(staffWindows) == 0 {
		return nil, nil
	}

	var slots []Slot

	for day := 0; day < 7; day++ {
		for _, studentSlot := range studentWindows {
			if studentSlot.DayOfWeek != day {
				continue
			}

			studentStart, err := TimeToMinutes(studentSlot.StartTime)
			if err != nil {
				return nil, err
			}
			studentEnd, err := TimeToMinutes(studentSlot.EndTime)
			if err != nil {
				return nil, err
			}

			for _, staffSlot := range staffWindows {
				if staffSlot.DayOfWeek != day {
					continue
				}

				staffStart, err := TimeToMinutes(staffSlot.StartTime)
				if err != nil {
					return nil, err
				}
				staffEnd, err := TimeToMinutes(staffSlot.EndTime)
				if err != nil {
					return nil, err
				}

				overlapStart, overlapEnd, ok := Overlap(studentStart, studentEnd, staffStart, staffEnd)
				if !ok || overlapEnd-overlapStart < MinSlotMinutes {
					continue
				}

				location := staffSlot.Location
				if location == "" {
					location = studentSlot.Location
				}

				slots = append(slots, Slot{
					Day:      day,
					Start:    MinutesToTime(overlapStart),
					End:      MinutesToTime(overlapEnd),
					Location: location,
				})
			}
		}
	}

	return slots, nil
}

// MergeSlots объединяет пересекающиеся и смежные окна одного дня.
// Место берётся из первого окна объединяемой группы. Порядок результата —
// по дню недели, затем по времени начала.
func MergeSlots(slots []Slot) []Slot {
	if len(slots) < 2 {
		return slots
	}

	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].Start < sorted[j].Start
	})

	merged := []Slot{sorted[0]}
	for _, slot := range sorted[1:] {
		last := &merged[len(merged)-1]
		// "HH:MM" с ведущими нулями сравнивается лексикографически корректно
		if slot.Day == last.Day && slot.Start <= last.End {
			if slot.End > last.End {
				last.End = slot.End
			}
			continue
		}
		merged = append(merged, slot)
	}

	return merged
}
