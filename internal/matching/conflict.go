package matching

import (
	"time"

	"github.com/bridges-advising/scheduler/internal/model"
)

// ProposedMeeting встреча, которую пытаются поставить в расписание
type ProposedMeeting struct {
	StudentID int64
	StaffID   int64
	Date      time.Time
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// DetectConflicts ищет среди существующих встреч пересечения с предлагаемой:
// та же календарная дата, тот же студент или тот же сотрудник, ненулевое
// пересечение по времени. Отменённые встречи не учитываются.
//
// Найденный конфликт — факт, а не ошибка: вызывающая сторона сама решает,
// блокировать встречу, предупредить или записать конфликт для разбора.
func DetectConflicts(proposed ProposedMeeting, existing []model.Meeting) ([]model.Meeting, error) {
	newStart, err := TimeToMinutes(proposed.StartTime)
	if err != nil {
		return nil, err
	}
	newEnd, err := TimeToMinutes(proposed.EndTime)
	if err != nil {
		return nil, err
	}

	var colliding []model.Meeting
	for _, meeting := range existing {
		if meeting.Status == model.MeetingStatusCancelled {
			continue
		}
		if !sameDay(meeting.Date, proposed.Date) {
			continue
		}
		if meeting.StudentID != proposed.StudentID && meeting.StaffID != proposed.StaffID {
			continue
		}

		existingStart, err := TimeToMinutes(meeting.StartTime)
		if err != nil {
			return nil, err
		}
		existingEnd, err := TimeToMinutes(meeting.EndTime)
		if err != nil {
			return nil, err
		}

		// Полуоткрытые интервалы: встречи [10:00,11:00) и [11:00,12:00)
		// не конфликтуют
		overlaps := (newStart >= existingStart && newStart < existingEnd) ||
			(newEnd > existingStart && newEnd <= existingEnd) ||
			(newStart <= existingStart && newEnd >= existingEnd)

		if overlaps {
			colliding = append(colliding, meeting)
		}
	}

	return colliding, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
