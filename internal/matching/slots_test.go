package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bridges-advising/scheduler/internal/model"
)

func window(day int, start, end, location string) model.Availability {
	return model.Availability{DayOfWeek: day, StartTime: start, EndTime: end, Location: location}
}

func TestFindSlots(t *testing.T) {
	// Студент: понедельник 09:00-10:00, сотрудник: понедельник 09:30-10:30.
	// Пересечение ровно 30 минут — включается.
	slots, err := FindSlots(
		[]model.Availability{window(1, "09:00", "10:00", "")},
		[]model.Availability{window(1, "09:30", "10:30", "")},
	)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, Slot{Day: 1, Start: "09:30", End: "10:00"}, slots[0])
}

func TestFindSlotsThreshold(t *testing.T) {
	// 29 минут пересечения — отбрасывается
	slots, err := FindSlots(
		[]model.Availability{window(2, "09:00", "09:29", "")},
		[]model.Availability{window(2, "09:00", "12:00", "")},
	)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// Ровно 30 минут — остаётся
	slots, err = FindSlots(
		[]model.Availability{window(2, "09:00", "09:30", "")},
		[]model.Availability{window(2, "09:00", "12:00", "")},
	)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestFindSlotsEmptyInput(t *testing.T) {
	slots, err := FindSlots(nil, []model.Availability{window(1, "09:00", "10:00", "")})
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = FindSlots([]model.Availability{window(1, "09:00", "10:00", "")}, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFindSlotsLocationPreference(t *testing.T) {
	// Место сотрудника важнее места студента
	slots, err := FindSlots(
		[]model.Availability{window(1, "09:00", "11:00", "Library")},
		[]model.Availability{window(1, "09:00", "11:00", "Office 214")},
	)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Office 214", slots[0].Location)

	// У сотрудника места нет — берётся место студента
	slots, err = FindSlots(
		[]model.Availability{window(1, "09:00", "11:00", "Library")},
		[]model.Availability{window(1, "09:00", "11:00", "")},
	)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Library", slots[0].Location)
}

func TestFindSlotsDuplicateEmission(t *testing.T) {
	// Пересекающиеся окна одного пользователя не объединяются заранее:
	// каждая пара окон даёт отдельный слот, дубликаты по времени возможны.
	slots, err := FindSlots(
		[]model.Availability{
			window(1, "09:00", "12:00", ""),
			window(1, "10:00", "11:00", ""),
		},
		[]model.Availability{window(1, "09:00", "12:00", "")},
	)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "12:00", slots[0].End)
	assert.Equal(t, "10:00", slots[1].Start)
	assert.Equal(t, "11:00", slots[1].End)
}

func TestFindSlotsMalformedTime(t *testing.T) {
	_, err := FindSlots(
		[]model.Availability{window(1, "morning", "10:00", "")},
		[]model.Availability{window(1, "09:00", "10:00", "")},
	)
	assert.Error(t, err)
}

func TestMergeSlots(t *testing.T) {
	merged := MergeSlots([]Slot{
		{Day: 1, Start: "09:00", End: "12:00"},
		{Day: 1, Start: "10:00", End: "11:00"},
		{Day: 1, Start: "12:00", End: "13:00"},
		{Day: 3, Start: "09:00", End: "10:00"},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, Slot{Day: 1, Start: "09:00", End: "13:00"}, merged[0])
	assert.Equal(t, Slot{Day: 3, Start: "09:00", End: "10:00"}, merged[1])
}

func TestMergeSlotsKeepsDisjoint(t *testing.T) {
	slots := []Slot{
		{Day: 1, Start: "09:00", End: "10:00"},
		{Day: 1, Start: "14:00", End: "15:00"},
	}
	assert.Equal(t, slots, MergeSlots(slots))
}
