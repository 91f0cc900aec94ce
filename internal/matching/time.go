package matching

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeToMinutes переводит время "HH:MM" в минуты от начала суток.
// Формат валидируется на границе системы (формы), здесь ошибка
// означает, что в движок попали неподготовленные данные.
func TimeToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", t)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", t)
	}

	return hours*60 + minutes, nil
}

// MinutesToTime обратное преобразование, минуты ожидаются в [0, 1439]
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlap вычисляет пересечение двух интервалов в минутах.
// ok == false, если интервалы не пересекаются (касание границами — не пересечение).
func Overlap(aStart, aEnd, bStart, bEnd int) (start, end int, ok bool) {
	start = max(aStart, bStart)
	end = min(aEnd, bEnd)
	if end-start <= 0 {
		return 0, 0, false
	}
	return start, end, true
}
