package model

// Шкала компетентности и приоритета — целые числа от 1 до 5
const (
	LevelMin = 1
	LevelMax = 5
)

// StaffExpertise связывает сотрудника с предметом, в котором он компетентен
type StaffExpertise struct {
	ID               int64 `json:"id"`
	UserID           int64 `json:"user_id"`
	SubjectID        int64 `json:"subject_id"`
	ProficiencyLevel int   `json:"proficiency_level"` // 1-5, выше — компетентнее
}

// StudentSubject связывает студента с предметом, по которому ему нужна помощь
type StudentSubject struct {
	ID            int64 `json:"id"`
	UserID        int64 `json:"user_id"`
	SubjectID     int64 `json:"subject_id"`
	PriorityLevel int   `json:"priority_level"` // 1-5, выше — срочнее
}
