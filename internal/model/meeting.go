package model

import "time"

type MeetingType string

const (
	MeetingLearningStrategist MeetingType = "LEARNING_STRATEGIST"
	MeetingCombo              MeetingType = "COMBO"
	MeetingVocationalCoach    MeetingType = "VOCATIONAL_COACH"
	MeetingSocialCoach        MeetingType = "SOCIAL_COACH"
	MeetingAcademicCoach      MeetingType = "ACADEMIC_COACH"
	MeetingCheckIn            MeetingType = "CHECK_IN"
)

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCancelled MeetingStatus = "cancelled"
	MeetingStatusCompleted MeetingStatus = "completed"
)

type Meeting struct {
	ID          int64         `json:"id"`
	StudentID   int64         `json:"student_id"`
	StaffID     int64         `json:"staff_id"`
	MeetingType MeetingType   `json:"meeting_type"`
	SubjectID   *int64        `json:"subject_id"` // указатель - может быть nil
	Date        time.Time     `json:"date"`
	StartTime   string        `json:"start_time"` // "HH:MM"
	EndTime     string        `json:"end_time"`   // "HH:MM"
	Location    string        `json:"location"`
	IsVirtual   bool          `json:"is_virtual"`
	Status      MeetingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
