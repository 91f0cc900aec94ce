package model

import "time"

type UserRole string

const (
	RoleStudent           UserRole = "STUDENT"
	RoleStudentStaff      UserRole = "STUDENT_STAFF"
	RoleProfessionalStaff UserRole = "PROFESSIONAL_STAFF"
	RoleFaculty           UserRole = "FACULTY"
	RoleAdmin             UserRole = "ADMIN"
)

type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Role              UserRole  `json:"role"`
	IsRemote          bool      `json:"is_remote"` // удалённый участник — встречи только виртуальные
	IsCommuter        bool      `json:"is_commuter"`
	PreferredLocation string    `json:"preferred_location"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsStaff проверяет, может ли пользователь вести встречи со студентами
func (u *User) IsStaff() bool {
	return u.Role == RoleStudentStaff || u.Role == RoleProfessionalStaff
}
