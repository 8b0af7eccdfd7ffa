package models

import "time"

// User roles stored against an account. Authentication itself happens
// upstream; this service only persists the identity and role string.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// UserStatusActive is the default status for newly registered accounts.
const UserStatusActive = "active"

// User represents a registered account, either a student or an instructor.
type User struct {
	UID              string    `gorm:"primaryKey;size:64" json:"uid"`
	Email            string    `gorm:"size:255;not null" json:"email"`
	Role             string    `gorm:"size:32;not null" json:"role"`
	StudentName      string    `gorm:"size:255" json:"studentName,omitempty"`
	StudentID        string    `gorm:"size:64;index" json:"studentId,omitempty"`
	AcademicYear     string    `gorm:"size:16" json:"academicYear,omitempty"`
	AcademicSemester string    `gorm:"size:16" json:"academicSemester,omitempty"`
	ProfilePicURL    string    `gorm:"size:512" json:"profilePicUrl,omitempty"`
	Status           string    `gorm:"size:32" json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}
