package models

import "time"

// Module represents a taught course module that assignments belong to.
// The enroll key is fixed at creation time and never updated afterwards.
type Module struct {
	ID        string    `gorm:"primaryKey;size:64" json:"module_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Year      int       `gorm:"not null" json:"year"`
	Semester  int       `gorm:"not null" json:"semester"`
	EnrollKey string    `gorm:"size:64;not null" json:"enroll_key"`
	CreatedAt time.Time `json:"created_at"`
}
