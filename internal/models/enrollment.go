package models

import "time"

// Enrollment links one student to one class. The pair is unique.
type Enrollment struct {
	StudentID string    `db:"student_id" json:"student_id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
