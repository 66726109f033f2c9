package models

import "time"

// Enrollment statuses. Only active rows count as "enrolled" for quiz access
// control and notification fan-out.
const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusDropped   = "dropped"
)

// StudentCourse links a student to a course. One row per pair; dropping sets
// the status rather than deleting the row.
type StudentCourse struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;uniqueIndex:uniq_student_course" json:"student_id"`
	CourseID   uint      `gorm:"not null;uniqueIndex:uniq_student_course" json:"course_id"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
	Status     string    `gorm:"size:20;default:active" json:"status"`

	Student Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`
	Course  Course  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course,omitempty"`
}
