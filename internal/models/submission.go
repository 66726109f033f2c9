package models

import "time"

// Submission statuses.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusEvaluated = "evaluated"
)

// Submission is a student's answer to an assignment. The unique index makes
// submissions write-once per (assignment, student); a racing duplicate is
// rejected at the storage layer.
type Submission struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AssignmentID   uint      `gorm:"not null;uniqueIndex:uniq_assignment_student" json:"assignment_id"`
	StudentID      uint      `gorm:"not null;uniqueIndex:uniq_assignment_student" json:"student_id"`
	SubmissionText string    `gorm:"type:text" json:"submission_text"`
	FileURL        string    `gorm:"size:500" json:"file_url"`
	SubmittedAt    time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	Status         string    `gorm:"size:20;default:submitted" json:"status"`

	Assignment Assignment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment,omitempty"`
	Student    Student     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student,omitempty"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Evaluation is the staff grade for exactly one submission. Repeated grading
// overwrites this row rather than appending.
type Evaluation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SubmissionID  uint      `gorm:"uniqueIndex;not null" json:"submission_id"`
	StaffID       *uint     `gorm:"index" json:"staff_id"`
	MarksObtained *float64  `json:"marks_obtained"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
	Status        string    `gorm:"size:20;default:evaluated" json:"status"`
}

// IsGraded reports whether a mark has been entered for this submission.
func (s Submission) IsGraded() bool {
	return s.Evaluation != nil && s.Evaluation.MarksObtained != nil
}
