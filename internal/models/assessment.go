package models

import (
	"strings"
	"time"
)

// Assignment is graded coursework posted by staff for a course. DueDate and
// MaxMarks are optional; an assignment without a due date never contributes
// to deadline gating.
type Assignment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	CourseID        uint       `gorm:"index;not null" json:"course_id"`
	StaffID         *uint      `gorm:"index" json:"staff_id"`
	StudyMaterialID *uint      `gorm:"index" json:"study_material_id"`
	DueDate         *time.Time `json:"due_date"`
	MaxMarks        *float64   `json:"max_marks"`
	FileURL         string     `gorm:"size:500" json:"file_url"`
	CreatedAt       time.Time  `json:"created_at"`

	Course Course `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course,omitempty"`
}

// IsPastDue reports whether the deadline has passed at the reference time.
// Assignments without a due date are never past due.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return a.DueDate != nil && reference.After(*a.DueDate)
}

// MCQ is a multiple-choice quiz question belonging to a course. Options C and
// D are optional for two-option questions.
type MCQ struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	QuestionText    string    `gorm:"type:text;not null" json:"question_text"`
	OptionA         string    `gorm:"size:500;not null" json:"option_a"`
	OptionB         string    `gorm:"size:500;not null" json:"option_b"`
	OptionC         string    `gorm:"size:500" json:"option_c"`
	OptionD         string    `gorm:"size:500" json:"option_d"`
	CorrectAnswer   string    `gorm:"size:1;not null" json:"-"`
	Marks           float64   `gorm:"default:1" json:"marks"`
	CourseID        uint      `gorm:"index;not null" json:"course_id"`
	StaffID         *uint     `gorm:"index" json:"staff_id"`
	StudyMaterialID *uint     `gorm:"index" json:"study_material_id"`
	CreatedAt       time.Time `json:"created_at"`

	Course Course `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course,omitempty"`
}

// MarkValue returns the marks awarded for a correct answer, defaulting to 1.
func (m MCQ) MarkValue() float64 {
	if m.Marks <= 0 {
		return 1
	}
	return m.Marks
}

// IsCorrectAnswer checks a selected option against the stored key.
func (m MCQ) IsCorrectAnswer(selected string) bool {
	return strings.EqualFold(strings.TrimSpace(selected), m.CorrectAnswer)
}

// MCQAttempt records a student's single answer to a question. IsCorrect is
// computed when the attempt is created and never recomputed, even if the
// question's answer key changes later.
type MCQAttempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"not null;uniqueIndex:uniq_student_mcq" json:"student_id"`
	MCQID          uint      `gorm:"column:mcq_id;not null;uniqueIndex:uniq_student_mcq" json:"mcq_id"`
	SelectedAnswer string    `gorm:"size:1" json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	AttemptedAt    time.Time `gorm:"autoCreateTime" json:"attempted_at"`

	MCQ MCQ `gorm:"foreignKey:MCQID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"mcq,omitempty"`
}
