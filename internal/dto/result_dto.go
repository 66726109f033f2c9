package dto

import "time"

// ResultCourseInfo identifies the course a result belongs to.
type ResultCourseInfo struct {
	ID         uint   `json:"id"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
}

// AssignmentResultDetail is the per-assignment line in a result breakdown.
type AssignmentResultDetail struct {
	AssignmentID  uint       `json:"assignment_id"`
	Title         string     `json:"title"`
	MaxMarks      float64    `json:"max_marks"`
	DueDate       *time.Time `json:"due_date"`
	Submitted     bool       `json:"submitted"`
	Graded        bool       `json:"graded"`
	MarksObtained *float64   `json:"marks_obtained"`
}

// AssignmentResultBlock aggregates the assignment side of a course result.
type AssignmentResultBlock struct {
	TotalCount     int                      `json:"total_count"`
	SubmittedCount int                      `json:"submitted_count"`
	GradedCount    int                      `json:"graded_count"`
	EarnedMarks    float64                  `json:"earned_marks"`
	TotalMarks     float64                  `json:"total_marks"`
	LastDueDate    *time.Time               `json:"last_due_date"`
	Details        []AssignmentResultDetail `json:"details"`
}

// QuizResultBlock aggregates the quiz side of a course result. Totals are
// computed over the full question bank, not just attempted questions.
type QuizResultBlock struct {
	TotalQuestions int     `json:"total_questions"`
	AttemptedCount int     `json:"attempted_count"`
	CorrectCount   int     `json:"correct_count"`
	EarnedMarks    float64 `json:"earned_marks"`
	TotalMarks     float64 `json:"total_marks"`
}

// ProgressBlock is the running combined score, always visible regardless of
// release gating.
type ProgressBlock struct {
	EarnedMarks float64 `json:"earned_marks"`
	TotalMarks  float64 `json:"total_marks"`
	Percentage  float64 `json:"percentage"`
}

// FinalBlock is the gated final result. Percentage is null until released.
type FinalBlock struct {
	Released   bool     `json:"released"`
	Reason     string   `json:"reason"`
	Percentage *float64 `json:"percentage"`
}

// CourseResultResponse is the full result breakdown for one student in one
// course.
type CourseResultResponse struct {
	Course      ResultCourseInfo      `json:"course"`
	Assignments AssignmentResultBlock `json:"assignments"`
	Quiz        QuizResultBlock       `json:"quiz"`
	Progress    ProgressBlock         `json:"progress"`
	Final       FinalBlock            `json:"final"`
}

// StudentResultsResponse is the per-course result summary for a student.
type StudentResultsResponse struct {
	StudentID uint                   `json:"student_id"`
	Results   []CourseResultResponse `json:"results"`
}
