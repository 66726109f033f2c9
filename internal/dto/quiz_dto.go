package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// MCQCreateRequest describes the payload for adding a quiz question.
type MCQCreateRequest struct {
	QuestionText    string  `json:"question_text" validate:"required,min=2,max=5000"`
	OptionA         string  `json:"option_a" validate:"required,max=500"`
	OptionB         string  `json:"option_b" validate:"required,max=500"`
	OptionC         string  `json:"option_c" validate:"omitempty,max=500"`
	OptionD         string  `json:"option_d" validate:"omitempty,max=500"`
	CorrectAnswer   string  `json:"correct_answer" validate:"required,oneof=A B C D a b c d"`
	Marks           float64 `json:"marks" validate:"omitempty,gt=0"`
	CourseID        uint    `json:"course_id" validate:"required,min=1"`
	StaffID         *uint   `json:"staff_id" validate:"omitempty,min=1"`
	StudyMaterialID *uint   `json:"study_material_id" validate:"omitempty,min=1"`
}

// MCQUpdateRequest describes the payload for editing a quiz question.
type MCQUpdateRequest struct {
	QuestionText  *string  `json:"question_text" validate:"omitempty,min=2,max=5000"`
	OptionA       *string  `json:"option_a" validate:"omitempty,max=500"`
	OptionB       *string  `json:"option_b" validate:"omitempty,max=500"`
	OptionC       *string  `json:"option_c" validate:"omitempty,max=500"`
	OptionD       *string  `json:"option_d" validate:"omitempty,max=500"`
	CorrectAnswer *string  `json:"correct_answer" validate:"omitempty,oneof=A B C D a b c d"`
	Marks         *float64 `json:"marks" validate:"omitempty,gt=0"`
}

// MCQResponse is the quiz question as served to students. The answer key is
// never included.
type MCQResponse struct {
	ID              uint    `json:"id"`
	QuestionText    string  `json:"question_text"`
	OptionA         string  `json:"option_a"`
	OptionB         string  `json:"option_b"`
	OptionC         string  `json:"option_c"`
	OptionD         string  `json:"option_d"`
	Marks           float64 `json:"marks"`
	CourseID        uint    `json:"course_id"`
	StudyMaterialID *uint   `json:"study_material_id"`
}

// NewMCQResponse converts a model into a DTO.
func NewMCQResponse(model models.MCQ) MCQResponse {
	return MCQResponse{
		ID:              model.ID,
		QuestionText:    model.QuestionText,
		OptionA:         model.OptionA,
		OptionB:         model.OptionB,
		OptionC:         model.OptionC,
		OptionD:         model.OptionD,
		Marks:           model.MarkValue(),
		CourseID:        model.CourseID,
		StudyMaterialID: model.StudyMaterialID,
	}
}

// NewMCQResponseSlice converts a slice of models into DTOs.
func NewMCQResponseSlice(questions []models.MCQ) []MCQResponse {
	out := make([]MCQResponse, 0, len(questions))
	for _, question := range questions {
		out = append(out, NewMCQResponse(question))
	}
	return out
}

// AttemptCreateRequest describes the payload for answering a question.
type AttemptCreateRequest struct {
	StudentID      uint   `json:"student_id" validate:"required,min=1"`
	MCQID          uint   `json:"mcq_id" validate:"required,min=1"`
	SelectedAnswer string `json:"selected_answer" validate:"required,oneof=A B C D a b c d"`
}

// AttemptResponse reports the outcome of an answered question, including the
// correct answer once the attempt is locked in.
type AttemptResponse struct {
	ID             uint      `json:"id"`
	StudentID      uint      `json:"student_id"`
	MCQID          uint      `json:"mcq_id"`
	SelectedAnswer string    `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	MarksAwarded   float64   `json:"marks_awarded"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// NewAttemptResponse converts a model into a DTO.
func NewAttemptResponse(model models.MCQAttempt, markValue float64) AttemptResponse {
	awarded := 0.0
	if model.IsCorrect {
		awarded = markValue
	}
	return AttemptResponse{
		ID:             model.ID,
		StudentID:      model.StudentID,
		MCQID:          model.MCQID,
		SelectedAnswer: model.SelectedAnswer,
		IsCorrect:      model.IsCorrect,
		MarksAwarded:   awarded,
		AttemptedAt:    model.AttemptedAt,
	}
}

// QuizCourseResult aggregates a student's quiz performance for one course.
type QuizCourseResult struct {
	CourseID       uint    `json:"course_id"`
	CourseName     string  `json:"course_name"`
	TotalQuestions int     `json:"total_questions"`
	AttemptedCount int     `json:"attempted_count"`
	CorrectCount   int     `json:"correct_count"`
	EarnedMarks    float64 `json:"earned_marks"`
	TotalMarks     float64 `json:"total_marks"`
}
