package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// SubmissionCreateRequest describes the payload for submitting an assignment.
type SubmissionCreateRequest struct {
	AssignmentID   uint   `json:"assignment_id" validate:"required,min=1"`
	StudentID      uint   `json:"student_id" validate:"required,min=1"`
	SubmissionText string `json:"submission_text" validate:"omitempty,max=50000"`
	FileURL        string `json:"file_url" validate:"omitempty,url,max=500"`
}

// EvaluationRequest describes the payload for grading a submission. Posting
// again for the same submission overwrites the previous grade.
type EvaluationRequest struct {
	StaffID       *uint   `json:"staff_id" validate:"omitempty,min=1"`
	MarksObtained float64 `json:"marks_obtained" validate:"min=0"`
	Feedback      string  `json:"feedback" validate:"omitempty,max=10000"`
}

// EvaluationResponse is the serialized representation of a grade.
type EvaluationResponse struct {
	ID            uint      `json:"id"`
	SubmissionID  uint      `json:"submission_id"`
	StaffID       *uint     `json:"staff_id"`
	MarksObtained *float64  `json:"marks_obtained"`
	Feedback      string    `json:"feedback"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
	Status        string    `json:"status"`
}

// NewEvaluationResponse converts a model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:            model.ID,
		SubmissionID:  model.SubmissionID,
		StaffID:       model.StaffID,
		MarksObtained: model.MarksObtained,
		Feedback:      model.Feedback,
		EvaluatedAt:   model.EvaluatedAt,
		Status:        model.Status,
	}
}

// SubmissionResponse is the serialized representation of a submission.
type SubmissionResponse struct {
	ID             uint                `json:"id"`
	AssignmentID   uint                `json:"assignment_id"`
	StudentID      uint                `json:"student_id"`
	SubmissionText string              `json:"submission_text"`
	FileURL        string              `json:"file_url"`
	SubmittedAt    time.Time           `json:"submitted_at"`
	Status         string              `json:"status"`
	Assignment     *AssignmentResponse `json:"assignment,omitempty"`
	Evaluation     *EvaluationResponse `json:"evaluation,omitempty"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:             model.ID,
		AssignmentID:   model.AssignmentID,
		StudentID:      model.StudentID,
		SubmissionText: model.SubmissionText,
		FileURL:        model.FileURL,
		SubmittedAt:    model.SubmittedAt,
		Status:         model.Status,
	}
	if model.Assignment.ID != 0 {
		assignment := NewAssignmentResponse(model.Assignment)
		response.Assignment = &assignment
	}
	if model.Evaluation != nil {
		evaluation := NewEvaluationResponse(*model.Evaluation)
		response.Evaluation = &evaluation
	}
	return response
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		out = append(out, NewSubmissionResponse(submission))
	}
	return out
}
