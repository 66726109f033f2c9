package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// FeedbackCreateRequest describes the payload for submitting feedback.
type FeedbackCreateRequest struct {
	StudentID    uint   `json:"student_id" validate:"required,min=1"`
	CourseID     *uint  `json:"course_id" validate:"omitempty,min=1"`
	StaffID      *uint  `json:"staff_id" validate:"omitempty,min=1"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	FeedbackText string `json:"feedback_text" validate:"omitempty,max=10000"`
	IsAnonymous  bool   `json:"is_anonymous"`
}

// FeedbackResponse is the serialized representation of a feedback entry.
// Anonymous entries omit the student id.
type FeedbackResponse struct {
	ID           uint      `json:"id"`
	StudentID    *uint     `json:"student_id"`
	CourseID     *uint     `json:"course_id"`
	StaffID      *uint     `json:"staff_id"`
	Rating       int       `json:"rating"`
	FeedbackText string    `json:"feedback_text"`
	IsAnonymous  bool      `json:"is_anonymous"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	response := FeedbackResponse{
		ID:           model.ID,
		CourseID:     model.CourseID,
		StaffID:      model.StaffID,
		Rating:       model.Rating,
		FeedbackText: model.FeedbackText,
		IsAnonymous:  model.IsAnonymous,
		SubmittedAt:  model.SubmittedAt,
	}
	if !model.IsAnonymous {
		studentID := model.StudentID
		response.StudentID = &studentID
	}
	return response
}

// NewFeedbackResponseSlice converts a slice of models into DTOs.
func NewFeedbackResponseSlice(entries []models.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewFeedbackResponse(entry))
	}
	return out
}
