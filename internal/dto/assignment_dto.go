package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// AssignmentCreateRequest describes the payload for posting an assignment.
type AssignmentCreateRequest struct {
	Title           string   `json:"title" validate:"required,min=2,max=200"`
	Description     string   `json:"description" validate:"omitempty,max=10000"`
	CourseID        uint     `json:"course_id" validate:"required,min=1"`
	StaffID         *uint    `json:"staff_id" validate:"omitempty,min=1"`
	StudyMaterialID *uint    `json:"study_material_id" validate:"omitempty,min=1"`
	DueDate         *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxMarks        *float64 `json:"max_marks" validate:"omitempty,gt=0"`
	FileURL         string   `json:"file_url" validate:"omitempty,url,max=500"`
}

// AssignmentUpdateRequest describes the payload for editing an assignment.
type AssignmentUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=10000"`
	DueDate     *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxMarks    *float64 `json:"max_marks" validate:"omitempty,gt=0"`
	FileURL     *string  `json:"file_url" validate:"omitempty,url,max=500"`
}

// AssignmentResponse is the serialized representation of an assignment.
type AssignmentResponse struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CourseID        uint       `json:"course_id"`
	StaffID         *uint      `json:"staff_id"`
	StudyMaterialID *uint      `json:"study_material_id"`
	DueDate         *time.Time `json:"due_date"`
	MaxMarks        *float64   `json:"max_marks"`
	FileURL         string     `json:"file_url"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:              model.ID,
		Title:           model.Title,
		Description:     model.Description,
		CourseID:        model.CourseID,
		StaffID:         model.StaffID,
		StudyMaterialID: model.StudyMaterialID,
		DueDate:         model.DueDate,
		MaxMarks:        model.MaxMarks,
		FileURL:         model.FileURL,
		CreatedAt:       model.CreatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, NewAssignmentResponse(assignment))
	}
	return out
}
