package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// EnrollmentCreateRequest describes the payload for enrolling a student.
type EnrollmentCreateRequest struct {
	StudentID uint `json:"student_id" validate:"required,min=1"`
	CourseID  uint `json:"course_id" validate:"required,min=1"`
}

// EnrollmentResponse is the serialized representation of an enrollment.
type EnrollmentResponse struct {
	ID         uint            `json:"id"`
	StudentID  uint            `json:"student_id"`
	CourseID   uint            `json:"course_id"`
	Status     string          `json:"status"`
	EnrolledAt time.Time       `json:"enrolled_at"`
	Course     *CourseResponse `json:"course,omitempty"`
}

// NewEnrollmentResponse converts a model into a DTO.
func NewEnrollmentResponse(model models.StudentCourse) EnrollmentResponse {
	response := EnrollmentResponse{
		ID:         model.ID,
		StudentID:  model.StudentID,
		CourseID:   model.CourseID,
		Status:     model.Status,
		EnrolledAt: model.EnrolledAt,
	}
	if model.Course.ID != 0 {
		course := NewCourseResponse(model.Course)
		response.Course = &course
	}
	return response
}

// NewEnrollmentResponseSlice converts a slice of models into DTOs.
func NewEnrollmentResponseSlice(enrollments []models.StudentCourse) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		out = append(out, NewEnrollmentResponse(enrollment))
	}
	return out
}
