package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// StudentCreateRequest describes the payload for registering a student.
type StudentCreateRequest struct {
	StudentCode    string  `json:"student_code" validate:"required,min=2,max=20"`
	Username       string  `json:"username" validate:"required,min=3,max=50"`
	Email          string  `json:"email" validate:"required,email,max=100"`
	Password       string  `json:"password" validate:"required,min=6,max=72"`
	FullName       string  `json:"full_name" validate:"required,min=2,max=100"`
	ProgramID      *uint   `json:"program_id" validate:"omitempty,min=1"`
	SemesterID     *uint   `json:"semester_id" validate:"omitempty,min=1"`
	EnrollmentDate *string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

// StudentResponse is the serialized representation of a student.
type StudentResponse struct {
	ID             uint              `json:"id"`
	StudentCode    string            `json:"student_code"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	FullName       string            `json:"full_name"`
	ProgramID      *uint             `json:"program_id"`
	SemesterID     *uint             `json:"semester_id"`
	EnrollmentDate *time.Time        `json:"enrollment_date"`
	Program        *ProgramResponse  `json:"program,omitempty"`
	Semester       *SemesterResponse `json:"semester,omitempty"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	response := StudentResponse{
		ID:             model.ID,
		StudentCode:    model.StudentCode,
		Username:       model.Username,
		Email:          model.Email,
		FullName:       model.FullName,
		ProgramID:      model.ProgramID,
		SemesterID:     model.SemesterID,
		EnrollmentDate: model.EnrollmentDate,
	}
	if model.Program != nil {
		program := NewProgramResponse(*model.Program)
		response.Program = &program
	}
	if model.Semester != nil {
		semester := NewSemesterResponse(*model.Semester)
		response.Semester = &semester
	}
	return response
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, NewStudentResponse(student))
	}
	return out
}

// StaffCreateRequest describes the payload for registering a staff member.
type StaffCreateRequest struct {
	StaffCode string `json:"staff_code" validate:"required,min=2,max=20"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FullName  string `json:"full_name" validate:"required,min=2,max=100"`
}

// StaffResponse is the serialized representation of a staff member.
type StaffResponse struct {
	ID        uint   `json:"id"`
	StaffCode string `json:"staff_code"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
}

// NewStaffResponse converts a model into a DTO.
func NewStaffResponse(model models.Staff) StaffResponse {
	return StaffResponse{
		ID:        model.ID,
		StaffCode: model.StaffCode,
		Username:  model.Username,
		Email:     model.Email,
		FullName:  model.FullName,
	}
}

// NewStaffResponseSlice converts a slice of models into DTOs.
func NewStaffResponseSlice(staff []models.Staff) []StaffResponse {
	out := make([]StaffResponse, 0, len(staff))
	for _, member := range staff {
		out = append(out, NewStaffResponse(member))
	}
	return out
}
