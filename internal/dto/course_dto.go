package dto

import "github.com/lls-edu/lls-api/internal/models"

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	CourseCode string `json:"course_code" validate:"required,min=2,max=20"`
	CourseName string `json:"course_name" validate:"required,min=2,max=100"`
	ProgramID  *uint  `json:"program_id" validate:"omitempty,min=1"`
	SemesterID *uint  `json:"semester_id" validate:"omitempty,min=1"`
}

// CourseResponse is the serialized representation of a course.
type CourseResponse struct {
	ID         uint              `json:"id"`
	CourseCode string            `json:"course_code"`
	CourseName string            `json:"course_name"`
	ProgramID  *uint             `json:"program_id"`
	SemesterID *uint             `json:"semester_id"`
	Program    *ProgramResponse  `json:"program,omitempty"`
	Semester   *SemesterResponse `json:"semester,omitempty"`
}

// NewCourseResponse converts a model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	response := CourseResponse{
		ID:         model.ID,
		CourseCode: model.CourseCode,
		CourseName: model.CourseName,
		ProgramID:  model.ProgramID,
		SemesterID: model.SemesterID,
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

// NewCourseResponseSlice converts a slice of models into DTOs.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, NewCourseResponse(course))
	}
	return out
}

// StaffCourseCreateRequest assigns a staff member to teach a course.
type StaffCourseCreateRequest struct {
	StaffID        uint `json:"staff_id" validate:"required,min=1"`
	CourseID       uint `json:"course_id" validate:"required,min=1"`
	AcademicYearID uint `json:"academic_year_id" validate:"required,min=1"`
}

// StaffCourseResponse is the serialized representation of a teaching assignment.
type StaffCourseResponse struct {
	ID             uint            `json:"id"`
	StaffID        uint            `json:"staff_id"`
	CourseID       uint            `json:"course_id"`
	AcademicYearID uint            `json:"academic_year_id"`
	StaffName      string          `json:"staff_name,omitempty"`
	Course         *CourseResponse `json:"course,omitempty"`
}

// NewStaffCourseResponse converts a model into a DTO.
func NewStaffCourseResponse(model models.StaffCourse) StaffCourseResponse {
	response := StaffCourseResponse{
		ID:             model.ID,
		StaffID:        model.StaffID,
		CourseID:       model.CourseID,
		AcademicYearID: model.AcademicYearID,
		StaffName:      model.Staff.FullName,
	}
	if model.Course.ID != 0 {
		course := NewCourseResponse(model.Course)
		response.Course = &course
	}
	return response
}

// NewStaffCourseResponseSlice converts a slice of models into DTOs.
func NewStaffCourseResponseSlice(assignments []models.StaffCourse) []StaffCourseResponse {
	out := make([]StaffCourseResponse, 0, len(assignments))
	for _, assignment := range assignments {
		out = append(out, NewStaffCourseResponse(assignment))
	}
	return out
}
