package dto

import "github.com/lls-edu/lls-api/internal/models"

const dateLayout = "2006-01-02"

// AcademicYearCreateRequest describes the payload for creating an academic year.
type AcademicYearCreateRequest struct {
	YearName  string `json:"year_name" validate:"required,min=4,max=50"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// AcademicYearResponse is the serialized representation of an academic year.
type AcademicYearResponse struct {
	ID        uint   `json:"id"`
	YearName  string `json:"year_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewAcademicYearResponse converts a model into a DTO.
func NewAcademicYearResponse(model models.AcademicYear) AcademicYearResponse {
	return AcademicYearResponse{
		ID:        model.ID,
		YearName:  model.YearName,
		StartDate: model.StartDate.Format(dateLayout),
		EndDate:   model.EndDate.Format(dateLayout),
	}
}

// NewAcademicYearResponseSlice converts a slice of models into DTOs.
func NewAcademicYearResponseSlice(years []models.AcademicYear) []AcademicYearResponse {
	out := make([]AcademicYearResponse, 0, len(years))
	for _, year := range years {
		out = append(out, NewAcademicYearResponse(year))
	}
	return out
}

// ProgramCreateRequest describes the payload for creating a program.
type ProgramCreateRequest struct {
	ProgramName string `json:"program_name" validate:"required,min=2,max=100"`
	ProgramCode string `json:"program_code" validate:"required,min=2,max=20"`
}

// ProgramResponse is the serialized representation of a program.
type ProgramResponse struct {
	ID          uint   `json:"id"`
	ProgramName string `json:"program_name"`
	ProgramCode string `json:"program_code"`
}

// NewProgramResponse converts a model into a DTO.
func NewProgramResponse(model models.Program) ProgramResponse {
	return ProgramResponse{
		ID:          model.ID,
		ProgramName: model.ProgramName,
		ProgramCode: model.ProgramCode,
	}
}

// NewProgramResponseSlice converts a slice of models into DTOs.
func NewProgramResponseSlice(programs []models.Program) []ProgramResponse {
	out := make([]ProgramResponse, 0, len(programs))
	for _, program := range programs {
		out = append(out, NewProgramResponse(program))
	}
	return out
}

// SemesterCreateRequest describes the payload for creating a semester.
type SemesterCreateRequest struct {
	SemesterName   string `json:"semester_name" validate:"required,min=2,max=50"`
	SemesterNumber int    `json:"semester_number" validate:"required,min=1,max=12"`
}

// SemesterResponse is the serialized representation of a semester.
type SemesterResponse struct {
	ID             uint   `json:"id"`
	SemesterName   string `json:"semester_name"`
	SemesterNumber int    `json:"semester_number"`
}

// NewSemesterResponse converts a model into a DTO.
func NewSemesterResponse(model models.Semester) SemesterResponse {
	return SemesterResponse{
		ID:             model.ID,
		SemesterName:   model.SemesterName,
		SemesterNumber: model.SemesterNumber,
	}
}

// NewSemesterResponseSlice converts a slice of models into DTOs.
func NewSemesterResponseSlice(semesters []models.Semester) []SemesterResponse {
	out := make([]SemesterResponse, 0, len(semesters))
	for _, semester := range semesters {
		out = append(out, NewSemesterResponse(semester))
	}
	return out
}
