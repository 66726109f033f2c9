package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// Sentinel errors for the academic catalog.
var (
	ErrAcademicYearNotFound = errors.New("academic year not found")
	ErrProgramNotFound      = errors.New("program not found")
	ErrSemesterNotFound     = errors.New("semester not found")
	ErrStaffCourseNotFound  = errors.New("staff course assignment not found")
	ErrDuplicateCourseCode  = errors.New("course code already exists")
	ErrDuplicateProgramCode = errors.New("program code already exists")
	ErrDuplicateStaffCourse = errors.New("staff is already assigned to this course for the academic year")
)

// CatalogService manages academic years, programs, semesters, courses and
// teaching assignments.
type CatalogService interface {
	ListAcademicYears(ctx context.Context) ([]dto.AcademicYearResponse, error)
	CreateAcademicYear(ctx context.Context, payload dto.AcademicYearCreateRequest) (dto.AcademicYearResponse, error)
	DeleteAcademicYear(ctx context.Context, id uint) error

	ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error)
	CreateProgram(ctx context.Context, payload dto.ProgramCreateRequest) (dto.ProgramResponse, error)
	DeleteProgram(ctx context.Context, id uint) error

	ListSemesters(ctx context.Context) ([]dto.SemesterResponse, error)
	CreateSemester(ctx context.Context, payload dto.SemesterCreateRequest) (dto.SemesterResponse, error)
	DeleteSemester(ctx context.Context, id uint) error

	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	GetCourse(ctx context.Context, id uint) (dto.CourseResponse, error)
	CreateCourse(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, id uint) error

	ListStaffCourses(ctx context.Context) ([]dto.StaffCourseResponse, error)
	CreateStaffCourse(ctx context.Context, payload dto.StaffCourseCreateRequest) (dto.StaffCourseResponse, error)
	DeleteStaffCourse(ctx context.Context, id uint) error
}

type catalogService struct {
	years        repository.AcademicYearRepository
	programs     repository.ProgramRepository
	semesters    repository.SemesterRepository
	courses      repository.CourseRepository
	staffCourses repository.StaffCourseRepository
	staff        repository.StaffRepository
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewCatalogService constructs a CatalogService instance.
func NewCatalogService(
	yearRepo repository.AcademicYearRepository,
	programRepo repository.ProgramRepository,
	semesterRepo repository.SemesterRepository,
	courseRepo repository.CourseRepository,
	staffCourseRepo repository.StaffCourseRepository,
	staffRepo repository.StaffRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		years:        yearRepo,
		programs:     programRepo,
		semesters:    semesterRepo,
		courses:      courseRepo,
		staffCourses: staffCourseRepo,
		staff:        staffRepo,
		validator:    validate,
		logger:       logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) ListAcademicYears(ctx context.Context) ([]dto.AcademicYearResponse, error) {
	years, err := s.years.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAcademicYearResponseSlice(years), nil
}

func (s *catalogService) CreateAcademicYear(ctx context.Context, payload dto.AcademicYearCreateRequest) (dto.AcademicYearResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AcademicYearResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", payload.StartDate)
	endDate, _ := time.Parse("2006-01-02", payload.EndDate)

	year := models.AcademicYear{
		YearName:  payload.YearName,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.years.Create(ctx, &year); err != nil {
		return dto.AcademicYearResponse{}, err
	}
	return dto.NewAcademicYearResponse(year), nil
}

func (s *catalogService) DeleteAcademicYear(ctx context.Context, id uint) error {
	if err := s.years.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAcademicYearNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramResponseSlice(programs), nil
}

func (s *catalogService) CreateProgram(ctx context.Context, payload dto.ProgramCreateRequest) (dto.ProgramResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProgramResponse{}, err
	}

	if _, err := s.programs.GetByCode(ctx, payload.ProgramCode); err == nil {
		return dto.ProgramResponse{}, ErrDuplicateProgramCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProgramResponse{}, err
	}

	program := models.Program{
		ProgramName: payload.ProgramName,
		ProgramCode: payload.ProgramCode,
	}
	if err := s.programs.Create(ctx, &program); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ProgramResponse{}, ErrDuplicateProgramCode
		}
		return dto.ProgramResponse{}, err
	}
	return dto.NewProgramResponse(program), nil
}

func (s *catalogService) DeleteProgram(ctx context.Context, id uint) error {
	if err := s.programs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) ListSemesters(ctx context.Context) ([]dto.SemesterResponse, error) {
	semesters, err := s.semesters.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewSemesterResponseSlice(semesters), nil
}

func (s *catalogService) CreateSemester(ctx context.Context, payload dto.SemesterCreateRequest) (dto.SemesterResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SemesterResponse{}, err
	}

	semester := models.Semester{
		SemesterName:   payload.SemesterName,
		SemesterNumber: payload.SemesterNumber,
	}
	if err := s.semesters.Create(ctx, &semester); err != nil {
		return dto.SemesterResponse{}, err
	}
	return dto.NewSemesterResponse(semester), nil
}

func (s *catalogService) DeleteSemester(ctx context.Context, id uint) error {
	if err := s.semesters.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSemesterNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponseSlice(courses), nil
}

func (s *catalogService) GetCourse(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) CreateCourse(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	if _, err := s.courses.GetByCode(ctx, payload.CourseCode); err == nil {
		return dto.CourseResponse{}, ErrDuplicateCourseCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CourseResponse{}, err
	}

	if payload.ProgramID != nil {
		if _, err := s.programs.GetByID(ctx, *payload.ProgramID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CourseResponse{}, ErrProgramNotFound
			}
			return dto.CourseResponse{}, err
		}
	}
	if payload.SemesterID != nil {
		if _, err := s.semesters.GetByID(ctx, *payload.SemesterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CourseResponse{}, ErrSemesterNotFound
			}
			return dto.CourseResponse{}, err
		}
	}

	course := models.Course{
		CourseCode: payload.CourseCode,
		CourseName: payload.CourseName,
		ProgramID:  payload.ProgramID,
		SemesterID: payload.SemesterID,
	}
	if err := s.courses.Create(ctx, &course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.CourseResponse{}, ErrDuplicateCourseCode
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) ListStaffCourses(ctx context.Context) ([]dto.StaffCourseResponse, error) {
	assignments, err := s.staffCourses.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStaffCourseResponseSlice(assignments), nil
}

func (s *catalogService) CreateStaffCourse(ctx context.Context, payload dto.StaffCourseCreateRequest) (dto.StaffCourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StaffCourseResponse{}, err
	}

	if _, err := s.staff.GetByID(ctx, payload.StaffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffCourseResponse{}, ErrStaffNotFound
		}
		return dto.StaffCourseResponse{}, err
	}
	if _, err := s.courses.GetByID(ctx, payload.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffCourseResponse{}, ErrCourseNotFound
		}
		return dto.StaffCourseResponse{}, err
	}
	if _, err := s.years.GetByID(ctx, payload.AcademicYearID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffCourseResponse{}, ErrAcademicYearNotFound
		}
		return dto.StaffCourseResponse{}, err
	}

	exists, err := s.staffCourses.Exists(ctx, payload.StaffID, payload.CourseID, payload.AcademicYearID)
	if err != nil {
		return dto.StaffCourseResponse{}, err
	}
	if exists {
		return dto.StaffCourseResponse{}, ErrDuplicateStaffCourse
	}

	assignment := models.StaffCourse{
		StaffID:        payload.StaffID,
		CourseID:       payload.CourseID,
		AcademicYearID: payload.AcademicYearID,
	}
	if err := s.staffCourses.Create(ctx, &assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StaffCourseResponse{}, ErrDuplicateStaffCourse
		}
		return dto.StaffCourseResponse{}, err
	}

	created, err := s.staffCourses.GetByID(ctx, assignment.ID)
	if err != nil {
		return dto.StaffCourseResponse{}, err
	}
	return dto.NewStaffCourseResponse(created), nil
}

func (s *catalogService) DeleteStaffCourse(ctx context.Context, id uint) error {
	if err := s.staffCourses.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffCourseNotFound
		}
		return err
	}
	return nil
}
