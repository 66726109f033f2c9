package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// Sentinel errors for account management.
var (
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrDuplicateAccount = errors.New("an account with this code, username or email already exists")
)

// DirectoryService manages student and staff accounts.
type DirectoryService interface {
	ListStudents(ctx context.Context) ([]dto.StudentResponse, error)
	GetStudent(ctx context.Context, id uint) (dto.StudentResponse, error)
	CreateStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id uint) error

	ListStaff(ctx context.Context) ([]dto.StaffResponse, error)
	GetStaff(ctx context.Context, id uint) (dto.StaffResponse, error)
	CreateStaff(ctx context.Context, payload dto.StaffCreateRequest) (dto.StaffResponse, error)
	DeleteStaff(ctx context.Context, id uint) error
}

type directoryService struct {
	students  repository.StudentRepository
	staff     repository.StaffRepository
	programs  repository.ProgramRepository
	semesters repository.SemesterRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDirectoryService constructs a DirectoryService instance.
func NewDirectoryService(
	studentRepo repository.StudentRepository,
	staffRepo repository.StaffRepository,
	programRepo repository.ProgramRepository,
	semesterRepo repository.SemesterRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) DirectoryService {
	return &directoryService{
		students:  studentRepo,
		staff:     staffRepo,
		programs:  programRepo,
		semesters: semesterRepo,
		validator: validate,
		logger:    logger.With().Str("component", "directory_service").Logger(),
	}
}

func (s *directoryService) ListStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}

func (s *directoryService) GetStudent(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *directoryService) CreateStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	if payload.ProgramID != nil {
		if _, err := s.programs.GetByID(ctx, *payload.ProgramID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.StudentResponse{}, ErrProgramNotFound
			}
			return dto.StudentResponse{}, err
		}
	}
	if payload.SemesterID != nil {
		if _, err := s.semesters.GetByID(ctx, *payload.SemesterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.StudentResponse{}, ErrSemesterNotFound
			}
			return dto.StudentResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		StudentCode:  payload.StudentCode,
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: string(hash),
		FullName:     payload.FullName,
		ProgramID:    payload.ProgramID,
		SemesterID:   payload.SemesterID,
	}
	if payload.EnrollmentDate != nil {
		enrolled, err := time.Parse("2006-01-02", *payload.EnrollmentDate)
		if err == nil {
			student.EnrollmentDate = &enrolled
		}
	}

	if err := s.students.Create(ctx, &student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StudentResponse{}, ErrDuplicateAccount
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *directoryService) DeleteStudent(ctx context.Context, id uint) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

func (s *directoryService) ListStaff(ctx context.Context) ([]dto.StaffResponse, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewStaffResponseSlice(staff), nil
}

func (s *directoryService) GetStaff(ctx context.Context, id uint) (dto.StaffResponse, error) {
	staffMember, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StaffResponse{}, ErrStaffNotFound
		}
		return dto.StaffResponse{}, err
	}
	return dto.NewStaffResponse(staffMember), nil
}

func (s *directoryService) CreateStaff(ctx context.Context, payload dto.StaffCreateRequest) (dto.StaffResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StaffResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.StaffResponse{}, err
	}

	staffMember := models.Staff{
		StaffCode:    payload.StaffCode,
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: string(hash),
		FullName:     payload.FullName,
	}
	if err := s.staff.Create(ctx, &staffMember); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.StaffResponse{}, ErrDuplicateAccount
		}
		return dto.StaffResponse{}, err
	}
	return dto.NewStaffResponse(staffMember), nil
}

func (s *directoryService) DeleteStaff(ctx context.Context, id uint) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		return err
	}
	return nil
}
