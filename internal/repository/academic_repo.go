package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/models"
)

// AcademicYearRepository defines persistence operations for academic years.
type AcademicYearRepository interface {
	List(ctx context.Context) ([]models.AcademicYear, error)
	GetByID(ctx context.Context, id uint) (models.AcademicYear, error)
	Create(ctx context.Context, year *models.AcademicYear) error
	Delete(ctx context.Context, id uint) error
}

type academicYearRepository struct {
	db *gorm.DB
}

// NewAcademicYearRepository instantiates a GORM-backed repository.
func NewAcademicYearRepository(db *gorm.DB) AcademicYearRepository {
	return &academicYearRepository{db: db}
}

func (r *academicYearRepository) List(ctx context.Context) ([]models.AcademicYear, error) {
	var years []models.AcademicYear
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&years).Error; err != nil {
		return nil, err
	}
	return years, nil
}

func (r *academicYearRepository) GetByID(ctx context.Context, id uint) (models.AcademicYear, error) {
	var year models.AcademicYear
	if err := r.db.WithContext(ctx).First(&year, id).Error; err != nil {
		return models.AcademicYear{}, err
	}
	return year, nil
}

func (r *academicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	return r.db.WithContext(ctx).Create(year).Error
}

func (r *academicYearRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.AcademicYear{}, id)
}

// ProgramRepository defines persistence operations for programs.
type ProgramRepository interface {
	List(ctx context.Context) ([]models.Program, error)
	GetByID(ctx context.Context, id uint) (models.Program, error)
	GetByCode(ctx context.Context, code string) (models.Program, error)
	Create(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id uint) error
}

type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository instantiates a GORM-backed repository.
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) List(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program
	if err := r.db.WithContext(ctx).Order("program_code ASC").Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}

func (r *programRepository) GetByID(ctx context.Context, id uint) (models.Program, error) {
	var program models.Program
	if err := r.db.WithContext(ctx).First(&program, id).Error; err != nil {
		return models.Program{}, err
	}
	return program, nil
}

func (r *programRepository) GetByCode(ctx context.Context, code string) (models.Program, error) {
	var program models.Program
	if err := r.db.WithContext(ctx).Where("program_code = ?", code).First(&program).Error; err != nil {
		return models.Program{}, err
	}
	return program, nil
}

func (r *programRepository) Create(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *programRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Program{}, id)
}

// SemesterRepository defines persistence operations for semesters.
type SemesterRepository interface {
	List(ctx context.Context) ([]models.Semester, error)
	GetByID(ctx context.Context, id uint) (models.Semester, error)
	Create(ctx context.Context, semester *models.Semester) error
	Delete(ctx context.Context, id uint) error
}

type semesterRepository struct {
	db *gorm.DB
}

// NewSemesterRepository instantiates a GORM-backed repository.
func NewSemesterRepository(db *gorm.DB) SemesterRepository {
	return &semesterRepository{db: db}
}

func (r *semesterRepository) List(ctx context.Context) ([]models.Semester, error) {
	var semesters []models.Semester
	if err := r.db.WithContext(ctx).Order("semester_number ASC").Find(&semesters).Error; err != nil {
		return nil, err
	}
	return semesters, nil
}

func (r *semesterRepository) GetByID(ctx context.Context, id uint) (models.Semester, error) {
	var semester models.Semester
	if err := r.db.WithContext(ctx).First(&semester, id).Error; err != nil {
		return models.Semester{}, err
	}
	return semester, nil
}

func (r *semesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Semester{}, id)
}

func deleteByID(tx *gorm.DB, model interface{}, id uint) error {
	result := tx.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
