package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lls-edu/lls-api/internal/dto"
	"github.com/lls-edu/lls-api/internal/models"
	"github.com/lls-edu/lls-api/internal/repository"
)

// ErrMaterialNotFound indicates study material could not be found.
var (
	ErrMaterialNotFound = errors.New("study material not found")
	ErrMaterialNested   = errors.New("parent material is already nested")
)

// MaterialService manages course study material. Publishing a top-level
// material fans out notifications to the course audience.
type MaterialService interface {
	ListForStaffCourse(ctx context.Context, staffCourseID uint) ([]dto.MaterialResponse, error)
	Get(ctx context.Context, id uint) (dto.MaterialResponse, error)
	Create(ctx context.Context, payload dto.MaterialCreateRequest) (dto.MaterialResponse, error)
	Update(ctx context.Context, id uint, payload dto.MaterialUpdateRequest) (dto.MaterialResponse, error)
	Delete(ctx context.Context, id uint) error
}

type materialService struct {
	materials    repository.MaterialRepository
	staffCourses repository.StaffCourseRepository
	notifier     NotificationService
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewMaterialService constructs a MaterialService instance.
func NewMaterialService(
	materialRepo repository.MaterialRepository,
	staffCourseRepo repository.StaffCourseRepository,
	notifier NotificationService,
	validate *validator.Validate,
	logger zerolog.Logger,
) MaterialService {
	return &materialService{
		materials:    materialRepo,
		staffCourses: staffCourseRepo,
		notifier:     notifier,
		validator:    validate,
		logger:       logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) ListForStaffCourse(ctx context.Context, staffCourseID uint) ([]dto.MaterialResponse, error) {
	if _, err := s.staffCourses.GetByID(ctx, staffCourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffCourseNotFound
		}
		return nil, err
	}

	materials, err := s.materials.ListRoots(ctx, staffCourseID)
	if err != nil {
		return nil, err
	}
	return dto.NewMaterialResponseSlice(materials), nil
}

func (s *materialService) Get(ctx context.Context, id uint) (dto.MaterialResponse, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrMaterialNotFound
		}
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Create(ctx context.Context, payload dto.MaterialCreateRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MaterialResponse{}, err
	}

	if _, err := s.staffCourses.GetByID(ctx, payload.StaffCourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrStaffCourseNotFound
		}
		return dto.MaterialResponse{}, err
	}

	if payload.ParentID != nil {
		parent, err := s.materials.GetByID(ctx, *payload.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.MaterialResponse{}, ErrMaterialNotFound
			}
			return dto.MaterialResponse{}, err
		}
		// Materials nest exactly one level deep.
		if parent.ParentID != nil {
			return dto.MaterialResponse{}, ErrMaterialNested
		}
	}

	material := models.StudyMaterial{
		Title:         payload.Title,
		Description:   payload.Description,
		FileURL:       payload.FileURL,
		FileType:      payload.FileType,
		StaffCourseID: payload.StaffCourseID,
		ParentID:      payload.ParentID,
	}
	if err := s.materials.Create(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}

	if material.ParentID == nil {
		if err := s.notifier.NotifyNewStudyMaterial(ctx, material); err != nil {
			s.logger.Warn().Err(err).Uint("material_id", material.ID).Msg("study material fan-out failed")
		}
	}

	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Update(ctx context.Context, id uint, payload dto.MaterialUpdateRequest) (dto.MaterialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MaterialResponse{}, err
	}

	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MaterialResponse{}, ErrMaterialNotFound
		}
		return dto.MaterialResponse{}, err
	}

	if payload.Title != nil {
		material.Title = *payload.Title
	}
	if payload.Description != nil {
		material.Description = *payload.Description
	}
	if payload.FileURL != nil {
		material.FileURL = *payload.FileURL
	}
	if payload.FileType != nil {
		material.FileType = *payload.FileType
	}

	if err := s.materials.Update(ctx, &material); err != nil {
		return dto.MaterialResponse{}, err
	}
	return dto.NewMaterialResponse(material), nil
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	if err := s.materials.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}
	return nil
}
