package dto

import (
	"time"

	"github.com/lls-edu/lls-api/internal/models"
)

// MaterialCreateRequest describes the payload for publishing study material.
type MaterialCreateRequest struct {
	Title         string `json:"title" validate:"required,min=2,max=200"`
	Description   string `json:"description" validate:"omitempty,max=5000"`
	FileURL       string `json:"file_url" validate:"omitempty,url,max=500"`
	FileType      string `json:"file_type" validate:"omitempty,oneof=video youtube pdf ppt"`
	StaffCourseID uint   `json:"staff_course_id" validate:"required,min=1"`
	ParentID      *uint  `json:"parent_id" validate:"omitempty,min=1"`
}

// MaterialUpdateRequest describes the payload for editing study material.
type MaterialUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	FileURL     *string `json:"file_url" validate:"omitempty,url,max=500"`
	FileType    *string `json:"file_type" validate:"omitempty,oneof=video youtube pdf ppt"`
}

// MaterialResponse is the serialized representation of study material,
// carrying one level of nested children.
type MaterialResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	FileURL       string             `json:"file_url"`
	FileType      string             `json:"file_type"`
	StaffCourseID uint               `json:"staff_course_id"`
	ParentID      *uint              `json:"parent_id"`
	UploadDate    time.Time          `json:"upload_date"`
	Children      []MaterialResponse `json:"children,omitempty"`
}

// NewMaterialResponse converts a model into a DTO.
func NewMaterialResponse(model models.StudyMaterial) MaterialResponse {
	response := MaterialResponse{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		FileURL:       model.FileURL,
		FileType:      model.FileType,
		StaffCourseID: model.StaffCourseID,
		ParentID:      model.ParentID,
		UploadDate:    model.UploadDate,
	}
	for _, child := range model.Children {
		response.Children = append(response.Children, NewMaterialResponse(child))
	}
	return response
}

// NewMaterialResponseSlice converts a slice of models into DTOs.
func NewMaterialResponseSlice(materials []models.StudyMaterial) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		out = append(out, NewMaterialResponse(material))
	}
	return out
}
