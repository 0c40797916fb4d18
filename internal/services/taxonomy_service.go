// internal/services/taxonomy_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// TaxonomyService manages the classification vocabularies: categories,
// tags, seasons and materials. Reads are open; writes are staff-only and
// enforced in the router.
type TaxonomyService struct {
	db *gorm.DB
}

func NewTaxonomyService(db *gorm.DB) *TaxonomyService {
	return &TaxonomyService{db: db}
}

type CategoryRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

type TagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type SeasonRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description,omitempty"`
}

type MaterialRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description,omitempty"`
}

// Categories

func (s *TaxonomyService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Children").
		Where("parent_id IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *TaxonomyService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Children").Preload("Parent").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *TaxonomyService) CreateCategory(req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkNameFree(&models.Category{}, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *TaxonomyService) UpdateCategory(id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		if err := s.checkNameFree(&models.Category{}, req.Name, id); err != nil {
			return nil, err
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.ParentID = req.ParentID
	category.SortOrder = req.SortOrder
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *TaxonomyService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Clothing{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: category is assigned to clothing records", ErrDuplicate)
	}

	if err := s.db.Delete(&models.Category{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// Tags

func (s *TaxonomyService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	return tags, nil
}

func (s *TaxonomyService) GetTag(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tag %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &tag, nil
}

func (s *TaxonomyService) CreateTag(req *TagRequest) (*models.Tag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkNameFree(&models.Tag{}, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: req.Name, Color: req.Color}
	if tag.Color == "" {
		tag.Color = "#888888"
	}

	if err := s.db.Create(tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

func (s *TaxonomyService) UpdateTag(id uuid.UUID, req *TagRequest) (*models.Tag, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tag, err := s.GetTag(id)
	if err != nil {
		return nil, err
	}

	if req.Name != tag.Name {
		if err := s.checkNameFree(&models.Tag{}, req.Name, id); err != nil {
			return nil, err
		}
	}

	tag.Name = req.Name
	if req.Color != "" {
		tag.Color = req.Color
	}

	if err := s.db.Save(tag).Error; err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

func (s *TaxonomyService) DeleteTag(id uuid.UUID) error {
	tag, err := s.GetTag(id)
	if err != nil {
		return err
	}

	if err := s.db.Select("Clothes").Delete(tag).Error; err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// Seasons

func (s *TaxonomyService) ListSeasons() ([]models.Season, error) {
	var seasons []models.Season
	if err := s.db.Order("name ASC").Find(&seasons).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch seasons: %w", err)
	}
	return seasons, nil
}

func (s *TaxonomyService) GetSeason(id uuid.UUID) (*models.Season, error) {
	var season models.Season
	if err := s.db.First(&season, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("season %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &season, nil
}

func (s *TaxonomyService) CreateSeason(req *SeasonRequest) (*models.Season, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkNameFree(&models.Season{}, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	season := &models.Season{Name: req.Name, Description: req.Description}
	if err := s.db.Create(season).Error; err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return season, nil
}

func (s *TaxonomyService) UpdateSeason(id uuid.UUID, req *SeasonRequest) (*models.Season, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	season, err := s.GetSeason(id)
	if err != nil {
		return nil, err
	}

	if req.Name != season.Name {
		if err := s.checkNameFree(&models.Season{}, req.Name, id); err != nil {
			return nil, err
		}
	}

	season.Name = req.Name
	season.Description = req.Description

	if err := s.db.Save(season).Error; err != nil {
		return nil, fmt.Errorf("failed to update season: %w", err)
	}
	return season, nil
}

func (s *TaxonomyService) DeleteSeason(id uuid.UUID) error {
	if _, err := s.GetSeason(id); err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Clothing{}).Where("season_id = ?", id).Count(&inUse).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: season is assigned to clothing records", ErrDuplicate)
	}

	if err := s.db.Delete(&models.Season{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	return nil
}

// Materials

func (s *TaxonomyService) ListMaterials() ([]models.Material, error) {
	var materials []models.Material
	if err := s.db.Order("name ASC").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch materials: %w", err)
	}
	return materials, nil
}

func (s *TaxonomyService) GetMaterial(id uuid.UUID) (*models.Material, error) {
	var material models.Material
	if err := s.db.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("material %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &material, nil
}

func (s *TaxonomyService) CreateMaterial(req *MaterialRequest) (*models.Material, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.checkNameFree(&models.Material{}, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	material := &models.Material{Name: req.Name, Description: req.Description}
	if err := s.db.Create(material).Error; err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return material, nil
}

func (s *TaxonomyService) UpdateMaterial(id uuid.UUID, req *MaterialRequest) (*models.Material, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	material, err := s.GetMaterial(id)
	if err != nil {
		return nil, err
	}

	if req.Name != material.Name {
		if err := s.checkNameFree(&models.Material{}, req.Name, id); err != nil {
			return nil, err
		}
	}

	material.Name = req.Name
	material.Description = req.Description

	if err := s.db.Save(material).Error; err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}
	return material, nil
}

func (s *TaxonomyService) DeleteMaterial(id uuid.UUID) error {
	material, err := s.GetMaterial(id)
	if err != nil {
		return err
	}

	if err := s.db.Select("Clothes").Delete(material).Error; err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

// checkNameFree rejects a name already taken by another row of the same
// vocabulary. excludeID skips the row being updated.
func (s *TaxonomyService) checkNameFree(model interface{}, name string, excludeID uuid.UUID) error {
	query := s.db.Model(model).Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: name already in use", ErrDuplicate)
	}
	return nil
}
