// internal/services/clothing_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

type ClothingService struct {
	db *gorm.DB
}

func NewClothingService(db *gorm.DB) *ClothingService {
	return &ClothingService{db: db}
}

type CreateClothingRequest struct {
	Name             string                `json:"name" validate:"required,min=1,max=200"`
	StyleNumber      string                `json:"style_number" validate:"required,style_number"`
	Description      string                `json:"description,omitempty"`
	Gender           models.Gender         `json:"gender,omitempty" validate:"omitempty,oneof=male female unisex"`
	Color            string                `json:"color,omitempty" validate:"omitempty,max=50"`
	SizeRange        string                `json:"size_range,omitempty" validate:"omitempty,max=50"`
	PriceRange       string                `json:"price_range,omitempty" validate:"omitempty,max=50"`
	MainImage        string                `json:"main_image,omitempty"`
	AdditionalImages []string              `json:"additional_images,omitempty"`
	CategoryID       *uuid.UUID            `json:"category_id,omitempty"`
	SeasonID         *uuid.UUID            `json:"season_id,omitempty"`
	TagIDs           []uuid.UUID           `json:"tag_ids,omitempty"`
	MaterialIDs      []uuid.UUID           `json:"material_ids,omitempty"`
	Status           models.ClothingStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	IsPublic         bool                  `json:"is_public,omitempty"`
}

type UpdateClothingRequest struct {
	Name             string                `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	StyleNumber      string                `json:"style_number,omitempty" validate:"omitempty,style_number"`
	Description      *string               `json:"description,omitempty"`
	Gender           models.Gender         `json:"gender,omitempty" validate:"omitempty,oneof=male female unisex"`
	Color            *string               `json:"color,omitempty"`
	SizeRange        *string               `json:"size_range,omitempty"`
	PriceRange       *string               `json:"price_range,omitempty"`
	MainImage        *string               `json:"main_image,omitempty"`
	AdditionalImages []string              `json:"additional_images,omitempty"`
	CategoryID       *uuid.UUID            `json:"category_id,omitempty"`
	SeasonID         *uuid.UUID            `json:"season_id,omitempty"`
	TagIDs           []uuid.UUID           `json:"tag_ids,omitempty"`
	MaterialIDs      []uuid.UUID           `json:"material_ids,omitempty"`
	Status           models.ClothingStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	IsPublic         *bool                 `json:"is_public,omitempty"`
}

type ClothingSearchParams struct {
	utils.PaginationParams
	DesignerID  *uuid.UUID             `json:"designer_id,omitempty"`
	CategoryID  *uuid.UUID             `json:"category_id,omitempty"`
	SeasonID    *uuid.UUID             `json:"season_id,omitempty"`
	Gender      *models.Gender         `json:"gender,omitempty"`
	Status      *models.ClothingStatus `json:"status,omitempty"`
	IsPublic    *bool                  `json:"is_public,omitempty"`
	Color       string                 `json:"color,omitempty"`
	TagIDs      []uuid.UUID            `json:"tag_ids,omitempty"`
	MaterialIDs []uuid.UUID            `json:"material_ids,omitempty"`
}

// visibleQuery builds the queryset a caller is allowed to see. Both list
// filtering and single-object lookups go through it, so the two can never
// disagree. A record is visible when the caller is staff, the record is
// public, the caller is the owning designer, or the caller holds an
// unexpired can_view permission grant.
func (s *ClothingService) visibleQuery(actor *Actor) *gorm.DB {
	query := s.db.Model(&models.Clothing{})

	if actor.IsStaff() {
		return query
	}

	if actor == nil {
		return query.Where("is_public = ?", true)
	}

	ownedBy := s.db.Model(&models.Designer{}).
		Select("id").
		Where("user_id = ?", actor.UserID)

	permitted := s.db.Model(&models.UserPermission{}).
		Select("clothing_id").
		Where("user_id = ? AND can_view = ?", actor.UserID, true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now())

	return query.Where(
		"is_public = ? OR designer_id IN (?) OR id IN (?)",
		true, ownedBy, permitted,
	)
}

func (s *ClothingService) withRelations(query *gorm.DB) *gorm.DB {
	return query.Preload("Designer").Preload("Category").Preload("Season").
		Preload("Tags").Preload("Materials")
}

func (s *ClothingService) GetClothing(actor *Actor, id uuid.UUID) (*models.Clothing, error) {
	var clothing models.Clothing
	query := s.withRelations(s.visibleQuery(actor))

	if err := query.Where("clothings.id = ?", id).First(&clothing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Invisible records read as missing so their existence stays concealed
			return nil, fmt.Errorf("clothing %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &clothing, nil
}

// CreateClothing creates a record owned by the caller's designer profile.
// Any designer supplied by the client is ignored; attribution always comes
// from the authenticated caller.
func (s *ClothingService) CreateClothing(actor *Actor, req *CreateClothingRequest) (*models.Clothing, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	designer, err := s.designerFor(actor)
	if err != nil {
		return nil, err
	}

	// Enforce style number uniqueness
	var count int64
	if err := s.db.Model(&models.Clothing{}).Where("style_number = ?", req.StyleNumber).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: style number already in use", ErrDuplicate)
	}

	clothing := &models.Clothing{
		Name:             req.Name,
		StyleNumber:      req.StyleNumber,
		Description:      req.Description,
		Gender:           req.Gender,
		Color:            req.Color,
		SizeRange:        req.SizeRange,
		PriceRange:       req.PriceRange,
		MainImage:        req.MainImage,
		AdditionalImages: req.AdditionalImages,
		CategoryID:       req.CategoryID,
		SeasonID:         req.SeasonID,
		Status:           req.Status,
		IsPublic:         req.IsPublic,
		DesignerID:       designer.ID,
	}
	if clothing.Gender == "" {
		clothing.Gender = models.GenderUnisex
	}
	if clothing.Status == "" {
		clothing.Status = models.ClothingStatusDraft
	}
	if clothing.Status == models.ClothingStatusPublished {
		now := time.Now()
		clothing.PublishedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clothing).Error; err != nil {
			return fmt.Errorf("failed to create clothing: %w", err)
		}

		if err := s.replaceAssociations(tx, clothing, req.TagIDs, req.MaterialIDs); err != nil {
			return err
		}

		history := &models.ClothingHistory{
			ClothingID:  clothing.ID,
			DesignerID:  designer.ID,
			Action:      models.HistoryActionCreate,
			Description: "Created clothing record",
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.withRelations(s.db).First(clothing, clothing.ID)
	return clothing, nil
}

func (s *ClothingService) UpdateClothing(actor *Actor, id uuid.UUID, req *UpdateClothingRequest) (*models.Clothing, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	clothing, err := s.GetClothing(actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnerOrStaff(actor, clothing); err != nil {
		return nil, err
	}

	// Enforce style number uniqueness when it changes
	if req.StyleNumber != "" && req.StyleNumber != clothing.StyleNumber {
		var count int64
		if err := s.db.Model(&models.Clothing{}).
			Where("style_number = ? AND id != ?", req.StyleNumber, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: style number already in use", ErrDuplicate)
		}
	}

	updates, changes := s.buildUpdates(clothing, req)

	historyDesigner := s.historyDesignerID(actor, clothing)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Clothing{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update clothing: %w", err)
			}
		}

		if req.TagIDs != nil || req.MaterialIDs != nil {
			assocChanges, err := s.updateAssociations(tx, clothing, req.TagIDs, req.MaterialIDs)
			if err != nil {
				return err
			}
			for field, change := range assocChanges {
				changes[field] = change
			}
		}

		history := &models.ClothingHistory{
			ClothingID:  clothing.ID,
			DesignerID:  historyDesigner,
			Action:      models.HistoryActionUpdate,
			Description: "Updated clothing record",
			Changes:     models.JSONB(changes),
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated models.Clothing
	s.withRelations(s.db).First(&updated, id)
	return &updated, nil
}

func (s *ClothingService) DeleteClothing(actor *Actor, id uuid.UUID) error {
	clothing, err := s.GetClothing(actor, id)
	if err != nil {
		return err
	}

	if err := s.requireOwnerOrStaff(actor, clothing); err != nil {
		return err
	}

	// Soft delete
	if err := s.db.Delete(&models.Clothing{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete clothing: %w", err)
	}

	return nil
}

// PublishClothing transitions a record to published. The published_at
// timestamp is set on the first transition only; republishing never resets
// it. The status write and the history row commit together.
func (s *ClothingService) PublishClothing(actor *Actor, id uuid.UUID) (*models.Clothing, error) {
	clothing, err := s.GetClothing(actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnerOrStaff(actor, clothing); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	updates := map[string]interface{}{}

	if clothing.Status != models.ClothingStatusPublished {
		updates["status"] = models.ClothingStatusPublished
		changes["status"] = map[string]interface{}{
			"old": string(clothing.Status),
			"new": string(models.ClothingStatusPublished),
		}
	}
	if clothing.PublishedAt == nil {
		now := time.Now()
		updates["published_at"] = now
		changes["published_at"] = map[string]interface{}{
			"old": nil,
			"new": now.Format(time.RFC3339),
		}
	}

	historyDesigner := s.historyDesignerID(actor, clothing)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Clothing{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to publish clothing: %w", err)
			}
		}

		history := &models.ClothingHistory{
			ClothingID:  clothing.ID,
			DesignerID:  historyDesigner,
			Action:      models.HistoryActionPublish,
			Description: "Published clothing record",
			Changes:     models.JSONB(changes),
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var published models.Clothing
	s.withRelations(s.db).First(&published, id)
	return &published, nil
}

// SearchClothes applies the visibility scope first, then the caller's
// filters: free text matches name, style number or description; tag and
// material filters match records carrying any of the supplied identifiers.
func (s *ClothingService) SearchClothes(actor *Actor, params ClothingSearchParams) ([]models.Clothing, int64, error) {
	query := s.visibleQuery(actor)

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(style_number) LIKE ? OR LOWER(description) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	if params.DesignerID != nil {
		query = query.Where("designer_id = ?", *params.DesignerID)
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.SeasonID != nil {
		query = query.Where("season_id = ?", *params.SeasonID)
	}

	if params.Gender != nil {
		query = query.Where("gender = ?", *params.Gender)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.IsPublic != nil {
		query = query.Where("is_public = ?", *params.IsPublic)
	}

	if params.Color != "" {
		query = query.Where("LOWER(color) LIKE ?", "%"+strings.ToLower(params.Color)+"%")
	}

	if len(params.TagIDs) > 0 {
		tagged := s.db.Table("clothing_tags").
			Select("clothing_id").
			Where("tag_id IN ?", params.TagIDs)
		query = query.Where("clothings.id IN (?)", tagged)
	}

	if len(params.MaterialIDs) > 0 {
		withMaterial := s.db.Table("clothing_materials").
			Select("clothing_id").
			Where("material_id IN ?", params.MaterialIDs)
		query = query.Where("clothings.id IN (?)", withMaterial)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clothes: %w", err)
	}

	// Apply sorting
	allowedSortFields := []string{"created_at", "updated_at", "name", "style_number", "published_at"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)

	// Apply pagination
	query = utils.ApplyPagination(query, params.PaginationParams)

	// Execute query
	var clothes []models.Clothing
	if err := s.withRelations(query).Find(&clothes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clothes: %w", err)
	}

	return clothes, total, nil
}

func (s *ClothingService) GetClothingHistory(actor *Actor, id uuid.UUID, params utils.PaginationParams) ([]models.ClothingHistory, int64, error) {
	// Visibility gate first; invisible records 404 here
	if _, err := s.GetClothing(actor, id); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.ClothingHistory{}).Where("clothing_id = ?", id)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var history []models.ClothingHistory
	if err := query.Preload("Designer").Find(&history).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch history: %w", err)
	}

	return history, total, nil
}

// Helper methods

func (s *ClothingService) designerFor(actor *Actor) (*models.Designer, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: authentication required", ErrForbidden)
	}

	var designer models.Designer
	if err := s.db.Where("user_id = ?", actor.UserID).First(&designer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: only designers may create clothing records", ErrForbidden)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &designer, nil
}

func (s *ClothingService) requireOwnerOrStaff(actor *Actor, clothing *models.Clothing) error {
	if actor.IsStaff() {
		return nil
	}
	if actor != nil {
		var designer models.Designer
		if err := s.db.Where("user_id = ?", actor.UserID).First(&designer).Error; err == nil {
			if designer.ID == clothing.DesignerID {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: only the owning designer or staff may modify this record", ErrForbidden)
}

// historyDesignerID attributes a history row. Staff without a designer
// profile act on behalf of the owning designer.
func (s *ClothingService) historyDesignerID(actor *Actor, clothing *models.Clothing) uuid.UUID {
	if actor != nil {
		var designer models.Designer
		if err := s.db.Where("user_id = ?", actor.UserID).First(&designer).Error; err == nil {
			return designer.ID
		}
	}
	return clothing.DesignerID
}

func (s *ClothingService) buildUpdates(clothing *models.Clothing, req *UpdateClothingRequest) (map[string]interface{}, map[string]interface{}) {
	updates := make(map[string]interface{})
	changes := make(map[string]interface{})

	record := func(field string, old, new interface{}) {
		changes[field] = map[string]interface{}{"old": old, "new": new}
	}

	if req.Name != "" && req.Name != clothing.Name {
		updates["name"] = req.Name
		record("name", clothing.Name, req.Name)
	}
	if req.StyleNumber != "" && req.StyleNumber != clothing.StyleNumber {
		updates["style_number"] = req.StyleNumber
		record("style_number", clothing.StyleNumber, req.StyleNumber)
	}
	if req.Description != nil && *req.Description != clothing.Description {
		updates["description"] = *req.Description
		record("description", clothing.Description, *req.Description)
	}
	if req.Gender != "" && req.Gender != clothing.Gender {
		updates["gender"] = req.Gender
		record("gender", string(clothing.Gender), string(req.Gender))
	}
	if req.Color != nil && *req.Color != clothing.Color {
		updates["color"] = *req.Color
		record("color", clothing.Color, *req.Color)
	}
	if req.SizeRange != nil && *req.SizeRange != clothing.SizeRange {
		updates["size_range"] = *req.SizeRange
		record("size_range", clothing.SizeRange, *req.SizeRange)
	}
	if req.PriceRange != nil && *req.PriceRange != clothing.PriceRange {
		updates["price_range"] = *req.PriceRange
		record("price_range", clothing.PriceRange, *req.PriceRange)
	}
	if req.MainImage != nil && *req.MainImage != clothing.MainImage {
		updates["main_image"] = *req.MainImage
		record("main_image", clothing.MainImage, *req.MainImage)
	}
	if req.AdditionalImages != nil && !equalStrings(req.AdditionalImages, clothing.AdditionalImages) {
		updates["additional_images"] = pq.StringArray(req.AdditionalImages)
		record("additional_images", []string(clothing.AdditionalImages), req.AdditionalImages)
	}
	if req.CategoryID != nil && !equalUUIDPtr(req.CategoryID, clothing.CategoryID) {
		updates["category_id"] = *req.CategoryID
		record("category_id", uuidPtrString(clothing.CategoryID), req.CategoryID.String())
	}
	if req.SeasonID != nil && !equalUUIDPtr(req.SeasonID, clothing.SeasonID) {
		updates["season_id"] = *req.SeasonID
		record("season_id", uuidPtrString(clothing.SeasonID), req.SeasonID.String())
	}
	if req.Status != "" && req.Status != clothing.Status {
		updates["status"] = req.Status
		record("status", string(clothing.Status), string(req.Status))
		// Status edits may publish too; the first transition stamps the time
		if req.Status == models.ClothingStatusPublished && clothing.PublishedAt == nil {
			now := time.Now()
			updates["published_at"] = now
			record("published_at", nil, now.Format(time.RFC3339))
		}
	}
	if req.IsPublic != nil && *req.IsPublic != clothing.IsPublic {
		updates["is_public"] = *req.IsPublic
		record("is_public", clothing.IsPublic, *req.IsPublic)
	}

	return updates, changes
}

func (s *ClothingService) replaceAssociations(tx *gorm.DB, clothing *models.Clothing, tagIDs, materialIDs []uuid.UUID) error {
	if len(tagIDs) > 0 {
		var tags []models.Tag
		if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return fmt.Errorf("failed to load tags: %w", err)
		}
		if err := tx.Model(clothing).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to set tags: %w", err)
		}
	}

	if len(materialIDs) > 0 {
		var materials []models.Material
		if err := tx.Where("id IN ?", materialIDs).Find(&materials).Error; err != nil {
			return fmt.Errorf("failed to load materials: %w", err)
		}
		if err := tx.Model(clothing).Association("Materials").Replace(materials); err != nil {
			return fmt.Errorf("failed to set materials: %w", err)
		}
	}

	return nil
}

func (s *ClothingService) updateAssociations(tx *gorm.DB, clothing *models.Clothing, tagIDs, materialIDs []uuid.UUID) (map[string]interface{}, error) {
	changes := make(map[string]interface{})

	if tagIDs != nil {
		var oldTags []models.Tag
		if err := tx.Model(clothing).Association("Tags").Find(&oldTags); err != nil {
			return nil, fmt.Errorf("failed to load tags: %w", err)
		}
		oldIDs := tagUUIDs(oldTags)
		if !sameIDSet(oldIDs, tagIDs) {
			var tags []models.Tag
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return nil, fmt.Errorf("failed to load tags: %w", err)
			}
			if err := tx.Model(clothing).Association("Tags").Replace(tags); err != nil {
				return nil, fmt.Errorf("failed to set tags: %w", err)
			}
			changes["tags"] = map[string]interface{}{
				"old": uuidStrings(oldIDs),
				"new": uuidStrings(tagIDs),
			}
		}
	}

	if materialIDs != nil {
		var oldMaterials []models.Material
		if err := tx.Model(clothing).Association("Materials").Find(&oldMaterials); err != nil {
			return nil, fmt.Errorf("failed to load materials: %w", err)
		}
		oldIDs := materialUUIDs(oldMaterials)
		if !sameIDSet(oldIDs, materialIDs) {
			var materials []models.Material
			if err := tx.Where("id IN ?", materialIDs).Find(&materials).Error; err != nil {
				return nil, fmt.Errorf("failed to load materials: %w", err)
			}
			if err := tx.Model(clothing).Association("Materials").Replace(materials); err != nil {
				return nil, fmt.Errorf("failed to set materials: %w", err)
			}
			changes["materials"] = map[string]interface{}{
				"old": uuidStrings(oldIDs),
				"new": uuidStrings(materialIDs),
			}
		}
	}

	return changes, nil
}

func equalStrings(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalUUIDPtr(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uuidPtrString(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}

func tagUUIDs(tags []models.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func materialUUIDs(materials []models.Material) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.ID)
	}
	return ids
}

func sameIDSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
