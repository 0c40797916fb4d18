// internal/services/designer_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

type DesignerService struct {
	db *gorm.DB
}

func NewDesignerService(db *gorm.DB) *DesignerService {
	return &DesignerService{db: db}
}

type CreateDesignerRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Name   string    `json:"name" validate:"required,min=1,max=100"`
	Email  string    `json:"email" validate:"required,email"`
	Phone  string    `json:"phone,omitempty" validate:"omitempty,max=30"`
	Bio    string    `json:"bio,omitempty"`
	Avatar string    `json:"avatar,omitempty"`
}

type UpdateDesignerRequest struct {
	Name     string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email    string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type DesignerListParams struct {
	utils.PaginationParams
	ActiveOnly bool `json:"active_only,omitempty"`
}

func (s *DesignerService) ListDesigners(params DesignerListParams) ([]models.Designer, int64, error) {
	query := s.db.Model(&models.Designer{})

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count designers: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "name"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var designers []models.Designer
	if err := query.Find(&designers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch designers: %w", err)
	}

	return designers, total, nil
}

func (s *DesignerService) GetDesigner(id uuid.UUID) (*models.Designer, error) {
	var designer models.Designer
	if err := s.db.First(&designer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("designer %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &designer, nil
}

func (s *DesignerService) GetDesignerByUserID(userID uuid.UUID) (*models.Designer, error) {
	var designer models.Designer
	if err := s.db.Where("user_id = ?", userID).First(&designer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("designer %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &designer, nil
}

// CreateDesigner attaches a designer profile to an existing user account and
// promotes the account to the designer role. Staff-only.
func (s *DesignerService) CreateDesigner(req *CreateDesignerRequest) (*models.Designer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Designer{}).
		Where("user_id = ? OR email = ?", req.UserID, req.Email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: designer profile already exists for this user or email", ErrDuplicate)
	}

	designer := &models.Designer{
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
		IsActive: true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(designer).Error; err != nil {
			return fmt.Errorf("failed to create designer: %w", err)
		}
		if user.Role == models.UserRoleViewer {
			if err := tx.Model(&user).Update("role", models.UserRoleDesigner).Error; err != nil {
				return fmt.Errorf("failed to update user role: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return designer, nil
}

// UpdateDesigner edits a profile. Designers may edit their own profile;
// staff may edit any.
func (s *DesignerService) UpdateDesigner(actor *Actor, id uuid.UUID, req *UpdateDesignerRequest) (*models.Designer, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	designer, err := s.GetDesigner(id)
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff() && (actor == nil || designer.UserID != actor.UserID) {
		return nil, fmt.Errorf("%w: only the profile owner or staff may edit a designer profile", ErrForbidden)
	}

	if req.Email != "" && req.Email != designer.Email {
		var count int64
		if err := s.db.Model(&models.Designer{}).
			Where("email = ? AND id != ?", req.Email, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: email already in use", ErrDuplicate)
		}
		designer.Email = req.Email
	}

	if req.Name != "" {
		designer.Name = req.Name
	}
	if req.Phone != nil {
		designer.Phone = *req.Phone
	}
	if req.Bio != nil {
		designer.Bio = *req.Bio
	}
	if req.Avatar != nil {
		designer.Avatar = *req.Avatar
	}
	if req.IsActive != nil {
		// Only staff may deactivate a profile
		if !actor.IsStaff() {
			return nil, fmt.Errorf("%w: only staff may change designer active status", ErrForbidden)
		}
		designer.IsActive = *req.IsActive
	}

	if err := s.db.Save(designer).Error; err != nil {
		return nil, fmt.Errorf("failed to update designer: %w", err)
	}

	return designer, nil
}

func (s *DesignerService) DeleteDesigner(id uuid.UUID) error {
	designer, err := s.GetDesigner(id)
	if err != nil {
		return err
	}

	var clothingCount int64
	if err := s.db.Model(&models.Clothing{}).Where("designer_id = ?", id).Count(&clothingCount).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if clothingCount > 0 {
		return fmt.Errorf("%w: designer still owns clothing records", ErrDuplicate)
	}

	if err := s.db.Delete(designer).Error; err != nil {
		return fmt.Errorf("failed to delete designer: %w", err)
	}
	return nil
}

// DesignerClothes lists a designer's records through the caller's
// visibility scope, so outsiders only see the public subset.
func (s *DesignerService) DesignerClothes(clothingService *ClothingService, actor *Actor, id uuid.UUID, params utils.PaginationParams) ([]models.Clothing, int64, error) {
	if _, err := s.GetDesigner(id); err != nil {
		return nil, 0, err
	}

	searchParams := ClothingSearchParams{
		PaginationParams: params,
		DesignerID:       &id,
	}
	return clothingService.SearchClothes(actor, searchParams)
}
