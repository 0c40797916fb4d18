// internal/services/permission_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// PermissionService manages per-user access grants on clothing records.
// Grants are staff-managed; the clothing visibility scope consumes them.
type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

type GrantPermissionRequest struct {
	UserID     uuid.UUID  `json:"user_id" validate:"required"`
	ClothingID uuid.UUID  `json:"clothing_id" validate:"required"`
	CanView    *bool      `json:"can_view,omitempty"`
	CanEdit    bool       `json:"can_edit,omitempty"`
	CanDelete  bool       `json:"can_delete,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type UpdatePermissionRequest struct {
	CanView   *bool      `json:"can_view,omitempty"`
	CanEdit   *bool      `json:"can_edit,omitempty"`
	CanDelete *bool      `json:"can_delete,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// ClearExpiry removes the expiry so the grant becomes permanent.
	ClearExpiry bool `json:"clear_expiry,omitempty"`
}

type PermissionListParams struct {
	utils.PaginationParams
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	ClothingID *uuid.UUID `json:"clothing_id,omitempty"`
}

func (s *PermissionService) ListPermissions(params PermissionListParams) ([]models.UserPermission, int64, error) {
	query := s.db.Model(&models.UserPermission{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.ClothingID != nil {
		query = query.Where("clothing_id = ?", *params.ClothingID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count permissions: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"granted_at", "expires_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var permissions []models.UserPermission
	if err := query.Preload("User").Preload("Clothing").Find(&permissions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch permissions: %w", err)
	}

	return permissions, total, nil
}

func (s *PermissionService) GetPermission(id uuid.UUID) (*models.UserPermission, error) {
	var permission models.UserPermission
	if err := s.db.Preload("User").Preload("Clothing").First(&permission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("permission %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &permission, nil
}

// GrantPermission creates a grant for a user on a clothing record. Each
// user/clothing pair carries at most one grant.
func (s *PermissionService) GrantPermission(actor *Actor, req *GrantPermissionRequest) (*models.UserPermission, error) {
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

	var clothing models.Clothing
	if err := s.db.First(&clothing, req.ClothingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("clothing %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.UserPermission{}).
		Where("user_id = ? AND clothing_id = ?", req.UserID, req.ClothingID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: permission already granted for this user and clothing", ErrDuplicate)
	}

	permission := &models.UserPermission{
		UserID:     req.UserID,
		ClothingID: req.ClothingID,
		CanView:    true,
		CanEdit:    req.CanEdit,
		CanDelete:  req.CanDelete,
		ExpiresAt:  req.ExpiresAt,
	}
	if req.CanView != nil {
		permission.CanView = *req.CanView
	}
	if actor != nil {
		grantedBy := actor.UserID
		permission.GrantedBy = &grantedBy
	}

	if err := s.db.Create(permission).Error; err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}

	return permission, nil
}

func (s *PermissionService) UpdatePermission(id uuid.UUID, req *UpdatePermissionRequest) (*models.UserPermission, error) {
	permission, err := s.GetPermission(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.CanView != nil {
		updates["can_view"] = *req.CanView
	}
	if req.CanEdit != nil {
		updates["can_edit"] = *req.CanEdit
	}
	if req.CanDelete != nil {
		updates["can_delete"] = *req.CanDelete
	}
	if req.ClearExpiry {
		updates["expires_at"] = gorm.Expr("NULL")
	} else if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}

	if len(updates) > 0 {
		if err := s.db.Model(permission).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update permission: %w", err)
		}
	}

	return s.GetPermission(id)
}

func (s *PermissionService) RevokePermission(id uuid.UUID) error {
	permission, err := s.GetPermission(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(permission).Error; err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}
