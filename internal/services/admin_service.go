// internal/services/admin_service.go
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

// AdminService backs the staff-only account management and dashboard
// endpoints.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type CreateUserRequest struct {
	Username string          `json:"username" validate:"required,username"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,strong_password"`
	Role     models.UserRole `json:"role" validate:"required,oneof=staff designer viewer"`
}

type UpdateUserRequest struct {
	Email  string            `json:"email,omitempty" validate:"omitempty,email"`
	Role   models.UserRole   `json:"role,omitempty" validate:"omitempty,oneof=staff designer viewer"`
	Status models.UserStatus `json:"status,omitempty" validate:"omitempty,oneof=active suspended"`
}

type UserListParams struct {
	utils.PaginationParams
	Role   *models.UserRole   `json:"role,omitempty"`
	Status *models.UserStatus `json:"status,omitempty"`
}

type DashboardStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalDesigners int64 `json:"total_designers"`
	TotalClothes   int64 `json:"total_clothes"`
	Published      int64 `json:"published_clothes"`
	Drafts         int64 `json:"draft_clothes"`
	ActiveGrants   int64 `json:"active_permission_grants"`
	HistoryRows    int64 `json:"history_rows"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalDesigners, s.db.Model(&models.Designer{})},
		{&stats.TotalClothes, s.db.Model(&models.Clothing{})},
		{&stats.Published, s.db.Model(&models.Clothing{}).Where("status = ?", models.ClothingStatusPublished)},
		{&stats.Drafts, s.db.Model(&models.Clothing{}).Where("status = ?", models.ClothingStatusDraft)},
		{&stats.ActiveGrants, s.db.Model(&models.UserPermission{}).Where("expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP")},
		{&stats.HistoryRows, s.db.Model(&models.ClothingHistory{})},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	return stats, nil
}

func (s *AdminService) ListUsers(params UserListParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Role != nil {
		query = query.Where("role = ?", *params.Role)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "username", "last_login_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var users []models.User
	if err := query.Preload("DesignerProfile").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("DesignerProfile").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AdminService) CreateUser(req *CreateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? OR username = ?", req.Email, req.Username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username or email already in use", ErrDuplicate)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Status:   models.UserStatusActive,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AdminService) UpdateUser(id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		var count int64
		if err := s.db.Model(&models.User{}).
			Where("email = ? AND id != ?", req.Email, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: email already in use", ErrDuplicate)
		}
		user.Email = req.Email
	}

	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser soft-deletes an account. Accounts with a designer profile that
// still owns clothing records are refused; reassign or remove the records
// first.
func (s *AdminService) DeleteUser(actor *Actor, id uuid.UUID) error {
	if actor != nil && actor.UserID == id {
		return fmt.Errorf("%w: cannot delete your own account", ErrForbidden)
	}

	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	if user.DesignerProfile != nil {
		var clothingCount int64
		if err := s.db.Model(&models.Clothing{}).
			Where("designer_id = ?", user.DesignerProfile.ID).
			Count(&clothingCount).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if clothingCount > 0 {
			return fmt.Errorf("%w: user's designer profile still owns clothing records", ErrDuplicate)
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if user.DesignerProfile != nil {
			if err := tx.Delete(&models.Designer{}, user.DesignerProfile.ID).Error; err != nil {
				return fmt.Errorf("failed to delete designer profile: %w", err)
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserPermission{}).Error; err != nil {
			return fmt.Errorf("failed to remove permission grants: %w", err)
		}
		if err := tx.Delete(user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
