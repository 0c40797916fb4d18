// internal/services/history_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylehaus/atelier-backend/internal/models"
	"github.com/stylehaus/atelier-backend/internal/utils"
)

// HistoryService exposes the audit trail read-only. Rows are written by the
// clothing service inside its mutation transactions; nothing else creates
// them and nothing ever edits them.
type HistoryService struct {
	db       *gorm.DB
	clothing *ClothingService
}

func NewHistoryService(db *gorm.DB, clothing *ClothingService) *HistoryService {
	return &HistoryService{db: db, clothing: clothing}
}

type HistoryListParams struct {
	utils.PaginationParams
	ClothingID *uuid.UUID            `json:"clothing_id,omitempty"`
	DesignerID *uuid.UUID            `json:"designer_id,omitempty"`
	Action     *models.HistoryAction `json:"action,omitempty"`
}

// ListHistory returns history rows whose clothing record the caller may
// see. The visibility scope is applied as a subquery so the audit trail
// never leaks records the caller could not fetch directly.
func (s *HistoryService) ListHistory(actor *Actor, params HistoryListParams) ([]models.ClothingHistory, int64, error) {
	visible := s.clothing.visibleQuery(actor).Select("clothings.id")
	query := s.db.Model(&models.ClothingHistory{}).Where("clothing_id IN (?)", visible)

	if params.ClothingID != nil {
		query = query.Where("clothing_id = ?", *params.ClothingID)
	}
	if params.DesignerID != nil {
		query = query.Where("designer_id = ?", *params.DesignerID)
	}
	if params.Action != nil {
		query = query.Where("action = ?", *params.Action)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var history []models.ClothingHistory
	if err := query.Preload("Designer").Find(&history).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch history: %w", err)
	}

	return history, total, nil
}

func (s *HistoryService) GetHistory(actor *Actor, id uuid.UUID) (*models.ClothingHistory, error) {
	var history models.ClothingHistory
	if err := s.db.Preload("Designer").First(&history, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("history %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Gate on the clothing record's visibility
	if _, err := s.clothing.GetClothing(actor, history.ClothingID); err != nil {
		return nil, fmt.Errorf("history %w", ErrNotFound)
	}

	return &history, nil
}
