// internal/models/history.go
package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClothingHistory is an append-only audit trail. One row is written for every
// create, update and publish of a Clothing record; the changes map holds
// {field: {"old": ..., "new": ...}} for fields that actually changed.
type ClothingHistory struct {
	BaseModel
	ClothingID  uuid.UUID     `json:"clothing_id" gorm:"type:uuid;not null;index"`
	DesignerID  uuid.UUID     `json:"designer_id" gorm:"type:uuid;not null;index"`
	Action      HistoryAction `json:"action" gorm:"type:varchar(20);not null;index"`
	Description string        `json:"description" gorm:"size:255"`
	Changes     JSONB         `json:"changes" gorm:"type:jsonb"`

	// Relationships
	Clothing Clothing `json:"clothing,omitempty" gorm:"foreignKey:ClothingID"`
	Designer Designer `json:"designer,omitempty" gorm:"foreignKey:DesignerID"`
}

var ErrHistoryImmutable = errors.New("clothing history records are immutable")

func (h *ClothingHistory) BeforeUpdate(tx *gorm.DB) error {
	return ErrHistoryImmutable
}

func (h *ClothingHistory) BeforeDelete(tx *gorm.DB) error {
	return ErrHistoryImmutable
}
