// internal/models/clothing.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Clothing struct {
	BaseModel
	Name             string         `json:"name" gorm:"size:200;not null"`
	StyleNumber      string         `json:"style_number" gorm:"uniqueIndex;size:50;not null"`
	Description      string         `json:"description" gorm:"type:text"`
	Gender           Gender         `json:"gender" gorm:"type:varchar(10);default:'unisex';index"`
	Color            string         `json:"color" gorm:"size:50;index"`
	SizeRange        string         `json:"size_range" gorm:"size:50"`
	PriceRange       string         `json:"price_range" gorm:"size:50"`
	MainImage        string         `json:"main_image" gorm:"size:500"`
	AdditionalImages pq.StringArray `json:"additional_images" gorm:"type:text[]"`
	Status           ClothingStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	IsPublic         bool           `json:"is_public" gorm:"default:false;index"`
	PublishedAt      *time.Time     `json:"published_at"`

	DesignerID uuid.UUID  `json:"designer_id" gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	SeasonID   *uuid.UUID `json:"season_id" gorm:"type:uuid;index"`

	// Relationships
	Designer  Designer          `json:"designer,omitempty" gorm:"foreignKey:DesignerID"`
	Category  *Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Season    *Season           `json:"season,omitempty" gorm:"foreignKey:SeasonID"`
	Tags      []Tag             `json:"tags,omitempty" gorm:"many2many:clothing_tags;"`
	Materials []Material        `json:"materials,omitempty" gorm:"many2many:clothing_materials;"`
	Viewers   []User            `json:"viewers,omitempty" gorm:"many2many:clothing_viewers;"`
	History   []ClothingHistory `json:"history,omitempty" gorm:"foreignKey:ClothingID"`
}
