// internal/models/taxonomy.go
package models

import "github.com/google/uuid"

// Category forms an optional tree via Parent.
type Category struct {
	BaseModel
	Name        string     `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string     `json:"description" gorm:"type:text"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	SortOrder   int        `json:"sort_order" gorm:"default:0"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`

	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

type Tag struct {
	BaseModel
	Name  string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Color string `json:"color" gorm:"size:20"`

	Clothes []Clothing `json:"clothes,omitempty" gorm:"many2many:clothing_tags;"`
}

type Season struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Description string `json:"description" gorm:"type:text"`
}

type Material struct {
	BaseModel
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"type:text"`

	Clothes []Clothing `json:"clothes,omitempty" gorm:"many2many:clothing_materials;"`
}
