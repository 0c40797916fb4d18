// internal/models/designer.go
package models

import "github.com/google/uuid"

type Designer struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Name     string    `json:"name" gorm:"size:100;not null"`
	Email    string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone    string    `json:"phone" gorm:"size:30"`
	Bio      string    `json:"bio" gorm:"type:text"`
	Avatar   string    `json:"avatar" gorm:"size:500"`
	IsActive bool      `json:"is_active" gorm:"default:true;index"`

	// Relationships
	User    User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Clothes []Clothing `json:"clothes,omitempty" gorm:"foreignKey:DesignerID"`
}
