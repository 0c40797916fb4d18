// internal/models/permission.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserPermission grants one account explicit access to one Clothing record.
// Expired grants are ignored at read time rather than purged.
type UserPermission struct {
	BaseModel
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_clothing"`
	ClothingID uuid.UUID  `json:"clothing_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_clothing"`
	CanView    bool       `json:"can_view" gorm:"default:true"`
	CanEdit    bool       `json:"can_edit" gorm:"default:false"`
	CanDelete  bool       `json:"can_delete" gorm:"default:false"`
	GrantedBy  *uuid.UUID `json:"granted_by" gorm:"type:uuid"`
	GrantedAt  time.Time  `json:"granted_at" gorm:"autoCreateTime"`
	ExpiresAt  *time.Time `json:"expires_at"`

	// Relationships
	User     User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Clothing Clothing `json:"clothing,omitempty" gorm:"foreignKey:ClothingID"`
	Grantor  *User    `json:"grantor,omitempty" gorm:"foreignKey:GrantedBy"`
}

func (p *UserPermission) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}
