package models

import (
	"time"

	"github.com/google/uuid"
)

// Wishlist links a user to a property they saved. The compound unique index
// prevents duplicate entries at the storage level.
type Wishlist struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_property" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_property" json:"property_id"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for Wishlist model
func (Wishlist) TableName() string {
	return "wishlists"
}

type AddWishlistRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
}
