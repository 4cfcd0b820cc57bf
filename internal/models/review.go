package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's comment on a property.
type Review struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviewer_property" json:"property_id"`
	Property    *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	ReviewerID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviewer_property" json:"reviewer_id"`
	Reviewer    *User     `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Review model
func (Review) TableName() string {
	return "reviews"
}

type CreateReviewRequest struct {
	PropertyID  uuid.UUID `json:"property_id" binding:"required"`
	Description string    `json:"description" binding:"required"`
}
