package repository

import (
	"context"

	"estate-market/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddWishlist adds a property to a user's wishlist. A duplicate entry is
// reported as ErrDuplicateEntry, never as a raw driver error.
func (r *Repository) AddWishlist(ctx context.Context, item *models.Wishlist) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

// GetWishlistItem retrieves a single wishlist entry
func (r *Repository) GetWishlistItem(ctx context.Context, userID, propertyID uuid.UUID) (*models.Wishlist, error) {
	var item models.Wishlist
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListWishlist retrieves a user's wishlist with properties preloaded
func (r *Repository) ListWishlist(ctx context.Context, userID uuid.UUID) ([]*models.Wishlist, error) {
	var items []*models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Agent").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveWishlist deletes a wishlist entry, reporting whether one existed
func (r *Repository) RemoveWishlist(ctx context.Context, userID, propertyID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
