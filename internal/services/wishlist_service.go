package services

import (
	"context"
	"errors"
	"fmt"

	"estate-market/internal/apperr"
	"estate-market/internal/models"
	"estate-market/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistService struct {
	repo *repository.Repository
}

func NewWishlistService(repo *repository.Repository) *WishlistService {
	return &WishlistService{repo: repo}
}

// Add saves a property to the caller's wishlist
func (s *WishlistService) Add(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) (*models.Wishlist, error) {
	if _, err := s.repo.GetPropertyByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property")
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	item := &models.Wishlist{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propertyID,
	}

	if err := s.repo.AddWishlist(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperr.Validation("Property already in wishlist")
		}
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	return item, nil
}

// List retrieves the caller's wishlist
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]*models.Wishlist, error) {
	return s.repo.ListWishlist(ctx, userID)
}

// Contains reports whether a property is on the caller's wishlist
func (s *WishlistService) Contains(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) (bool, error) {
	_, err := s.repo.GetWishlistItem(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return true, nil
}

// Remove deletes a property from the caller's wishlist
func (s *WishlistService) Remove(ctx context.Context, userID uuid.UUID, propertyID uuid.UUID) error {
	err := s.repo.RemoveWishlist(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Property in wishlist")
		}
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return nil
}
