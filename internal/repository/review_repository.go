package repository

import (
	"context"

	"estate-market/internal/models"

	"github.com/google/uuid"
)

// CreateReview creates a review, rejecting a second review by the same
// user on the same property.
func (r *Repository) CreateReview(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

// GetReviewByID retrieves a review by ID
func (r *Repository) GetReviewByID(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Where("id = ?", reviewID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListLatestReviews retrieves the most recent reviews across all properties
func (r *Repository) ListLatestReviews(ctx context.Context, limit int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Property").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListPropertyReviews retrieves reviews for a property, newest first
func (r *Repository) ListPropertyReviews(ctx context.Context, propertyID uuid.UUID) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListUserReviews retrieves reviews written by a user, newest first
func (r *Repository) ListUserReviews(ctx context.Context, userID uuid.UUID) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("reviewer_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListAllReviews retrieves every review (admin view)
func (r *Repository) ListAllReviews(ctx context.Context) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Preload("Property").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// DeleteReview removes a review
func (r *Repository) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", reviewID).Error
}
