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

type ReviewService struct {
	repo *repository.Repository
}

func NewReviewService(repo *repository.Repository) *ReviewService {
	return &ReviewService{repo: repo}
}

// AddReview records a user's review. One review per user per property.
func (s *ReviewService) AddReview(
	ctx context.Context,
	reviewerID uuid.UUID,
	req *models.CreateReviewRequest,
) (*models.Review, error) {
	if _, err := s.repo.GetPropertyByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property")
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	review := &models.Review{
		ID:          uuid.New(),
		PropertyID:  req.PropertyID,
		ReviewerID:  reviewerID,
		Description: req.Description,
	}

	if err := s.repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, apperr.Validation("You have already reviewed this property")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// LatestReviews retrieves the newest reviews site-wide
func (s *ReviewService) LatestReviews(ctx context.Context) ([]*models.Review, error) {
	return s.repo.ListLatestReviews(ctx, 3)
}

// PropertyReviews retrieves reviews for one property
func (s *ReviewService) PropertyReviews(ctx context.Context, propertyID uuid.UUID) ([]*models.Review, error) {
	return s.repo.ListPropertyReviews(ctx, propertyID)
}

// UserReviews retrieves the caller's own reviews
func (s *ReviewService) UserReviews(ctx context.Context, userID uuid.UUID) ([]*models.Review, error) {
	return s.repo.ListUserReviews(ctx, userID)
}

// AllReviews retrieves every review (admin)
func (s *ReviewService) AllReviews(ctx context.Context) ([]*models.Review, error) {
	return s.repo.ListAllReviews(ctx)
}

// DeleteReview removes a review. Only the author or an admin may delete.
func (s *ReviewService) DeleteReview(
	ctx context.Context,
	callerID uuid.UUID,
	callerRole models.UserRole,
	reviewID uuid.UUID,
) error {
	review, err := s.repo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Review")
		}
		return fmt.Errorf("failed to load review: %w", err)
	}

	if review.ReviewerID != callerID && callerRole != models.RoleAdmin {
		return apperr.Authorization("Not authorized")
	}

	return s.repo.DeleteReview(ctx, reviewID)
}
