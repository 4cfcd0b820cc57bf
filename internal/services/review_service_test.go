package services

import (
	"context"
	"testing"

	"estate-market/internal/apperr"
	"estate-market/internal/models"
	"estate-market/internal/repository"
)

func TestAddReview(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewReviewService(repo)

	agent := seedUser(t, db, models.RoleAgent)
	user := seedUser(t, db, models.RoleUser)
	property := seedProperty(t, db, agent.ID, models.VerificationVerified, 100000, 150000)

	review, err := svc.AddReview(context.Background(), user.ID, &models.CreateReviewRequest{
		PropertyID:  property.ID,
		Description: "Lovely neighbourhood",
	})
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if review.ReviewerID != user.ID {
		t.Errorf("expected reviewer %s, got %s", user.ID, review.ReviewerID)
	}

	// One review per user per property
	_, err = svc.AddReview(context.Background(), user.ID, &models.CreateReviewRequest{
		PropertyID:  property.ID,
		Description: "Second thoughts",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("duplicate review: expected validation error, got %v", err)
	}
}

func TestDeleteReviewAuthorization(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewReviewService(repo)

	agent := seedUser(t, db, models.RoleAgent)
	author := seedUser(t, db, models.RoleUser)
	stranger := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)
	property := seedProperty(t, db, agent.ID, models.VerificationVerified, 100000, 150000)

	review, err := svc.AddReview(context.Background(), author.ID, &models.CreateReviewRequest{
		PropertyID:  property.ID,
		Description: "Nice place",
	})
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}

	if err := svc.DeleteReview(context.Background(), stranger.ID, models.RoleUser, review.ID); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("stranger delete: expected authorization error, got %v", err)
	}

	if err := svc.DeleteReview(context.Background(), admin.ID, models.RoleAdmin, review.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}

func TestLatestReviewsLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewReviewService(repo)

	agent := seedUser(t, db, models.RoleAgent)
	property := seedProperty(t, db, agent.ID, models.VerificationVerified, 100000, 150000)

	for i := 0; i < 5; i++ {
		user := seedUser(t, db, models.RoleUser)
		if _, err := svc.AddReview(context.Background(), user.ID, &models.CreateReviewRequest{
			PropertyID:  property.ID,
			Description: "Review",
		}); err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
	}

	latest, err := svc.LatestReviews(context.Background())
	if err != nil {
		t.Fatalf("LatestReviews failed: %v", err)
	}
	if len(latest) != 3 {
		t.Errorf("expected 3 latest reviews, got %d", len(latest))
	}
}
