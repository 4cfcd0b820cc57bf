package handlers

import (
	"net/http"

	"estate-market/internal/auth"
	"estate-market/internal/models"
	"estate-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// AddReview records a review on a property
// POST /api/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	reviewerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), reviewerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added successfully",
		"review":  review,
	})
}

// LatestReviews retrieves the newest reviews site-wide
// GET /api/reviews/latest
func (h *ReviewHandler) LatestReviews(c *gin.Context) {
	reviews, err := h.reviewService.LatestReviews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// PropertyReviews retrieves reviews for one property
// GET /api/reviews/property/:id
func (h *ReviewHandler) PropertyReviews(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid property id"})
		return
	}

	reviews, err := h.reviewService.PropertyReviews(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// MyReviews retrieves the caller's own reviews
// GET /api/reviews/mine
func (h *ReviewHandler) MyReviews(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	reviews, err := h.reviewService.UserReviews(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// AllReviews retrieves every review for moderation
// GET /api/admin/reviews
func (h *ReviewHandler) AllReviews(c *gin.Context) {
	reviews, err := h.reviewService.AllReviews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// DeleteReview removes a review
// DELETE /api/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	callerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	role, _ := auth.GetUserRole(c)

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), callerID, role, reviewID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
