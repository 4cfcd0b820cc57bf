package services

import (
	"context"
	"fmt"

	"estate-market/internal/models"
	"estate-market/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardService produces read-only rollups. Nothing here mutates
// workflow state.
type DashboardService struct {
	repo *repository.Repository
}

func NewDashboardService(repo *repository.Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

// PlatformStatistics computes the public homepage rollup
func (s *DashboardService) PlatformStatistics(ctx context.Context) (*models.PlatformStatistics, error) {
	db := s.repo.DB().WithContext(ctx)
	stats := &models.PlatformStatistics{
		TotalSalesAmount:     decimal.Zero,
		AveragePropertyPrice: decimal.Zero,
	}

	counts := []struct {
		dest  *int64
		model interface{}
		query string
		args  []interface{}
	}{
		{&stats.TotalProperties, &models.Property{}, "", nil},
		{&stats.VerifiedProperties, &models.Property{}, "verification_status = ?", []interface{}{models.VerificationVerified}},
		{&stats.AdvertisedProperties, &models.Property{}, "is_advertised = ?", []interface{}{true}},
		{&stats.TotalUsers, &models.User{}, "", nil},
		{&stats.TotalAgents, &models.User{}, "role = ?", []interface{}{models.RoleAgent}},
		{&stats.TotalAdmins, &models.User{}, "role = ?", []interface{}{models.RoleAdmin}},
		{&stats.TotalWishlistItems, &models.Wishlist{}, "", nil},
		{&stats.TotalReviews, &models.Review{}, "", nil},
		{&stats.TotalSoldProperties, &models.Offer{}, "status = ?", []interface{}{models.OfferStatusBought}},
	}

	for _, c := range counts {
		q := db.Model(c.model)
		if c.query != "" {
			q = q.Where(c.query, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	var soldOffers []*models.Offer
	err := db.Where("status = ?", models.OfferStatusBought).Find(&soldOffers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load sold offers: %w", err)
	}
	for _, offer := range soldOffers {
		stats.TotalSalesAmount = stats.TotalSalesAmount.Add(offer.Amount)
	}

	var verified []*models.Property
	err = db.Where("verification_status = ?", models.VerificationVerified).Find(&verified).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load verified properties: %w", err)
	}
	if len(verified) > 0 {
		total := decimal.Zero
		two := decimal.NewFromInt(2)
		for _, p := range verified {
			total = total.Add(p.PriceMin.Add(p.PriceMax).Div(two))
		}
		stats.AveragePropertyPrice = total.Div(decimal.NewFromInt(int64(len(verified)))).Round(2)
	}

	return stats, nil
}

// UserStats computes the per-user dashboard counters
func (s *DashboardService) UserStats(ctx context.Context, userID uuid.UUID, role models.UserRole) (*models.DashboardStats, error) {
	db := s.repo.DB().WithContext(ctx)
	stats := &models.DashboardStats{}

	err := db.Model(&models.Wishlist{}).Where("user_id = ?", userID).Count(&stats.WishlistCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count wishlist: %w", err)
	}

	err = db.Model(&models.Review{}).Where("reviewer_id = ?", userID).Count(&stats.ReviewsCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	switch role {
	case models.RoleAdmin:
		err = db.Model(&models.Property{}).Count(&stats.PropertiesCount).Error
	case models.RoleAgent:
		err = db.Model(&models.Property{}).Where("agent_id = ?", userID).Count(&stats.PropertiesCount).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	return stats, nil
}
