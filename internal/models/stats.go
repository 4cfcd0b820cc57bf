package models

import "github.com/shopspring/decimal"

// PlatformStatistics is the public rollup shown on the homepage.
type PlatformStatistics struct {
	TotalProperties      int64           `json:"total_properties"`
	VerifiedProperties   int64           `json:"verified_properties"`
	AdvertisedProperties int64           `json:"advertised_properties"`
	TotalUsers           int64           `json:"total_users"`
	TotalAgents          int64           `json:"total_agents"`
	TotalAdmins          int64           `json:"total_admins"`
	TotalWishlistItems   int64           `json:"total_wishlist_items"`
	TotalReviews         int64           `json:"total_reviews"`
	TotalSoldProperties  int64           `json:"total_sold_properties"`
	TotalSalesAmount     decimal.Decimal `json:"total_sales_amount"`
	AveragePropertyPrice decimal.Decimal `json:"average_property_price"`
}

// DashboardStats is the per-user dashboard summary.
type DashboardStats struct {
	WishlistCount   int64 `json:"wishlist_count"`
	ReviewsCount    int64 `json:"reviews_count"`
	PropertiesCount int64 `json:"properties_count"`
}
