package handlers

import (
	"net/http"

	"estate-market/internal/auth"
	"estate-market/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStatistics retrieves the public platform rollup
// GET /api/statistics
func (h *DashboardHandler) GetStatistics(c *gin.Context) {
	stats, err := h.dashboardService.PlatformStatistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUserStats retrieves the caller's dashboard counters
// GET /api/dashboard/stats
func (h *DashboardHandler) GetUserStats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	role, _ := auth.GetUserRole(c)

	stats, err := h.dashboardService.UserStats(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
