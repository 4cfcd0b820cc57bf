package handlers

import (
	"net/http"
	"strconv"

	"estate-market/internal/auth"
	"estate-market/internal/models"
	"estate-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// ListProperties retrieves the public catalog
// GET /api/properties
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	filter := models.PropertyFilter{
		Location:     c.Query("location"),
		PropertyType: models.PropertyType(c.Query("property_type")),
		Page:         1,
		Limit:        12,
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if minStr := c.Query("min_price"); minStr != "" {
		if min, err := decimal.NewFromString(minStr); err == nil {
			filter.MinPrice = &min
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if max, err := decimal.NewFromString(maxStr); err == nil {
			filter.MaxPrice = &max
		}
	}

	page, err := h.propertyService.ListProperties(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListAdvertised retrieves the advertised carousel
// GET /api/properties/advertised
func (h *PropertyHandler) ListAdvertised(c *gin.Context) {
	properties, err := h.propertyService.ListAdvertised(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// GetProperty retrieves one listing
// GET /api/properties/:id
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid property id"})
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// ListMyProperties retrieves the agent's own listings
// GET /api/properties/mine
func (h *PropertyHandler) ListMyProperties(c *gin.Context) {
	agentID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	properties, err := h.propertyService.ListAgentProperties(c.Request.Context(), agentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// CreateProperty lists a new property
// POST /api/properties
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	agentID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), agentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// UpdateProperty edits a listing
// PUT /api/properties/:id
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	callerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	role, _ := auth.GetUserRole(c)

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid property id"})
		return
	}

	var req models.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), callerID, role, propertyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

// DeleteProperty removes a listing
// DELETE /api/properties/:id
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	callerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	role, _ := auth.GetUserRole(c)

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid property id"})
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), callerID, role, propertyID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}

// ListAllProperties retrieves every listing for moderation
// GET /api/admin/properties
func (h *PropertyHandler) ListAllProperties(c *gin.Context) {
	properties, err := h.propertyService.ListAllProperties(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, properties)
}

// VerifyProperty sets the moderation status of a listing
// PATCH /api/admin/properties/:id/verify
func (h *PropertyHandler) VerifyProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid property id"})
		return
	}

	var req struct {
		Status models.VerificationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	property, err := h.propertyService.SetVerification(c.Request.Context(), propertyID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property verification updated",
		"property": property,
	})
}

// AdvertiseProperty toggles the advertised flag of a verified listing
// PATCH /api/admin/properties/:id/advertise
func (h *PropertyHandler) AdvertiseProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid property id"})
		return
	}

	property, err := h.propertyService.ToggleAdvertisement(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}
