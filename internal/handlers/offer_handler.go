package handlers

import (
	"net/http"

	"estate-market/internal/auth"
	"estate-market/internal/models"
	"estate-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	offerService *services.OfferService
}

func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// CreateOffer submits an offer on a property
// POST /api/offers
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req models.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), buyerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer submitted successfully",
		"offer":   offer,
	})
}

// GetOffer retrieves a single offer
// GET /api/offers/:id
func (h *OfferHandler) GetOffer(c *gin.Context) {
	callerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	role, _ := auth.GetUserRole(c)

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid offer id"})
		return
	}

	offer, err := h.offerService.GetOffer(c.Request.Context(), callerID, role, offerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, offer)
}

// ListMyOffers retrieves the caller's offers as a buyer
// GET /api/offers
func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	offers, err := h.offerService.ListBuyerOffers(c.Request.Context(), buyerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// ListReceivedOffers retrieves offers on the agent's listings
// GET /api/offers/received
func (h *OfferHandler) ListReceivedOffers(c *gin.Context) {
	agentID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	offers, err := h.offerService.ListAgentOffers(c.Request.Context(), agentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, offers)
}

// AcceptOffer accepts a pending offer, rejecting its siblings
// PATCH /api/offers/:id/accept
func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	h.decide(c, services.DecisionAccept, "Offer accepted successfully")
}

// RejectOffer rejects a pending offer
// PATCH /api/offers/:id/reject
func (h *OfferHandler) RejectOffer(c *gin.Context) {
	h.decide(c, services.DecisionReject, "Offer rejected successfully")
}

func (h *OfferHandler) decide(c *gin.Context, decision services.Decision, message string) {
	agentID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid offer id"})
		return
	}

	offer, err := h.offerService.DecideOffer(c.Request.Context(), agentID, offerID, decision)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"offer":   offer,
	})
}

// GetSoldSummary retrieves the agent's completed sales rollup
// GET /api/offers/sold
func (h *OfferHandler) GetSoldSummary(c *gin.Context) {
	agentID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	summary, err := h.offerService.GetSoldSummary(c.Request.Context(), agentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
