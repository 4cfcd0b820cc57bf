package handlers

import (
	"io"
	"net/http"

	"estate-market/internal/auth"
	"estate-market/internal/models"
	"estate-market/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentIntent creates a processor payment intent for an accepted offer
// POST /api/payments/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req models.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	intent, err := h.paymentService.CreateIntent(c.Request.Context(), buyerID, req.OfferID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
	})
}

// CompletePurchase is the synchronous buyer settlement path
// PATCH /api/offers/:id/complete
func (h *PaymentHandler) CompletePurchase(c *gin.Context) {
	buyerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid offer id"})
		return
	}

	var req models.CompletePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	offer, err := h.paymentService.CompletePurchase(c.Request.Context(), buyerID, offerID, req.TransactionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment successful, property bought!",
		"offer":   offer,
	})
}

// Webhook receives signed payment processor events
// POST /api/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
