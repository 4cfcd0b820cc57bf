package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
	OfferStatusBought   OfferStatus = "bought"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Offer represents a buyer's proposal to purchase a property.
//
// Property title, location and image are captured at creation time so the
// offer remains displayable even if the listing changes afterwards.
type Offer struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"property_id"`
	Property         *Property       `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	BuyerID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"buyer_id"`
	Buyer            *User           `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	AgentID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"agent_id"`
	Agent            *User           `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	PropertyTitle    string          `gorm:"size:255;not null" json:"property_title"`
	PropertyLocation string          `gorm:"size:255;not null" json:"property_location"`
	PropertyImage    string          `gorm:"size:500" json:"property_image"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BuyingDate       time.Time       `gorm:"not null" json:"buying_date"`
	Status           OfferStatus     `gorm:"size:20;not null;default:pending;index" json:"status"`
	PaymentStatus    PaymentStatus   `gorm:"size:20;not null;default:pending;index" json:"payment_status"`
	TransactionID    *string         `gorm:"size:255" json:"transaction_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Offer model
func (Offer) TableName() string {
	return "offers"
}

type CreateOfferRequest struct {
	PropertyID uuid.UUID       `json:"property_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	BuyingDate time.Time       `json:"buying_date" binding:"required"`
}

type CompletePurchaseRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

type CreatePaymentIntentRequest struct {
	OfferID uuid.UUID `json:"offer_id" binding:"required"`
}
