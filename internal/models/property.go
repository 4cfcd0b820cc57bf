package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeVilla     PropertyType = "villa"
	PropertyTypeOffice    PropertyType = "office"
	PropertyTypeLand      PropertyType = "land"
)

// Property represents a real-estate listing managed by an agent.
type Property struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string             `gorm:"size:255;not null" json:"title"`
	Location           string             `gorm:"size:255;not null;index" json:"location"`
	Image              string             `gorm:"size:500;not null" json:"image"`
	AgentID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"agent_id"`
	Agent              *User              `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	PriceMin           decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"price_min"`
	PriceMax           decimal.Decimal    `gorm:"type:decimal(15,2);not null" json:"price_max"`
	Description        string             `gorm:"type:text;not null" json:"description"`
	PropertyType       PropertyType       `gorm:"size:20;not null" json:"property_type"`
	Area               float64            `gorm:"not null" json:"area"`
	Bedrooms           int                `json:"bedrooms"`
	Bathrooms          int                `json:"bathrooms"`
	YearBuilt          int                `json:"year_built"`
	Features           string             `gorm:"type:text" json:"features"` // comma-separated
	VerificationStatus VerificationStatus `gorm:"size:20;not null;default:pending;index" json:"verification_status"`
	IsAdvertised       bool               `gorm:"default:false;index" json:"is_advertised"`
	IsSold             bool               `gorm:"default:false;index" json:"is_sold"`
	SoldToID           *uuid.UUID         `gorm:"type:uuid" json:"sold_to,omitempty"`
	SoldAmount         *decimal.Decimal   `gorm:"type:decimal(15,2)" json:"sold_amount,omitempty"`
	SoldDate           *time.Time         `json:"sold_date,omitempty"`
	TransactionID      *string            `gorm:"size:255" json:"transaction_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// TableName specifies the table name for Property model
func (Property) TableName() string {
	return "properties"
}

// BeforeSave swaps an inverted price range so min <= max always holds in storage.
func (p *Property) BeforeSave(tx *gorm.DB) error {
	if p.PriceMin.GreaterThan(p.PriceMax) {
		p.PriceMin, p.PriceMax = p.PriceMax, p.PriceMin
	}
	return nil
}

// IsOwner reports whether the given user is the listing agent.
func (p *Property) IsOwner(userID uuid.UUID) bool {
	return p.AgentID == userID
}

// CanReceiveOffer reports whether the amount falls inside the price range.
func (p *Property) CanReceiveOffer(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.PriceMin) && amount.LessThanOrEqual(p.PriceMax)
}

// FeatureList splits the stored feature string.
func (p *Property) FeatureList() []string {
	if p.Features == "" {
		return nil
	}
	parts := strings.Split(p.Features, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

type CreatePropertyRequest struct {
	Title        string          `json:"title" binding:"required"`
	Location     string          `json:"location" binding:"required"`
	Image        string          `json:"image" binding:"required"`
	PriceMin     decimal.Decimal `json:"price_min" binding:"required"`
	PriceMax     decimal.Decimal `json:"price_max" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	PropertyType PropertyType    `json:"property_type" binding:"required"`
	Area         float64         `json:"area" binding:"required"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	YearBuilt    int             `json:"year_built"`
	Features     []string        `json:"features"`
}

type UpdatePropertyRequest struct {
	Title        *string          `json:"title"`
	Location     *string          `json:"location"`
	Image        *string          `json:"image"`
	PriceMin     *decimal.Decimal `json:"price_min"`
	PriceMax     *decimal.Decimal `json:"price_max"`
	Description  *string          `json:"description"`
	PropertyType *PropertyType    `json:"property_type"`
	Area         *float64         `json:"area"`
	Bedrooms     *int             `json:"bedrooms"`
	Bathrooms    *int             `json:"bathrooms"`
	YearBuilt    *int             `json:"year_built"`
	Features     []string         `json:"features"`
}

type PropertyFilter struct {
	Location     string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	PropertyType PropertyType
	Status       VerificationStatus
	Page         int
	Limit        int
}
