package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"estate-market/internal/apperr"
	"estate-market/internal/models"
	"estate-market/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

type OfferService struct {
	repo *repository.Repository
}

func NewOfferService(repo *repository.Repository) *OfferService {
	return &OfferService{repo: repo}
}

// CreateOffer validates and records a buyer's offer on a property.
// Every precondition fails before anything is written.
func (s *OfferService) CreateOffer(
	ctx context.Context,
	buyerID uuid.UUID,
	req *models.CreateOfferRequest,
) (*models.Offer, error) {
	property, err := s.repo.GetPropertyByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property")
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	if property.VerificationStatus != models.VerificationVerified {
		return nil, apperr.Validation("Cannot make an offer on an unverified property")
	}

	if property.IsSold {
		return nil, apperr.Validation("Property is already sold")
	}

	if !property.CanReceiveOffer(req.Amount) {
		return nil, apperr.Validation("Offer amount must be between %s and %s",
			property.PriceMin.String(), property.PriceMax.String())
	}

	if property.AgentID == buyerID {
		return nil, apperr.Validation("Cannot make an offer on your own property")
	}

	offer := &models.Offer{
		ID:               uuid.New(),
		PropertyID:       property.ID,
		BuyerID:          buyerID,
		AgentID:          property.AgentID,
		PropertyTitle:    property.Title,
		PropertyLocation: property.Location,
		PropertyImage:    property.Image,
		Amount:           req.Amount,
		BuyingDate:       req.BuyingDate,
		Status:           models.OfferStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
	}

	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		if errors.Is(err, repository.ErrDuplicatePending) {
			return nil, apperr.Conflict("You already have a pending offer for this property")
		}
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	log.Printf("Offer %s created on property %s by buyer %s", offer.ID, property.ID, buyerID)

	return offer, nil
}

// DecideOffer applies an agent's accept or reject decision to a pending
// offer. Accepting cascades a reject to every sibling pending offer on the
// same property in the same transaction.
func (s *OfferService) DecideOffer(
	ctx context.Context,
	agentID uuid.UUID,
	offerID uuid.UUID,
	decision Decision,
) (*models.Offer, error) {
	offer, err := s.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Offer")
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	if offer.AgentID != agentID {
		return nil, apperr.Authorization("You can only decide offers for your own properties")
	}

	if err := s.checkFraudGate(ctx, agentID); err != nil {
		return nil, err
	}

	var decided *models.Offer
	switch decision {
	case DecisionAccept:
		decided, err = s.repo.AcceptOffer(ctx, offerID)
	case DecisionReject:
		decided, err = s.repo.RejectOffer(ctx, offerID)
	default:
		return nil, apperr.Validation("Decision must be accept or reject")
	}

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotPending):
			return nil, apperr.Validation("Only pending offers can be decided")
		case errors.Is(err, repository.ErrPropertySold):
			return nil, apperr.Validation("Property is already sold")
		default:
			return nil, fmt.Errorf("failed to %s offer: %w", decision, err)
		}
	}

	log.Printf("Offer %s %sed by agent %s", offerID, decision, agentID)

	return decided, nil
}

// GetOffer retrieves an offer visible to the caller: the buyer, the agent,
// or an admin.
func (s *OfferService) GetOffer(
	ctx context.Context,
	callerID uuid.UUID,
	callerRole models.UserRole,
	offerID uuid.UUID,
) (*models.Offer, error) {
	offer, err := s.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Offer")
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	if offer.BuyerID != callerID && offer.AgentID != callerID && callerRole != models.RoleAdmin {
		return nil, apperr.Authorization("You cannot view this offer")
	}

	return offer, nil
}

// ListBuyerOffers retrieves the caller's own offers
func (s *OfferService) ListBuyerOffers(ctx context.Context, buyerID uuid.UUID) ([]*models.Offer, error) {
	return s.repo.ListOffersByBuyer(ctx, buyerID)
}

// ListAgentOffers retrieves offers received on the agent's listings
func (s *OfferService) ListAgentOffers(ctx context.Context, agentID uuid.UUID) ([]*models.Offer, error) {
	return s.repo.ListOffersByAgent(ctx, agentID)
}

// SoldSummary is an agent's completed sales with their total.
type SoldSummary struct {
	SoldProperties []*models.Offer `json:"sold_properties"`
	TotalSold      decimal.Decimal `json:"total_sold"`
}

// GetSoldSummary retrieves an agent's completed sales rollup
func (s *OfferService) GetSoldSummary(ctx context.Context, agentID uuid.UUID) (*SoldSummary, error) {
	offers, err := s.repo.ListSoldOffersByAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sold offers: %w", err)
	}

	total := decimal.Zero
	for _, offer := range offers {
		total = total.Add(offer.Amount)
	}

	return &SoldSummary{SoldProperties: offers, TotalSold: total}, nil
}

// checkFraudGate denies agent mutating actions for agents flagged as fraud.
func (s *OfferService) checkFraudGate(ctx context.Context, agentID uuid.UUID) error {
	agent, err := s.repo.GetUserByID(ctx, agentID)
	if err != nil {
		return fmt.Errorf("failed to load agent: %w", err)
	}
	if agent.IsFraud {
		return apperr.Authorization("Your account has been flagged and cannot perform this action")
	}
	return nil
}
