package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"estate-market/internal/apperr"
	"estate-market/internal/models"
	"estate-market/internal/payments"
	"estate-market/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var minorUnitFactor = decimal.NewFromInt(100)

// PaymentService drives payment intents and settlement. The synchronous
// buyer "complete purchase" path and the asynchronous webhook path both
// converge on the same settlement operation.
type PaymentService struct {
	repo      *repository.Repository
	processor payments.Processor
	currency  string
}

func NewPaymentService(repo *repository.Repository, processor payments.Processor, currency string) *PaymentService {
	return &PaymentService{
		repo:      repo,
		processor: processor,
		currency:  currency,
	}
}

// CreateIntent asks the processor for a payment intent covering an accepted
// offer. The stored amount is in major units; only the outbound call uses
// the processor's minor units.
func (s *PaymentService) CreateIntent(
	ctx context.Context,
	buyerID uuid.UUID,
	offerID uuid.UUID,
) (*payments.Intent, error) {
	offer, err := s.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Offer")
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	if offer.BuyerID != buyerID {
		return nil, apperr.Authorization("You are not authorized to make payment for this offer")
	}

	if offer.Status != models.OfferStatusAccepted {
		return nil, apperr.Validation("Payment can only be made for accepted offers")
	}

	if offer.PaymentStatus == models.PaymentStatusCompleted {
		return nil, apperr.Validation("Payment has already been completed")
	}

	amountMinor := offer.Amount.Mul(minorUnitFactor).Round(0).IntPart()

	intent, err := s.processor.CreateIntent(ctx, amountMinor, s.currency, offer.ID.String())
	if err != nil {
		return nil, apperr.External("Failed to create payment intent", err)
	}

	return intent, nil
}

// CompletePurchase is the buyer-initiated settlement path. Admins never
// settle on a buyer's behalf.
func (s *PaymentService) CompletePurchase(
	ctx context.Context,
	buyerID uuid.UUID,
	offerID uuid.UUID,
	transactionID string,
) (*models.Offer, error) {
	offer, err := s.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Offer")
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	if offer.BuyerID != buyerID {
		return nil, apperr.Authorization("You can only complete payment for your own offers")
	}

	return s.settle(ctx, offerID, transactionID)
}

// HandleWebhook processes a verified payment processor event. The payload
// signature is checked before anything in it is trusted.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.processor.ParseWebhook(payload, signature)
	if err != nil {
		return apperr.Validation("Webhook signature verification failed")
	}

	switch event.Type {
	case payments.EventIgnored:
		return nil

	case payments.EventPaymentSucceeded:
		offerID, err := uuid.Parse(event.OfferID)
		if err != nil {
			return apperr.Validation("Webhook event carries no valid offer id")
		}
		if _, err := s.settle(ctx, offerID, event.TransactionID); err != nil {
			return err
		}
		log.Printf("Payment for offer %s completed via webhook", offerID)
		return nil

	case payments.EventPaymentFailed:
		offerID, err := uuid.Parse(event.OfferID)
		if err != nil {
			return apperr.Validation("Webhook event carries no valid offer id")
		}
		err = s.repo.MarkPaymentFailed(ctx, offerID)
		if err != nil && !errors.Is(err, repository.ErrNotSettleable) {
			// Re-delivered failure events for an offer no longer in the
			// accepted+pending state are acknowledged, not retried.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Offer")
			}
			return fmt.Errorf("failed to mark payment failed: %w", err)
		}
		log.Printf("Payment for offer %s failed", offerID)
		return nil

	default:
		return nil
	}
}

// settle finalizes the sale: offer becomes bought/completed and the
// property is marked sold, atomically. Replays are no-op successes.
func (s *PaymentService) settle(ctx context.Context, offerID uuid.UUID, transactionID string) (*models.Offer, error) {
	offer, err := s.repo.SettleOffer(ctx, offerID, transactionID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperr.NotFound("Offer")
		case errors.Is(err, repository.ErrNotSettleable):
			return nil, apperr.Validation("Only accepted offers with pending payment can be settled")
		default:
			return nil, fmt.Errorf("failed to settle offer: %w", err)
		}
	}
	return offer, nil
}
