package repository

import (
	"context"
	"time"

	"estate-market/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOffer inserts a new offer after verifying the buyer holds no other
// pending offer on the same property. The check and the insert run in one
// transaction so concurrent submissions cannot both pass the guard.
func (r *Repository) CreateOffer(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Offer{}).
			Where("property_id = ? AND buyer_id = ? AND status = ?",
				offer.PropertyID, offer.BuyerID, models.OfferStatusPending).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrDuplicatePending
		}

		if err := tx.Create(offer).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicatePending
			}
			return err
		}

		return nil
	})
}

// GetOfferByID retrieves an offer by ID
func (r *Repository) GetOfferByID(ctx context.Context, offerID uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).Where("id = ?", offerID).First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListOffersByBuyer retrieves all offers made by a buyer, newest first
func (r *Repository) ListOffersByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*models.Offer, error) {
	var offers []*models.Offer
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// ListOffersByAgent retrieves all offers received by an agent, newest first
func (r *Repository) ListOffersByAgent(ctx context.Context, agentID uuid.UUID) ([]*models.Offer, error) {
	var offers []*models.Offer
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// ListSoldOffersByAgent retrieves an agent's completed sales, newest first
func (r *Repository) ListSoldOffersByAgent(ctx context.Context, agentID uuid.UUID) ([]*models.Offer, error) {
	var offers []*models.Offer
	err := r.db.WithContext(ctx).
		Where("agent_id = ? AND status = ?", agentID, models.OfferStatusBought).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// AcceptOffer marks an offer accepted and rejects every other pending offer
// on the same property in a single transaction. The accept itself is a
// conditional update on the current status, so two concurrent accepts for
// the same property cannot both win.
func (r *Repository) AcceptOffer(ctx context.Context, offerID uuid.UUID) (*models.Offer, error) {
	var accepted *models.Offer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offer models.Offer
		if err := tx.Where("id = ?", offerID).First(&offer).Error; err != nil {
			return err
		}

		var property models.Property
		err := tx.Select("id", "is_sold").
			Where("id = ?", offer.PropertyID).
			First(&property).Error
		if err != nil {
			return err
		}
		if property.IsSold {
			return ErrPropertySold
		}

		res := tx.Model(&models.Offer{}).
			Where("id = ? AND status = ?", offerID, models.OfferStatusPending).
			Update("status", models.OfferStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		err = tx.Model(&models.Offer{}).
			Where("property_id = ? AND id <> ? AND status = ?",
				offer.PropertyID, offerID, models.OfferStatusPending).
			Update("status", models.OfferStatusRejected).Error
		if err != nil {
			return err
		}

		if err := tx.Where("id = ?", offerID).First(&offer).Error; err != nil {
			return err
		}
		accepted = &offer
		return nil
	})

	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// RejectOffer marks a pending offer rejected. No cascade.
func (r *Repository) RejectOffer(ctx context.Context, offerID uuid.UUID) (*models.Offer, error) {
	res := r.db.WithContext(ctx).Model(&models.Offer{}).
		Where("id = ? AND status = ?", offerID, models.OfferStatusPending).
		Update("status", models.OfferStatusRejected)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotPending
	}

	return r.GetOfferByID(ctx, offerID)
}

// SettleOffer finalizes an accepted offer after payment confirmation.
// Offer and property are updated in the same transaction. Replaying a
// confirmation for an already-settled offer is a no-op success, so
// duplicate webhook delivery never double-applies the side effects.
func (r *Repository) SettleOffer(ctx context.Context, offerID uuid.UUID, transactionID string) (*models.Offer, error) {
	var settled *models.Offer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var offer models.Offer
		if err := tx.Where("id = ?", offerID).First(&offer).Error; err != nil {
			return err
		}

		if offer.Status == models.OfferStatusBought && offer.PaymentStatus == models.PaymentStatusCompleted {
			settled = &offer
			return nil
		}

		res := tx.Model(&models.Offer{}).
			Where("id = ? AND status = ? AND payment_status IN ?",
				offerID, models.OfferStatusAccepted,
				[]models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusFailed}).
			Updates(map[string]interface{}{
				"status":         models.OfferStatusBought,
				"payment_status": models.PaymentStatusCompleted,
				"transaction_id": transactionID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotSettleable
		}

		err := tx.Model(&models.Property{}).
			Where("id = ? AND is_sold = ?", offer.PropertyID, false).
			Updates(map[string]interface{}{
				"is_sold":        true,
				"sold_to_id":     offer.BuyerID,
				"sold_amount":    offer.Amount,
				"sold_date":      time.Now(),
				"transaction_id": transactionID,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("id = ?", offerID).First(&offer).Error; err != nil {
			return err
		}
		settled = &offer
		return nil
	})

	if err != nil {
		return nil, err
	}
	return settled, nil
}

// MarkPaymentFailed records a failed payment attempt. The offer stays
// accepted so the buyer can retry with a new settlement.
func (r *Repository) MarkPaymentFailed(ctx context.Context, offerID uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Offer{}).
		Where("id = ? AND status = ? AND payment_status = ?",
			offerID, models.OfferStatusAccepted, models.PaymentStatusPending).
		Update("payment_status", models.PaymentStatusFailed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotSettleable
	}
	return nil
}
