package services

import (
	"context"
	"errors"
	"testing"

	"estate-market/internal/apperr"
	"estate-market/internal/models"
	"estate-market/internal/payments"
	"estate-market/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeProcessor stands in for the card processor so settlement can be
// exercised without network calls.
type fakeProcessor struct {
	lastAmountMinor int64
	lastCurrency    string
	intentErr       error

	event    *payments.Event
	parseErr error
}

func (f *fakeProcessor) CreateIntent(ctx context.Context, amountMinor int64, currency string, offerID string) (*payments.Intent, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	f.lastAmountMinor = amountMinor
	f.lastCurrency = currency
	return &payments.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (f *fakeProcessor) ParseWebhook(payload []byte, signature string) (*payments.Event, error) {
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.event, nil
}

// acceptedOffer seeds an agent, buyer, verified property and an accepted
// offer on it.
func acceptedOffer(t *testing.T, db *gorm.DB, repo *repository.Repository) (*models.Offer, *models.Property) {
	t.Helper()

	offerSvc := NewOfferService(repo)
	agent := seedUser(t, db, models.RoleAgent)
	buyer := seedUser(t, db, models.RoleUser)
	property := seedProperty(t, db, agent.ID, models.VerificationVerified, 100000, 150000)

	offer := makeOffer(t, offerSvc, buyer.ID, property.ID, 120000)
	accepted, err := offerSvc.DecideOffer(context.Background(), agent.ID, offer.ID, DecisionAccept)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	return accepted, property
}

func TestCreateIntentUsesMinorUnits(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	processor := &fakeProcessor{}
	svc := NewPaymentService(repo, processor, "usd")

	offer, _ := acceptedOffer(t, db, repo)

	intent, err := svc.CreateIntent(context.Background(), offer.BuyerID, offer.ID)
	if err != nil {
		t.Fatalf("CreateIntent failed: %v", err)
	}
	if intent.ClientSecret == "" {
		t.Error("expected a client secret")
	}
	if processor.lastAmountMinor != 12000000 {
		t.Errorf("expected 12000000 cents, got %d", processor.lastAmountMinor)
	}
	if processor.lastCurrency != "usd" {
		t.Errorf("expected usd, got %s", processor.lastCurrency)
	}
}

func TestCreateIntentPreconditions(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewPaymentService(repo, &fakeProcessor{}, "usd")

	offer, _ := acceptedOffer(t, db, repo)

	// Only the buyer can pay
	stranger := seedUser(t, db, models.RoleUser)
	_, err := svc.CreateIntent(context.Background(), stranger.ID, offer.ID)
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("stranger: expected authorization error, got %v", err)
	}

	// Missing offer
	_, err = svc.CreateIntent(context.Background(), offer.BuyerID, uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing offer: expected not found, got %v", err)
	}

	// Pending offer cannot be paid
	db.Model(&models.Offer{}).Where("id = ?", offer.ID).Update("status", models.OfferStatusPending)
	_, err = svc.CreateIntent(context.Background(), offer.BuyerID, offer.ID)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("pending offer: expected validation error, got %v", err)
	}
}

func TestCreateIntentProcessorFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	processor := &fakeProcessor{intentErr: errors.New("processor unavailable")}
	svc := NewPaymentService(repo, processor, "usd")

	offer, _ := acceptedOffer(t, db, repo)

	_, err := svc.CreateIntent(context.Background(), offer.BuyerID, offer.ID)
	if !apperr.IsKind(err, apperr.KindExternal) {
		t.Errorf("expected external error, got %v", err)
	}
}

func TestCompletePurchaseSettles(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewPaymentService(repo, &fakeProcessor{}, "usd")

	offer, property := acceptedOffer(t, db, repo)

	settled, err := svc.CompletePurchase(context.Background(), offer.BuyerID, offer.ID, "tx_1")
	if err != nil {
		t.Fatalf("CompletePurchase failed: %v", err)
	}
	if settled.Status != models.OfferStatusBought {
		t.Errorf("expected bought, got %s", settled.Status)
	}
	if settled.PaymentStatus != models.PaymentStatusCompleted {
		t.Errorf("expected completed, got %s", settled.PaymentStatus)
	}
	if settled.TransactionID == nil || *settled.TransactionID != "tx_1" {
		t.Errorf("expected transaction id tx_1, got %v", settled.TransactionID)
	}

	var sold models.Property
	if err := db.First(&sold, "id = ?", property.ID).Error; err != nil {
		t.Fatalf("failed to reload property: %v", err)
	}
	if !sold.IsSold {
		t.Error("expected property marked sold")
	}
	if sold.SoldToID == nil || *sold.SoldToID != offer.BuyerID {
		t.Errorf("expected sold to buyer %s, got %v", offer.BuyerID, sold.SoldToID)
	}
	if sold.SoldAmount == nil || !sold.SoldAmount.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("expected sold amount 120000, got %v", sold.SoldAmount)
	}
}

func TestCompletePurchaseReplayIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewPaymentService(repo, &fakeProcessor{}, "usd")

	offer, property := acceptedOffer(t, db, repo)

	first, err := svc.CompletePurchase(context.Background(), offer.BuyerID, offer.ID, "tx_1")
	if err != nil {
		t.Fatalf("first settlement failed: %v", err)
	}

	replay, err := svc.CompletePurchase(context.Background(), offer.BuyerID, offer.ID, "tx_1")
	if err != nil {
		t.Fatalf("replay should succeed: %v", err)
	}
	if replay.Status != first.Status || replay.PaymentStatus != first.PaymentStatus {
		t.Errorf("replay changed state: %s/%s vs %s/%s",
			replay.Status, replay.PaymentStatus, first.Status, first.PaymentStatus)
	}
	if replay.TransactionID == nil || *replay.TransactionID != "tx_1" {
		t.Errorf("replay overwrote transaction id: %v", replay.TransactionID)
	}

	var sold models.Property
	if err := db.First(&sold, "id = ?", property.ID).Error; err != nil {
		t.Fatalf("failed to reload property: %v", err)
	}
	if sold.TransactionID == nil || *sold.TransactionID != "tx_1" {
		t.Errorf("replay touched property transaction id: %v", sold.TransactionID)
	}
}

func TestCompletePurchaseRequiresAccepted(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	offerSvc := NewOfferService(repo)
	svc := NewPaymentService(repo, &fakeProcessor{}, "usd")

	agent := seedUser(t, db, models.RoleAgent)
	buyer := seedUser(t, db, models.RoleUser)
	property := seedProperty(t, db, agent.ID, models.VerificationVerified, 100000, 150000)
	offer := makeOffer(t, offerSvc, buyer.ID, property.ID, 120000)

	_, err := svc.CompletePurchase(context.Background(), buyer.ID, offer.ID, "tx_1")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("pending offer: expected validation error, got %v", err)
	}

	// Another buyer cannot settle someone else's offer
	stranger := seedUser(t, db, models.RoleUser)
	_, err = svc.CompletePurchase(context.Background(), stranger.ID, offer.ID, "tx_1")
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("stranger: expected authorization error, got %v", err)
	}
}

func TestWebhookSignatureFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	processor := &fakeProcessor{parseErr: errors.New("bad signature")}
	svc := NewPaymentService(repo, processor, "usd")

	err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestWebhookPaymentSucceeded(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	processor := &fakeProcessor{}
	svc := NewPaymentService(repo, processor, "usd")

	offer, property := acceptedOffer(t, db, repo)
	processor.event = &payments.Event{
		Type:          payments.EventPaymentSucceeded,
		OfferID:       offer.ID.String(),
		TransactionID: "pi_hook",
	}

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook failed: %v", err)
	}

	var settled models.Offer
	if err := db.First(&settled, "id = ?", offer.ID).Error; err != nil {
		t.Fatalf("failed to reload offer: %v", err)
	}
	if settled.Status != models.OfferStatusBought || settled.PaymentStatus != models.PaymentStatusCompleted {
		t.Errorf("expected bought/completed, got %s/%s", settled.Status, settled.PaymentStatus)
	}

	var sold models.Property
	if err := db.First(&sold, "id = ?", property.ID).Error; err != nil {
		t.Fatalf("failed to reload property: %v", err)
	}
	if !sold.IsSold {
		t.Error("expected property marked sold")
	}

	// Duplicate delivery is acknowledged without changes
	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Errorf("duplicate delivery should succeed: %v", err)
	}
}

func TestWebhookPaymentFailed(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	processor := &fakeProcessor{}
	svc := NewPaymentService(repo, processor, "usd")

	offer, _ := acceptedOffer(t, db, repo)
	processor.event = &payments.Event{
		Type:    payments.EventPaymentFailed,
		OfferID: offer.ID.String(),
	}

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook failed: %v", err)
	}

	var failed models.Offer
	if err := db.First(&failed, "id = ?", offer.ID).Error; err != nil {
		t.Fatalf("failed to reload offer: %v", err)
	}
	if failed.Status != models.OfferStatusAccepted {
		t.Errorf("failed payment must keep offer accepted, got %s", failed.Status)
	}
	if failed.PaymentStatus != models.PaymentStatusFailed {
		t.Errorf("expected payment status failed, got %s", failed.PaymentStatus)
	}

	// The buyer can retry and settle after a failure
	settled, err := svc.CompletePurchase(context.Background(), offer.BuyerID, offer.ID, "tx_retry")
	if err != nil {
		t.Fatalf("retry settlement failed: %v", err)
	}
	if settled.Status != models.OfferStatusBought {
		t.Errorf("expected bought after retry, got %s", settled.Status)
	}

	// A late failure event after settlement is acknowledged, not applied
	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Errorf("late failure event should be a no-op: %v", err)
	}
	var final models.Offer
	if err := db.First(&final, "id = ?", offer.ID).Error; err != nil {
		t.Fatalf("failed to reload offer: %v", err)
	}
	if final.PaymentStatus != models.PaymentStatusCompleted {
		t.Errorf("late failure event changed payment status to %s", final.PaymentStatus)
	}
}

func TestWebhookIgnoredEvent(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	processor := &fakeProcessor{event: &payments.Event{Type: payments.EventIgnored}}
	svc := NewPaymentService(repo, processor, "usd")

	if err := svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Errorf("ignored event should succeed: %v", err)
	}
}
