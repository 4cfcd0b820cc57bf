package services

import (
	"context"
	"testing"

	"estate-market/internal/apperr"
	"estate-market/internal/models"
	"estate-market/internal/repository"

	"github.com/google/uuid"
)

func TestUpdateRole(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewUserService(repo)

	admin := seedUser(t, db, models.RoleAdmin)
	target := seedUser(t, db, models.RoleUser)

	promoted, err := svc.UpdateRole(context.Background(), admin.ID, target.ID, models.RoleAgent)
	if err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if promoted.Role != models.RoleAgent {
		t.Errorf("expected agent role, got %s", promoted.Role)
	}

	_, err = svc.UpdateRole(context.Background(), admin.ID, target.ID, "superuser")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("invalid role: expected validation error, got %v", err)
	}

	_, err = svc.UpdateRole(context.Background(), admin.ID, admin.ID, models.RoleUser)
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("own role: expected authorization error, got %v", err)
	}
}

func TestMarkFraudRejectsListings(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewUserService(repo)

	admin := seedUser(t, db, models.RoleAdmin)
	agent := seedUser(t, db, models.RoleAgent)
	verified := seedProperty(t, db, agent.ID, models.VerificationVerified, 100000, 150000)
	pending := seedProperty(t, db, agent.ID, models.VerificationPending, 100000, 150000)

	flagged, err := svc.MarkFraud(context.Background(), admin.ID, agent.ID)
	if err != nil {
		t.Fatalf("MarkFraud failed: %v", err)
	}
	if !flagged.IsFraud {
		t.Error("expected fraud flag set")
	}

	// Every listing of the agent is pulled from the catalog
	for _, id := range []uuid.UUID{verified.ID, pending.ID} {
		var p models.Property
		if err := db.First(&p, "id = ?", id).Error; err != nil {
			t.Fatalf("failed to reload property: %v", err)
		}
		if p.VerificationStatus != models.VerificationRejected {
			t.Errorf("expected rejected listing, got %s", p.VerificationStatus)
		}
	}
}

func TestMarkFraudOnlyAgents(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewUserService(repo)

	admin := seedUser(t, db, models.RoleAdmin)
	user := seedUser(t, db, models.RoleUser)

	_, err := svc.MarkFraud(context.Background(), admin.ID, user.ID)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("non-agent: expected validation error, got %v", err)
	}

	_, err = svc.MarkFraud(context.Background(), admin.ID, admin.ID)
	if !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("self: expected authorization error, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := NewUserService(repo)

	admin := seedUser(t, db, models.RoleAdmin)
	target := seedUser(t, db, models.RoleUser)

	if err := svc.DeleteUser(context.Background(), admin.ID, admin.ID); !apperr.IsKind(err, apperr.KindAuthorization) {
		t.Errorf("self delete: expected authorization error, got %v", err)
	}

	if err := svc.DeleteUser(context.Background(), admin.ID, target.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("id = ?", target.ID).Count(&count)
	if count != 0 {
		t.Error("expected user removed")
	}
}
