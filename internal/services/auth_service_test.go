package services

import (
	"context"
	"errors"
	"testing"

	"estate-market/internal/apperr"
	"estate-market/internal/auth"
	"estate-market/internal/models"
	"estate-market/internal/repository"
)

type fakeVerifier struct {
	identity *auth.Identity
	err      error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*auth.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func newAuthService(t *testing.T, repo *repository.Repository, verifier auth.IdentityVerifier) *AuthService {
	t.Helper()
	auth.InitJWT("test-secret")
	return NewAuthService(repo, verifier)
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := newAuthService(t, repo, &fakeVerifier{})

	result, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Alex",
		Email:    "Alex@Example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.User.Email != "alex@example.com" {
		t.Errorf("email must be stored lowercase, got %s", result.User.Email)
	}
	if result.User.Role != models.RoleUser {
		t.Errorf("new accounts start as user, got %s", result.User.Role)
	}

	// Duplicate email
	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Alex Again",
		Email:    "alex@example.com",
		Password: "hunter22",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("duplicate email: expected validation error, got %v", err)
	}

	// Login with the right password
	login, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alex@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" {
		t.Error("expected a token")
	}

	// Wrong password and unknown email both produce the same message
	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alex@example.com",
		Password: "wrong",
	})
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("wrong password: expected authentication error, got %v", err)
	}
	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("unknown email: expected authentication error, got %v", err)
	}
}

func TestGoogleLoginCreatesAndLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	verifier := &fakeVerifier{identity: &auth.Identity{
		Subject:       "google-sub-1",
		Email:         "casey@example.com",
		Name:          "Casey",
		Picture:       "https://example.com/casey.png",
		EmailVerified: true,
	}}
	svc := newAuthService(t, repo, verifier)

	result, err := svc.GoogleLogin(context.Background(), &models.GoogleLoginRequest{Token: "idtoken"})
	if err != nil {
		t.Fatalf("GoogleLogin failed: %v", err)
	}
	if result.User.AuthProvider != models.AuthProviderGoogle {
		t.Errorf("expected google provider, got %s", result.User.AuthProvider)
	}
	if !result.User.IsEmailVerified {
		t.Error("expected verified email")
	}

	// A second login finds the same account
	again, err := svc.GoogleLogin(context.Background(), &models.GoogleLoginRequest{Token: "idtoken"})
	if err != nil {
		t.Fatalf("second GoogleLogin failed: %v", err)
	}
	if again.User.ID != result.User.ID {
		t.Errorf("expected same account, got %s and %s", result.User.ID, again.User.ID)
	}

	// A bad token is rejected
	verifier.err = errors.New("token expired")
	_, err = svc.GoogleLogin(context.Background(), &models.GoogleLoginRequest{Token: "bad"})
	if !apperr.IsKind(err, apperr.KindAuthentication) {
		t.Errorf("expected authentication error, got %v", err)
	}
}

func TestGoogleLoginNameFallsBackToEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	verifier := &fakeVerifier{identity: &auth.Identity{
		Subject: "google-sub-2",
		Email:   "quinn@example.com",
	}}
	svc := newAuthService(t, repo, verifier)

	result, err := svc.GoogleLogin(context.Background(), &models.GoogleLoginRequest{Token: "idtoken"})
	if err != nil {
		t.Fatalf("GoogleLogin failed: %v", err)
	}
	if result.User.Name != "quinn" {
		t.Errorf("expected name derived from email, got %q", result.User.Name)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewRepository(db)
	svc := newAuthService(t, repo, &fakeVerifier{})

	user := seedUser(t, db, models.RoleUser)

	name := "Renamed"
	image := "https://example.com/new.png"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &models.UpdateProfileRequest{
		Name:  &name,
		Image: &image,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected renamed user, got %q", updated.Name)
	}
	if updated.Image == nil || *updated.Image != image {
		t.Errorf("expected updated image, got %v", updated.Image)
	}
}
