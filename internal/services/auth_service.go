package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"estate-market/internal/apperr"
	"estate-market/internal/auth"
	"estate-market/internal/models"
	"estate-market/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and federated sign-in.
type AuthService struct {
	repo     *repository.Repository
	verifier auth.IdentityVerifier
}

func NewAuthService(repo *repository.Repository, verifier auth.IdentityVerifier) *AuthService {
	return &AuthService{repo: repo, verifier: verifier}
}

// AuthResult is a signed token together with the authenticated user.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an email/password account
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hash)
	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: &hashStr,
		Image:        req.Image,
		Role:         models.RoleUser,
		AuthProvider: models.AuthProviderEmail,
		LastLogin:    time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Validation("User already exists with this email")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

// Login authenticates an email/password account
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("Invalid email or password")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, apperr.Authentication("Invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.Authentication("Invalid email or password")
	}

	user.LastLogin = time.Now()
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		log.Printf("Warning: failed to record last login for %s: %v", user.ID, err)
	}

	return s.issueToken(user)
}

// GoogleLogin verifies a Google ID token and creates or updates the
// matching account.
func (s *AuthService) GoogleLogin(ctx context.Context, req *models.GoogleLoginRequest) (*AuthResult, error) {
	identity, err := s.verifier.Verify(ctx, req.Token)
	if err != nil {
		return nil, apperr.Authentication("Invalid identity token")
	}

	if identity.Email == "" {
		return nil, apperr.Authentication("Identity token carries no email")
	}

	user, err := s.repo.GetUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		user.ProviderUID = &identity.Subject
		user.IsEmailVerified = identity.EmailVerified
		user.LastLogin = time.Now()
		if identity.Name != "" {
			user.Name = identity.Name
		}
		if identity.Picture != "" {
			user.Image = &identity.Picture
		}
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		name := identity.Name
		if name == "" {
			name = strings.Split(identity.Email, "@")[0]
		}
		user = &models.User{
			ID:              uuid.New(),
			Name:            name,
			Email:           identity.Email,
			Role:            models.RoleUser,
			AuthProvider:    models.AuthProviderGoogle,
			ProviderUID:     &identity.Subject,
			IsEmailVerified: identity.EmailVerified,
			LastLogin:       time.Now(),
		}
		if identity.Picture != "" {
			user.Image = &identity.Picture
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("New user %s created via federated sign-in", user.ID)

	default:
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.issueToken(user)
}

// GetMe retrieves the authenticated user's profile
func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates the caller's name or image
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Image != nil {
		user.Image = req.Image
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
