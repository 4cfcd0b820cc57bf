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
	"gorm.io/gorm"
)

// UserService covers admin user management.
type UserService struct {
	repo *repository.Repository
}

func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// ListUsers retrieves all users (admin)
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateRole changes a user's role. Admins cannot change their own role.
func (s *UserService) UpdateRole(
	ctx context.Context,
	adminID uuid.UUID,
	targetID uuid.UUID,
	role models.UserRole,
) (*models.User, error) {
	switch role {
	case models.RoleUser, models.RoleAgent, models.RoleAdmin:
	default:
		return nil, apperr.Validation("Invalid role")
	}

	user, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.ID == adminID {
		return nil, apperr.Authorization("Cannot change own role")
	}

	user.Role = role
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	log.Printf("User %s role changed to %s by admin %s", targetID, role, adminID)

	return user, nil
}

// MarkFraud flags an agent as fraudulent and pulls all of their listings
// out of the public catalog.
func (s *UserService) MarkFraud(ctx context.Context, adminID uuid.UUID, targetID uuid.UUID) (*models.User, error) {
	user, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.ID == adminID {
		return nil, apperr.Authorization("Cannot mark self as fraud")
	}

	if user.Role != models.RoleAgent {
		return nil, apperr.Validation("Only agents can be marked as fraud")
	}

	user.IsFraud = true
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to flag user: %w", err)
	}

	if err := s.repo.RejectPropertiesByAgent(ctx, targetID); err != nil {
		return nil, fmt.Errorf("failed to reject agent properties: %w", err)
	}

	log.Printf("Agent %s marked as fraud by admin %s", targetID, adminID)

	return user, nil
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, adminID uuid.UUID, targetID uuid.UUID) error {
	user, err := s.getUser(ctx, targetID)
	if err != nil {
		return err
	}

	if user.ID == adminID {
		return apperr.Authorization("Cannot delete own account")
	}

	return s.repo.DeleteUser(ctx, targetID)
}

func (s *UserService) getUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
