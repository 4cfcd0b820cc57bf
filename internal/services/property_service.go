package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"estate-market/internal/apperr"
	"estate-market/internal/models"
	"estate-market/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyService struct {
	repo *repository.Repository
}

func NewPropertyService(repo *repository.Repository) *PropertyService {
	return &PropertyService{repo: repo}
}

// CreateProperty lists a new property for an agent. New listings always
// start unverified.
func (s *PropertyService) CreateProperty(
	ctx context.Context,
	agentID uuid.UUID,
	req *models.CreatePropertyRequest,
) (*models.Property, error) {
	if err := s.checkFraudGate(ctx, agentID); err != nil {
		return nil, err
	}

	property := &models.Property{
		ID:                 uuid.New(),
		Title:              req.Title,
		Location:           req.Location,
		Image:              req.Image,
		AgentID:            agentID,
		PriceMin:           req.PriceMin,
		PriceMax:           req.PriceMax,
		Description:        req.Description,
		PropertyType:       req.PropertyType,
		Area:               req.Area,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		YearBuilt:          req.YearBuilt,
		Features:           strings.Join(req.Features, ","),
		VerificationStatus: models.VerificationPending,
	}

	if err := s.repo.CreateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	log.Printf("Property %s listed by agent %s", property.ID, agentID)

	return property, nil
}

// UpdateProperty edits a listing. Changing title, location or price resets
// the verification status back to pending.
func (s *PropertyService) UpdateProperty(
	ctx context.Context,
	callerID uuid.UUID,
	callerRole models.UserRole,
	propertyID uuid.UUID,
	req *models.UpdatePropertyRequest,
) (*models.Property, error) {
	property, err := s.getProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if !property.IsOwner(callerID) && callerRole != models.RoleAdmin {
		return nil, apperr.Authorization("Not authorized")
	}

	if callerRole != models.RoleAdmin {
		if err := s.checkFraudGate(ctx, callerID); err != nil {
			return nil, err
		}
	}

	resetVerification := false

	if req.Title != nil {
		property.Title = *req.Title
		resetVerification = true
	}
	if req.Location != nil {
		property.Location = *req.Location
		resetVerification = true
	}
	if req.PriceMin != nil {
		property.PriceMin = *req.PriceMin
		resetVerification = true
	}
	if req.PriceMax != nil {
		property.PriceMax = *req.PriceMax
		resetVerification = true
	}
	if req.Image != nil {
		property.Image = *req.Image
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.PropertyType != nil {
		property.PropertyType = *req.PropertyType
	}
	if req.Area != nil {
		property.Area = *req.Area
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.YearBuilt != nil {
		property.YearBuilt = *req.YearBuilt
	}
	if req.Features != nil {
		property.Features = strings.Join(req.Features, ",")
	}

	if resetVerification {
		property.VerificationStatus = models.VerificationPending
	}

	property.Agent = nil
	if err := s.repo.UpdateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return property, nil
}

// DeleteProperty removes a listing (owner or admin)
func (s *PropertyService) DeleteProperty(
	ctx context.Context,
	callerID uuid.UUID,
	callerRole models.UserRole,
	propertyID uuid.UUID,
) error {
	property, err := s.getProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	if !property.IsOwner(callerID) && callerRole != models.RoleAdmin {
		return apperr.Authorization("Not authorized")
	}

	return s.repo.DeleteProperty(ctx, propertyID)
}

// GetProperty retrieves a single listing
func (s *PropertyService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	return s.getProperty(ctx, propertyID)
}

// PropertyPage is a paginated catalog response.
type PropertyPage struct {
	Properties  []*models.Property `json:"properties"`
	TotalPages  int64              `json:"total_pages"`
	CurrentPage int                `json:"current_page"`
	Total       int64              `json:"total_properties"`
}

// ListProperties retrieves the public catalog page for a filter
func (s *PropertyService) ListProperties(ctx context.Context, filter models.PropertyFilter) (*PropertyPage, error) {
	properties, total, err := s.repo.ListProperties(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 12
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &PropertyPage{
		Properties:  properties,
		TotalPages:  totalPages,
		CurrentPage: page,
		Total:       total,
	}, nil
}

// ListAdvertised retrieves the advertised carousel (verified only)
func (s *PropertyService) ListAdvertised(ctx context.Context) ([]*models.Property, error) {
	return s.repo.ListAdvertisedProperties(ctx, 8)
}

// ListAgentProperties retrieves an agent's own listings
func (s *PropertyService) ListAgentProperties(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error) {
	return s.repo.ListPropertiesByAgent(ctx, agentID)
}

// ListAllProperties retrieves every listing for moderation (admin)
func (s *PropertyService) ListAllProperties(ctx context.Context) ([]*models.Property, error) {
	return s.repo.ListAllProperties(ctx)
}

// SetVerification moves a listing through the admin moderation gate
func (s *PropertyService) SetVerification(
	ctx context.Context,
	propertyID uuid.UUID,
	status models.VerificationStatus,
) (*models.Property, error) {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return nil, apperr.Validation("Status must be verified or rejected")
	}

	property, err := s.getProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	property.VerificationStatus = status
	property.Agent = nil
	if err := s.repo.UpdateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update verification status: %w", err)
	}

	return property, nil
}

// ToggleAdvertisement flips the advertised flag. Only verified listings can
// be advertised.
func (s *PropertyService) ToggleAdvertisement(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	property, err := s.getProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if property.VerificationStatus != models.VerificationVerified {
		return nil, apperr.Validation("Only verified properties can be advertised")
	}

	property.IsAdvertised = !property.IsAdvertised
	property.Agent = nil
	if err := s.repo.UpdateProperty(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to toggle advertisement: %w", err)
	}

	return property, nil
}

func (s *PropertyService) getProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	property, err := s.repo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Property")
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) checkFraudGate(ctx context.Context, agentID uuid.UUID) error {
	agent, err := s.repo.GetUserByID(ctx, agentID)
	if err != nil {
		return fmt.Errorf("failed to load agent: %w", err)
	}
	if agent.IsFraud {
		return apperr.Authorization("Your account has been flagged and cannot perform this action")
	}
	return nil
}
