package repository

import (
	"context"

	"estate-market/internal/models"

	"github.com/google/uuid"
)

// CreateProperty creates a new property listing
func (r *Repository) CreateProperty(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// GetPropertyByID retrieves a property by ID with its agent preloaded
func (r *Repository) GetPropertyByID(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Where("id = ?", propertyID).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateProperty saves a property
func (r *Repository) UpdateProperty(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// DeleteProperty removes a property listing
func (r *Repository) DeleteProperty(ctx context.Context, propertyID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Property{}, "id = ?", propertyID).Error
}

// ListProperties retrieves properties matching the filter with pagination,
// returning the page and the total match count.
func (r *Repository) ListProperties(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Property{})

	status := filter.Status
	if status == "" {
		status = models.VerificationVerified
	}
	query = query.Where("verification_status = ?", status)

	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price_min >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_max <= ?", filter.MaxPrice)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 12
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var properties []*models.Property
	err := query.
		Preload("Agent").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// ListAdvertisedProperties retrieves verified advertised properties, capped
func (r *Repository) ListAdvertisedProperties(ctx context.Context, limit int) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Where("is_advertised = ? AND verification_status = ?", true, models.VerificationVerified).
		Order("created_at DESC").
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// ListPropertiesByAgent retrieves all listings belonging to an agent
func (r *Repository) ListPropertiesByAgent(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// ListAllProperties retrieves every listing regardless of status (admin view)
func (r *Repository) ListAllProperties(ctx context.Context) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// RejectPropertiesByAgent pulls every listing of an agent out of the public
// catalog. Used when an agent is flagged as fraudulent.
func (r *Repository) RejectPropertiesByAgent(ctx context.Context, agentID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Property{}).
		Where("agent_id = ?", agentID).
		Update("verification_status", models.VerificationRejected).Error
}
