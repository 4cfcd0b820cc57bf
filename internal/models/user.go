package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAgent UserRole = "agent"
	RoleAdmin UserRole = "admin"
)

type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// User represents a user in the system
type User struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string       `gorm:"size:255;not null" json:"name"`
	Email           string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    *string      `gorm:"size:255" json:"-"`
	Image           *string      `gorm:"size:500" json:"image,omitempty"`
	Role            UserRole     `gorm:"size:20;not null;default:user;index" json:"role"`
	AuthProvider    AuthProvider `gorm:"size:20;not null;default:email" json:"auth_provider"`
	ProviderUID     *string      `gorm:"size:255;index" json:"-"`
	IsEmailVerified bool         `gorm:"default:false" json:"is_email_verified"`
	IsFraud         bool         `gorm:"default:false" json:"is_fraud"`
	LastLogin       time.Time    `json:"last_login"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Image    *string `json:"image"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

type UpdateRoleRequest struct {
	Role UserRole `json:"role" binding:"required"`
}
