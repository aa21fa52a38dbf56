package session

import (
	"time"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

// wireIdentity tolerates the backend's two identity shapes: login responses
// carry the primary key as "id" while profile responses carry "_id".
type wireIdentity struct {
	MongoID   string     `json:"_id"`
	PlainID   string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  *bool      `json:"isActive"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// normalizeIdentity converts either wire shape into the canonical identity:
// the ID field is always populated and a missing isActive flag means active.
func normalizeIdentity(identity wireIdentity, normalizedAt time.Time) model.Admin {
	canonicalID := identity.PlainID
	if canonicalID == "" {
		canonicalID = identity.MongoID
	}

	isActive := true
	if identity.IsActive != nil {
		isActive = *identity.IsActive
	}

	createdAt := normalizedAt
	if identity.CreatedAt != nil {
		createdAt = *identity.CreatedAt
	}
	updatedAt := normalizedAt
	if identity.UpdatedAt != nil {
		updatedAt = *identity.UpdatedAt
	}

	return model.Admin{
		ID:        canonicalID,
		Username:  identity.Username,
		Email:     identity.Email,
		Role:      identity.Role,
		IsActive:  isActive,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		LastLogin: identity.LastLogin,
	}
}
