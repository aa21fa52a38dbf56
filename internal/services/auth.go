package services

import (
	"context"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	authProfilePath        = "/auth/profile"
	authChangePasswordPath = "/auth/change-password"
	adminDashboardPath     = "/admin/dashboard"
)

// AuthService covers the profile and password operations of the signed-in
// identity. Login and session restoration live in the session manager.
type AuthService struct {
	client *backend.Client
}

// NewAuthService constructs an AuthService.
func NewAuthService(client *backend.Client) *AuthService {
	return &AuthService{client: client}
}

type profileEnvelope struct {
	Admin model.Admin `json:"admin"`
}

// Profile returns the signed-in identity's canonical record.
func (service *AuthService) Profile(ctx context.Context) (model.Admin, error) {
	var envelope profileEnvelope
	profileErr := service.client.Get(ctx, authProfilePath, nil, &envelope)
	return envelope.Admin, profileErr
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// UpdateProfile saves profile edits and returns the canonical record.
func (service *AuthService) UpdateProfile(ctx context.Context, update ProfileUpdate) (model.Admin, error) {
	var envelope profileEnvelope
	updateErr := service.client.Put(ctx, authProfilePath, update, &envelope)
	return envelope.Admin, updateErr
}

// PasswordChange carries the change-password form fields.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword replaces the signed-in identity's password.
func (service *AuthService) ChangePassword(ctx context.Context, change PasswordChange) error {
	return service.client.Put(ctx, authChangePasswordPath, change, nil)
}

// DashboardService fetches the aggregate dashboard payload.
type DashboardService struct {
	client *backend.Client
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(client *backend.Client) *DashboardService {
	return &DashboardService{client: client}
}

// Stats returns the dashboard aggregates.
func (service *DashboardService) Stats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	statsErr := service.client.Get(ctx, adminDashboardPath, nil, &stats)
	return stats, statsErr
}
