package services

import (
	"context"
	"fmt"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	adminCollectionPath = "/admin/admins"
	adminRecordPattern  = "/admin/admins/%s"
)

// AdminService manages staff accounts. Every endpoint requires the
// super-admin role; a 403 surfaces as an access-denied view state and leaves
// the session intact.
type AdminService struct {
	client *backend.Client
}

// NewAdminService constructs an AdminService.
func NewAdminService(client *backend.Client) *AdminService {
	return &AdminService{client: client}
}

// AdminPage is one page of staff accounts.
type AdminPage struct {
	Admins     []model.Admin    `json:"admins"`
	Pagination model.Pagination `json:"pagination"`
}

// AdminListQuery extends the shared list parameters with a role filter.
type AdminListQuery struct {
	model.ListQuery
	Role string
}

// List returns one page of staff accounts.
func (service *AdminService) List(ctx context.Context, query AdminListQuery) (AdminPage, error) {
	values := listQueryValues(query.ListQuery)
	backend.AppendQueryValue(values, queryParameterRole, query.Role)

	var page AdminPage
	listErr := service.client.Get(ctx, adminCollectionPath, values, &page)
	return page, listErr
}

// Get returns one staff account by identifier.
func (service *AdminService) Get(ctx context.Context, adminID string) (model.Admin, error) {
	var admin model.Admin
	getErr := service.client.Get(ctx, fmt.Sprintf(adminRecordPattern, adminID), nil, &admin)
	return admin, getErr
}

// AdminDraft carries the fields for creating or editing a staff account.
type AdminDraft struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role" binding:"required,oneof=admin super_admin"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// Create registers a new staff account and returns the canonical record.
func (service *AdminService) Create(ctx context.Context, draft AdminDraft) (model.Admin, error) {
	var admin model.Admin
	createErr := service.client.Post(ctx, adminCollectionPath, draft, &admin)
	return admin, createErr
}

// Update saves edits and returns the canonical record.
func (service *AdminService) Update(ctx context.Context, adminID string, draft AdminDraft) (model.Admin, error) {
	var admin model.Admin
	updateErr := service.client.Put(ctx, fmt.Sprintf(adminRecordPattern, adminID), draft, &admin)
	return admin, updateErr
}

// SetActive toggles whether the staff account may sign in.
func (service *AdminService) SetActive(ctx context.Context, adminID string, isActive bool) (model.Admin, error) {
	var admin model.Admin
	updateErr := service.client.Put(ctx, fmt.Sprintf(adminRecordPattern, adminID), map[string]bool{"isActive": isActive}, &admin)
	return admin, updateErr
}

// Delete removes the staff account.
func (service *AdminService) Delete(ctx context.Context, adminID string) error {
	return service.client.Delete(ctx, fmt.Sprintf(adminRecordPattern, adminID))
}
