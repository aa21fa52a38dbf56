package console

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
)

const (
	pageNameAdminsList = "admins_list.tmpl"
	pageNameAdminForm  = "admin_form.tmpl"

	titleAdmins   = "Admin Management"
	titleNewAdmin = "New admin"

	adminsListPath = "/app/admins"

	notificationAdminCreated = "Admin account created"
	notificationAdminUpdated = "Admin account updated"
	notificationAdminDeleted = "Admin account deleted"

	formFieldUsername = "username"
	formFieldEmail    = "email"
	formFieldPassword = "password"
	formFieldRole     = "role"
	formFieldIsActive = "isActive"
)

type adminsListPageData struct {
	Page  services.AdminPage
	Query services.AdminListQuery
}

type adminFormPageData struct {
	Admin model.Admin
	IsNew bool
}

// requireSuperAdmin renders the access-denied view for non-super-admin
// identities before any admin-management endpoint is called.
func (handlers *Handlers) requireSuperAdmin(requestContext *gin.Context) bool {
	identity, signedIn := handlers.sessionManager.CurrentIdentity()
	if signedIn && identity.IsSuperAdmin() {
		return true
	}
	handlers.render(requestContext, http.StatusForbidden, pageNameAccessDenied, "Access denied", struct {
		Message string
	}{Message: notificationAccessDenied})
	return false
}

// ListAdmins renders the staff accounts table.
func (handlers *Handlers) ListAdmins(requestContext *gin.Context) {
	if !handlers.requireSuperAdmin(requestContext) {
		return
	}
	query := services.AdminListQuery{
		ListQuery: parseListQuery(requestContext),
		Role:      requestContext.Query("role"),
	}
	page, listErr := handlers.admins.List(requestContext.Request.Context(), query)
	if listErr != nil {
		handlers.failRequest(requestContext, listErr, dashboardPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameAdminsList, titleAdmins, adminsListPageData{
		Page:  page,
		Query: query,
	})
}

// ShowNewAdmin renders an empty account form.
func (handlers *Handlers) ShowNewAdmin(requestContext *gin.Context) {
	if !handlers.requireSuperAdmin(requestContext) {
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameAdminForm, titleNewAdmin, adminFormPageData{
		Admin: model.Admin{Role: model.RoleAdmin},
		IsNew: true,
	})
}

// ShowAdmin renders the edit form for one staff account.
func (handlers *Handlers) ShowAdmin(requestContext *gin.Context) {
	if !handlers.requireSuperAdmin(requestContext) {
		return
	}
	admin, getErr := handlers.admins.Get(requestContext.Request.Context(), requestContext.Param("id"))
	if getErr != nil {
		handlers.failRequest(requestContext, getErr, adminsListPath, notificationGenericLoadFailed)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameAdminForm, admin.Username, adminFormPageData{Admin: admin})
}

func adminDraftFromForm(requestContext *gin.Context) services.AdminDraft {
	return services.AdminDraft{
		Username: requestContext.PostForm(formFieldUsername),
		Email:    requestContext.PostForm(formFieldEmail),
		Password: requestContext.PostForm(formFieldPassword),
		Role:     requestContext.PostForm(formFieldRole),
	}
}

// CreateAdmin registers a new staff account.
func (handlers *Handlers) CreateAdmin(requestContext *gin.Context) {
	if !handlers.requireSuperAdmin(requestContext) {
		return
	}

	guardKey := "admin-create"
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, adminsListPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if _, createErr := handlers.admins.Create(requestContext.Request.Context(), adminDraftFromForm(requestContext)); createErr != nil {
		handlers.failRequest(requestContext, createErr, adminsListPath+"/new", notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationAdminCreated)
	requestContext.Redirect(http.StatusFound, adminsListPath)
}

// UpdateAdmin saves edits to one staff account.
func (handlers *Handlers) UpdateAdmin(requestContext *gin.Context) {
	if !handlers.requireSuperAdmin(requestContext) {
		return
	}
	adminID := requestContext.Param("id")
	guardKey := "admin-update-" + adminID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, adminsListPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if _, updateErr := handlers.admins.Update(requestContext.Request.Context(), adminID, adminDraftFromForm(requestContext)); updateErr != nil {
		handlers.failRequest(requestContext, updateErr, adminsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationAdminUpdated)
	requestContext.Redirect(http.StatusFound, adminsListPath)
}

// ToggleAdminActive flips whether the staff account may sign in.
func (handlers *Handlers) ToggleAdminActive(requestContext *gin.Context) {
	if !handlers.requireSuperAdmin(requestContext) {
		return
	}
	adminID := requestContext.Param("id")
	guardKey := "admin-active-" + adminID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, adminsListPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	isActive := requestContext.PostForm(formFieldIsActive) == formValueTrue
	if _, toggleErr := handlers.admins.SetActive(requestContext.Request.Context(), adminID, isActive); toggleErr != nil {
		handlers.failRequest(requestContext, toggleErr, adminsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationAdminUpdated)
	requestContext.Redirect(http.StatusFound, adminsListPath)
}

// DeleteAdmin removes the staff account.
func (handlers *Handlers) DeleteAdmin(requestContext *gin.Context) {
	if !handlers.requireSuperAdmin(requestContext) {
		return
	}
	adminID := requestContext.Param("id")
	guardKey := "admin-delete-" + adminID
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, adminsListPath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	if deleteErr := handlers.admins.Delete(requestContext.Request.Context(), adminID); deleteErr != nil {
		handlers.failRequest(requestContext, deleteErr, adminsListPath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationAdminDeleted)
	requestContext.Redirect(http.StatusFound, adminsListPath)
}
