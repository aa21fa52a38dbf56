package console

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
)

const (
	pageNameProfile = "profile.tmpl"

	titleProfile = "Profile"

	profilePath = "/app/profile"

	notificationProfileSaved      = "Profile updated"
	notificationPasswordChanged   = "Password changed"
	notificationPasswordsMismatch = "New passwords do not match"
)

type profilePageData struct {
	Admin model.Admin
}

// ShowProfile renders the profile screen from the backend's canonical
// record, falling back to the in-context identity when the fetch fails.
func (handlers *Handlers) ShowProfile(requestContext *gin.Context) {
	admin, profileErr := handlers.auth.Profile(requestContext.Request.Context())
	if profileErr != nil {
		if backendFailureIsTerminal(profileErr) {
			handlers.failRequest(requestContext, profileErr, dashboardPath, notificationGenericLoadFailed)
			return
		}
		admin, _ = handlers.sessionManager.CurrentIdentity()
	}
	handlers.render(requestContext, http.StatusOK, pageNameProfile, titleProfile, profilePageData{Admin: admin})
}

// UpdateProfile saves the profile form and refreshes the in-context
// identity with the backend's canonical record.
func (handlers *Handlers) UpdateProfile(requestContext *gin.Context) {
	guardKey := "profile-update"
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, profilePath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	updated, updateErr := handlers.auth.UpdateProfile(requestContext.Request.Context(), services.ProfileUpdate{
		Username: requestContext.PostForm(formFieldUsername),
		Email:    requestContext.PostForm(formFieldEmail),
	})
	if updateErr != nil {
		handlers.failRequest(requestContext, updateErr, profilePath, notificationGenericSaveFailed)
		return
	}

	handlers.sessionManager.ReplaceIdentity(updated)
	handlers.flashes.Success(requestContext, notificationProfileSaved)
	requestContext.Redirect(http.StatusFound, profilePath)
}

// ChangePassword validates the confirmation locally, then replaces the
// password on the backend.
func (handlers *Handlers) ChangePassword(requestContext *gin.Context) {
	newPassword := requestContext.PostForm("newPassword")
	if newPassword != requestContext.PostForm("confirmPassword") {
		handlers.flashes.Error(requestContext, notificationPasswordsMismatch)
		requestContext.Redirect(http.StatusFound, profilePath)
		return
	}

	guardKey := "password-change"
	if !handlers.submitGuard.Begin(guardKey) {
		handlers.flashes.Error(requestContext, notificationRequestInFlight)
		requestContext.Redirect(http.StatusFound, profilePath)
		return
	}
	defer handlers.submitGuard.End(guardKey)

	changeErr := handlers.auth.ChangePassword(requestContext.Request.Context(), services.PasswordChange{
		CurrentPassword: requestContext.PostForm("currentPassword"),
		NewPassword:     newPassword,
	})
	if changeErr != nil {
		handlers.failRequest(requestContext, changeErr, profilePath, notificationGenericSaveFailed)
		return
	}
	handlers.flashes.Success(requestContext, notificationPasswordChanged)
	requestContext.Redirect(http.StatusFound, profilePath)
}
