package console

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarkoPoloResearchLab/admin_console/internal/session"
)

const (
	pageNameLogin = "login.tmpl"

	titleSignIn = "Sign in"

	notificationInvalidLoginForm = "Enter a valid email address and password"

	dashboardPath = "/app/dashboard"
)

type loginPageData struct {
	Email string
}

// ShowLogin renders the sign-in screen, skipping straight to the dashboard
// when a session is already live.
func (handlers *Handlers) ShowLogin(requestContext *gin.Context) {
	if !handlers.sessionManager.IsAuthenticated() {
		handlers.sessionManager.Restore(requestContext.Request.Context())
	}
	if handlers.sessionManager.IsAuthenticated() {
		requestContext.Redirect(http.StatusFound, dashboardPath)
		return
	}
	handlers.render(requestContext, http.StatusOK, pageNameLogin, titleSignIn, loginPageData{})
}

// SubmitLogin exchanges the posted credentials for a backend session.
func (handlers *Handlers) SubmitLogin(requestContext *gin.Context) {
	var credentials session.Credentials
	if bindErr := requestContext.ShouldBind(&credentials); bindErr != nil {
		handlers.flashes.Error(requestContext, notificationInvalidLoginForm)
		handlers.render(requestContext, http.StatusBadRequest, pageNameLogin, titleSignIn, loginPageData{Email: credentials.Email})
		return
	}

	loggedIn := handlers.sessionManager.Login(requestContext.Request.Context(), credentials)
	handlers.drainPending(requestContext)
	if !loggedIn {
		handlers.render(requestContext, http.StatusUnauthorized, pageNameLogin, titleSignIn, loginPageData{Email: credentials.Email})
		return
	}

	handlers.prober.Invalidate()
	requestContext.Redirect(http.StatusFound, dashboardPath)
}

// SubmitLogout tears the session down and returns to the sign-in screen.
func (handlers *Handlers) SubmitLogout(requestContext *gin.Context) {
	handlers.sessionManager.Logout()
	handlers.prober.Invalidate()
	handlers.drainPending(requestContext)
	requestContext.Redirect(http.StatusFound, LoginPath)
}
