package console

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/guard"
	"github.com/MarkoPoloResearchLab/admin_console/internal/loading"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
	"github.com/MarkoPoloResearchLab/admin_console/internal/session"
	"github.com/MarkoPoloResearchLab/admin_console/internal/theme"
)

const (
	notificationAccessDenied      = "You do not have permission to view that section"
	notificationRecordNotFound    = "Record not found"
	notificationRequestInFlight   = "That action is already in progress"
	notificationGenericSaveFailed = "Save failed"
	notificationGenericLoadFailed = "Failed to load data"
	notificationNoteAdded         = "Note added"
	notificationRecordDeleted     = "Record deleted"
	notificationChangesSaved      = "Changes saved"

	pageNameAccessDenied = "access_denied.tmpl"
)

// HandlerDependencies carries everything the console handlers need.
type HandlerDependencies struct {
	Logger         *zap.Logger
	Renderer       *Renderer
	Flashes        *FlashStore
	Pending        *PendingNotifications
	SessionManager *session.Manager
	ThemeManager   *theme.Manager
	Prober         *CapabilityProber
	Coordinator    *loading.Coordinator
	SubmitGuard    *guard.SubmitGuard
	Contacts       *services.ContactService
	Demos          *services.DemoService
	Clients        *services.ClientService
	Admins         *services.AdminService
	Onboardings    *services.OnboardingService
	Auth           *services.AuthService
	Dashboard      *services.DashboardService
}

// Handlers renders the console screens and turns form posts into backend
// calls.
type Handlers struct {
	logger         *zap.Logger
	renderer       *Renderer
	flashes        *FlashStore
	pending        *PendingNotifications
	sessionManager *session.Manager
	themeManager   *theme.Manager
	prober         *CapabilityProber
	coordinator    *loading.Coordinator
	submitGuard    *guard.SubmitGuard
	contacts       *services.ContactService
	demos          *services.DemoService
	clients        *services.ClientService
	admins         *services.AdminService
	onboardings    *services.OnboardingService
	auth           *services.AuthService
	dashboard      *services.DashboardService
	drafts         *draftVault
}

// NewHandlers constructs the console handlers.
func NewHandlers(dependencies HandlerDependencies) *Handlers {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		logger:         logger,
		renderer:       dependencies.Renderer,
		flashes:        dependencies.Flashes,
		pending:        dependencies.Pending,
		sessionManager: dependencies.SessionManager,
		themeManager:   dependencies.ThemeManager,
		prober:         dependencies.Prober,
		coordinator:    dependencies.Coordinator,
		submitGuard:    dependencies.SubmitGuard,
		contacts:       dependencies.Contacts,
		demos:          dependencies.Demos,
		clients:        dependencies.Clients,
		admins:         dependencies.Admins,
		onboardings:    dependencies.Onboardings,
		auth:           dependencies.Auth,
		dashboard:      dependencies.Dashboard,
		drafts:         newDraftVault(),
	}
}

// SessionManager exposes the session manager for route guards.
func (handlers *Handlers) SessionManager() *session.Manager {
	return handlers.sessionManager
}

// render assembles the chrome state around the page payload and writes the
// page.
func (handlers *Handlers) render(requestContext *gin.Context, statusCode int, pageName string, title string, data any) {
	identity, signedIn := handlers.sessionManager.CurrentIdentity()

	view := viewState{
		Title:      title,
		ThemeMode:  handlers.themeManager.Resolve(requestContext.GetHeader(theme.PreferenceHintHeaderName)),
		Identity:   identity,
		SignedIn:   signedIn,
		ActivePath: activeSection(requestContext.Request.URL.Path),
		Flashes:    handlers.flashes.Consume(requestContext),
		Data:       data,
	}
	if signedIn {
		entries, probeErr := handlers.prober.Resolve(requestContext.Request.Context(), identity)
		if probeErr == nil {
			view.Navigation = entries
		}
	}
	handlers.renderer.Render(requestContext, statusCode, pageName, view)
}

// failRequest applies the shared error policy: 401 sends the visitor to the
// login screen, 403 renders the access-denied view, anything else flashes
// the server's message and redirects to the fallback path.
func (handlers *Handlers) failRequest(requestContext *gin.Context, failure error, fallbackPath string, fallbackMessage string) {
	if backend.IsSessionExpired(failure) {
		requestContext.Redirect(http.StatusFound, LoginPath)
		return
	}
	if backend.IsForbidden(failure) {
		handlers.render(requestContext, http.StatusForbidden, pageNameAccessDenied, "Access denied", struct {
			Message string
		}{Message: notificationAccessDenied})
		return
	}
	if backend.IsNotFound(failure) {
		handlers.flashes.Error(requestContext, backend.MessageFromError(failure, notificationRecordNotFound))
		requestContext.Redirect(http.StatusFound, fallbackPath)
		return
	}
	handlers.flashes.Error(requestContext, backend.MessageFromError(failure, fallbackMessage))
	requestContext.Redirect(http.StatusFound, fallbackPath)
}

// drainPending moves buffered session notifications into the cookie flashes
// of the current request.
func (handlers *Handlers) drainPending(requestContext *gin.Context) {
	for _, message := range handlers.pending.Drain() {
		if message.Kind == flashKindError {
			handlers.flashes.Error(requestContext, message.Text)
			continue
		}
		handlers.flashes.Success(requestContext, message.Text)
	}
}

// backendFailureIsTerminal reports whether the failure forces navigation
// away from the current screen instead of a flash on it.
func backendFailureIsTerminal(failure error) bool {
	return backend.IsSessionExpired(failure) || backend.IsForbidden(failure) || backend.IsNotFound(failure)
}

// activeSection maps a request path to the sidebar entry it belongs under.
func activeSection(requestPath string) string {
	sections := []string{
		"/app/dashboard",
		"/app/contacts",
		"/app/demos",
		"/app/clients",
		"/app/onboardings",
		"/app/admins",
		"/app/profile",
	}
	for _, section := range sections {
		if requestPath == section || len(requestPath) > len(section) && requestPath[:len(section)+1] == section+"/" {
			return section
		}
	}
	return requestPath
}
