package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	loginPath   = "/auth/login"
	profilePath = "/auth/profile"

	notificationLoginSucceeded  = "Login successful!"
	notificationLoginFallback   = "Login failed"
	notificationLogoutSucceeded = "Logged out successfully"

	logEventLoginFailed   = "login_failed"
	logEventRestoreFailed = "session_restore_failed"
	logEventLoggedIn      = "logged_in"
	logEventLoggedOut     = "logged_out"
	logFieldIdentityEmail = "email"

	errorMessageMissingClient = "session: missing backend client"
)

// ErrMissingClient indicates the manager was constructed without a backend client.
var ErrMissingClient = errors.New(errorMessageMissingClient)

type sessionPhase int

const (
	phaseUnauthenticated sessionPhase = iota
	phaseRestoring
	phaseAuthenticated
)

// Notifier surfaces transient notifications to the operator.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Manager is the single source of truth for the authenticated identity. It
// owns the login/logout flow, restores a stored session at startup, and tears
// the session down when the backend reports an expired credential.
type Manager struct {
	client      *backend.Client
	credentials *CredentialKeeper
	notifier    Notifier
	logger      *zap.Logger

	mutex    sync.Mutex
	phase    sessionPhase
	identity model.Admin
}

// NewManager constructs a Manager and registers itself for the backend
// client's session-expiry notifications.
func NewManager(client *backend.Client, credentials *CredentialKeeper, notifier Notifier, logger *zap.Logger) (*Manager, error) {
	if client == nil {
		return nil, ErrMissingClient
	}
	if credentials == nil {
		return nil, ErrMissingStateStore
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	manager := &Manager{
		client:      client,
		credentials: credentials,
		notifier:    notifier,
		logger:      logger,
	}
	client.OnSessionExpired(manager.handleSessionExpired)
	return manager, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Token string       `json:"token"`
	Admin wireIdentity `json:"admin"`
}

type profilePayload struct {
	Admin wireIdentity `json:"admin"`
}

// Login exchanges the credentials for a bearer token. It reports the outcome
// through the notifier and never propagates an error to the caller.
func (manager *Manager) Login(ctx context.Context, credentials Credentials) bool {
	var payload loginPayload
	loginErr := manager.client.Post(ctx, loginPath, loginRequest{
		Email:    credentials.Email,
		Password: credentials.Password,
	}, &payload)
	if loginErr != nil {
		manager.logger.Info(logEventLoginFailed,
			zap.String(logFieldIdentityEmail, credentials.Email),
			zap.Error(loginErr),
		)
		manager.notifier.Error(backend.MessageFromError(loginErr, notificationLoginFallback))
		return false
	}

	identity := normalizeIdentity(payload.Admin, time.Now())
	manager.credentials.SaveToken(payload.Token)

	manager.mutex.Lock()
	manager.phase = phaseAuthenticated
	manager.identity = identity
	manager.mutex.Unlock()

	manager.logger.Info(logEventLoggedIn, zap.String(logFieldIdentityEmail, identity.Email))
	manager.notifier.Success(notificationLoginSucceeded)
	return true
}

// Logout clears the stored token and the in-memory identity. It cannot fail.
func (manager *Manager) Logout() {
	manager.credentials.ClearToken()

	manager.mutex.Lock()
	manager.phase = phaseUnauthenticated
	manager.identity = model.Admin{}
	manager.mutex.Unlock()

	manager.logger.Info(logEventLoggedOut)
	manager.notifier.Success(notificationLogoutSucceeded)
}

// Restore attempts to resume a stored session by fetching the profile. A
// rejected token is cleared and the manager returns to the unauthenticated
// state.
func (manager *Manager) Restore(ctx context.Context) {
	if _, tokenPresent := manager.credentials.Token(); !tokenPresent {
		return
	}

	manager.mutex.Lock()
	manager.phase = phaseRestoring
	manager.mutex.Unlock()

	var payload profilePayload
	profileErr := manager.client.Get(ctx, profilePath, nil, &payload)
	if profileErr != nil {
		manager.logger.Info(logEventRestoreFailed, zap.Error(profileErr))
		manager.credentials.ClearToken()
		manager.mutex.Lock()
		manager.phase = phaseUnauthenticated
		manager.identity = model.Admin{}
		manager.mutex.Unlock()
		return
	}

	identity := normalizeIdentity(payload.Admin, time.Now())
	manager.mutex.Lock()
	manager.phase = phaseAuthenticated
	manager.identity = identity
	manager.mutex.Unlock()
}

// ReplaceIdentity swaps the in-context identity for the backend's canonical
// version after a profile update.
func (manager *Manager) ReplaceIdentity(identity model.Admin) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()
	if manager.phase == phaseAuthenticated {
		manager.identity = identity
	}
}

// CurrentIdentity returns the authenticated identity, when one is loaded.
func (manager *Manager) CurrentIdentity() (model.Admin, bool) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()
	return manager.identity, manager.phase == phaseAuthenticated
}

// IsAuthenticated reports whether an identity is currently loaded.
func (manager *Manager) IsAuthenticated() bool {
	_, authenticated := manager.CurrentIdentity()
	return authenticated
}

// IsRestoring reports whether the initial session restoration is in flight.
func (manager *Manager) IsRestoring() bool {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()
	return manager.phase == phaseRestoring
}

// handleSessionExpired implements the global 401 policy on the session side:
// the token has already been cleared by the backend client, so only the
// in-memory identity remains to tear down.
func (manager *Manager) handleSessionExpired() {
	manager.mutex.Lock()
	manager.phase = phaseUnauthenticated
	manager.identity = model.Admin{}
	manager.mutex.Unlock()
}
