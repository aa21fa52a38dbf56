package session

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/state"
)

const (
	errorMessageMissingStateStore = "session: missing state store"
	logEventReadStoredToken       = "read_stored_token"
	logEventPersistToken          = "persist_token"
	logEventEraseToken            = "erase_token"
)

// ErrMissingStateStore indicates the credential keeper was constructed
// without a durable store.
var ErrMissingStateStore = errors.New(errorMessageMissingStateStore)

// CredentialKeeper holds the bearer token, backed by the durable state store
// so the session survives process restarts. It satisfies the backend client's
// CredentialStore contract.
type CredentialKeeper struct {
	mutex  sync.Mutex
	store  *state.Store
	logger *zap.Logger

	loaded       bool
	token        string
	tokenPresent bool
}

// NewCredentialKeeper constructs a CredentialKeeper over the durable store.
func NewCredentialKeeper(store *state.Store, logger *zap.Logger) (*CredentialKeeper, error) {
	if store == nil {
		return nil, ErrMissingStateStore
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialKeeper{store: store, logger: logger}, nil
}

// Token returns the current bearer token, loading it from the durable store
// on first use.
func (keeper *CredentialKeeper) Token() (string, bool) {
	keeper.mutex.Lock()
	defer keeper.mutex.Unlock()
	keeper.loadLocked()
	return keeper.token, keeper.tokenPresent
}

// SaveToken persists the token durably and makes it available to subsequent
// requests.
func (keeper *CredentialKeeper) SaveToken(token string) {
	keeper.mutex.Lock()
	defer keeper.mutex.Unlock()
	keeper.loaded = true
	keeper.token = token
	keeper.tokenPresent = token != ""
	if writeErr := keeper.store.Write(state.PreferenceNameAuthToken, token); writeErr != nil {
		keeper.logger.Warn(logEventPersistToken, zap.Error(writeErr))
	}
}

// ClearToken removes the token from memory and from the durable store.
func (keeper *CredentialKeeper) ClearToken() {
	keeper.mutex.Lock()
	defer keeper.mutex.Unlock()
	keeper.loaded = true
	keeper.token = ""
	keeper.tokenPresent = false
	if eraseErr := keeper.store.Erase(state.PreferenceNameAuthToken); eraseErr != nil {
		keeper.logger.Warn(logEventEraseToken, zap.Error(eraseErr))
	}
}

func (keeper *CredentialKeeper) loadLocked() {
	if keeper.loaded {
		return
	}
	keeper.loaded = true
	storedToken, tokenFound, readErr := keeper.store.Read(state.PreferenceNameAuthToken)
	if readErr != nil {
		keeper.logger.Warn(logEventReadStoredToken, zap.Error(readErr))
		return
	}
	keeper.token = storedToken
	keeper.tokenPresent = tokenFound && storedToken != ""
}
