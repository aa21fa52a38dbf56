package theme

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/state"
)

const (
	// ModeLight is the default rendering mode.
	ModeLight = "light"
	// ModeDark is the alternate rendering mode.
	ModeDark = "dark"

	// PreferenceHintHeaderName is the client hint carrying the browser's
	// operating-system color-scheme preference.
	PreferenceHintHeaderName = "Sec-CH-Prefers-Color-Scheme"

	logEventReadStoredMode = "read_stored_display_mode"
	logEventPersistMode    = "persist_display_mode"
)

// Manager tracks the light/dark display preference. Resolution order: an
// explicitly stored preference, else the browser-reported system preference,
// else light. A toggle is persisted before it is reported back.
type Manager struct {
	mutex  sync.Mutex
	store  *state.Store
	logger *zap.Logger

	resolved     bool
	explicitMode string
}

// NewManager constructs a Manager over the durable store.
func NewManager(store *state.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// Resolve returns the effective display mode given the browser's system
// preference hint (the raw header value; empty when the browser sent none).
func (manager *Manager) Resolve(systemPreferenceHint string) string {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	manager.loadLocked()
	if manager.explicitMode != "" {
		return manager.explicitMode
	}
	if normalizeMode(systemPreferenceHint) == ModeDark {
		return ModeDark
	}
	return ModeLight
}

// Toggle flips between the two supported modes and persists the result
// before returning it. The hint resolves the starting mode when no explicit
// preference exists yet.
func (manager *Manager) Toggle(systemPreferenceHint string) string {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	manager.loadLocked()
	currentMode := manager.explicitMode
	if currentMode == "" {
		currentMode = ModeLight
		if normalizeMode(systemPreferenceHint) == ModeDark {
			currentMode = ModeDark
		}
	}

	toggledMode := ModeLight
	if currentMode == ModeLight {
		toggledMode = ModeDark
	}

	manager.explicitMode = toggledMode
	if writeErr := manager.store.Write(state.PreferenceNameDisplayMode, toggledMode); writeErr != nil {
		manager.logger.Warn(logEventPersistMode, zap.Error(writeErr))
	}
	return toggledMode
}

func (manager *Manager) loadLocked() {
	if manager.resolved {
		return
	}
	manager.resolved = true

	storedMode, modeFound, readErr := manager.store.Read(state.PreferenceNameDisplayMode)
	if readErr != nil {
		manager.logger.Warn(logEventReadStoredMode, zap.Error(readErr))
		return
	}
	if !modeFound {
		return
	}
	manager.explicitMode = normalizeMode(storedMode)
}

func normalizeMode(rawMode string) string {
	switch strings.ToLower(strings.TrimSpace(rawMode)) {
	case ModeDark:
		return ModeDark
	case ModeLight:
		return ModeLight
	default:
		return ""
	}
}
