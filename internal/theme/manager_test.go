package theme_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MarkoPoloResearchLab/admin_console/internal/state"
	"github.com/MarkoPoloResearchLab/admin_console/internal/testutil"
	"github.com/MarkoPoloResearchLab/admin_console/internal/theme"
)

const (
	testSystemPrefersDarkHint  = "dark"
	testSystemPrefersLightHint = "light"
)

func TestResolveDefaultsToLight(testingT *testing.T) {
	manager := theme.NewManager(testutil.OpenStateStore(testingT), zap.NewNop())
	require.Equal(testingT, theme.ModeLight, manager.Resolve(""))
}

func TestResolveHonorsSystemPreferenceWithoutStoredMode(testingT *testing.T) {
	manager := theme.NewManager(testutil.OpenStateStore(testingT), zap.NewNop())
	require.Equal(testingT, theme.ModeDark, manager.Resolve(testSystemPrefersDarkHint))
}

func TestResolvePrefersStoredModeOverSystemPreference(testingT *testing.T) {
	store := testutil.OpenStateStore(testingT)
	require.NoError(testingT, store.Write(state.PreferenceNameDisplayMode, theme.ModeLight))

	manager := theme.NewManager(store, zap.NewNop())
	require.Equal(testingT, theme.ModeLight, manager.Resolve(testSystemPrefersDarkHint))
}

func TestResolveIgnoresUnrecognizedStoredValue(testingT *testing.T) {
	store := testutil.OpenStateStore(testingT)
	require.NoError(testingT, store.Write(state.PreferenceNameDisplayMode, "sepia"))

	manager := theme.NewManager(store, zap.NewNop())
	require.Equal(testingT, theme.ModeLight, manager.Resolve(testSystemPrefersLightHint))
}

func TestToggleFlipsBetweenModes(testingT *testing.T) {
	manager := theme.NewManager(testutil.OpenStateStore(testingT), zap.NewNop())

	require.Equal(testingT, theme.ModeDark, manager.Toggle(""))
	require.Equal(testingT, theme.ModeLight, manager.Toggle(""))
	require.Equal(testingT, theme.ModeDark, manager.Toggle(""))
}

func TestToggleStartsFromSystemPreference(testingT *testing.T) {
	manager := theme.NewManager(testutil.OpenStateStore(testingT), zap.NewNop())
	require.Equal(testingT, theme.ModeLight, manager.Toggle(testSystemPrefersDarkHint))
}

func TestTogglePersistsAcrossFreshLoad(testingT *testing.T) {
	databasePath := filepath.Join(testingT.TempDir(), "console-state.db")
	configuration := state.Config{DriverName: state.DriverNameSQLite, DataSourceName: databasePath}

	firstDatabase, openErr := state.OpenDatabase(configuration)
	require.NoError(testingT, openErr)
	require.NoError(testingT, state.AutoMigrate(firstDatabase))
	firstStore, firstStoreErr := state.NewStore(firstDatabase)
	require.NoError(testingT, firstStoreErr)

	firstManager := theme.NewManager(firstStore, zap.NewNop())
	toggledMode := firstManager.Toggle("")
	require.Equal(testingT, theme.ModeDark, toggledMode)

	secondDatabase, reopenErr := state.OpenDatabase(configuration)
	require.NoError(testingT, reopenErr)
	secondStore, secondStoreErr := state.NewStore(secondDatabase)
	require.NoError(testingT, secondStoreErr)

	secondManager := theme.NewManager(secondStore, zap.NewNop())
	require.Equal(testingT, theme.ModeDark, secondManager.Resolve(""))
}
