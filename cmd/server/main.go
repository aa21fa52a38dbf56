package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/console"
	"github.com/MarkoPoloResearchLab/admin_console/internal/guard"
	"github.com/MarkoPoloResearchLab/admin_console/internal/loading"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
	"github.com/MarkoPoloResearchLab/admin_console/internal/session"
	"github.com/MarkoPoloResearchLab/admin_console/internal/state"
	"github.com/MarkoPoloResearchLab/admin_console/internal/theme"
)

const (
	commandUseName          = "server"
	commandShortDescription = "Run the admin console"
	commandLongDescription  = "Launch the web console for the business management backend"

	missingConfigurationMessage   = "missing required configuration"
	unexpectedArgumentsMessage    = "unexpected command arguments"
	commandInitializationFailure  = "failed to configure command"
	flagNotDefinedMessage         = "flag %s not defined"
	environmentConfigurationError = "failed to apply environment configuration"
	loggerCreationErrorMessage    = "logger"

	flagNameApplicationAddress  = "app-addr"
	flagNameBackendBaseURL      = "backend-url"
	flagNameStateDatabasePath   = "state-db"
	flagNameSessionSecret       = "session-secret"
	flagUsageApplicationAddress = "address for the console HTTP server to listen on"
	flagUsageBackendBaseURL     = "base URL of the business management REST backend"
	flagUsageStateDatabasePath  = "path of the local sqlite file holding console preferences"
	flagUsageSessionSecret      = "secret keying the flash-notification cookie session"

	environmentKeyApplicationAddress = "APP_ADDR"
	environmentKeyBackendBaseURL     = "BACKEND_URL"
	environmentKeyStateDatabasePath  = "STATE_DB"
	environmentKeySessionSecret      = "SESSION_SECRET"

	defaultApplicationAddress = ":3000"
	defaultBackendBaseURL     = backend.DefaultBaseURL
	defaultStateDatabasePath  = "admin_console.db"

	logEventListening         = "listening"
	logFieldAddress           = "addr"
	loggerContextOpenDatabase = "open_state_db"
	loggerContextAutoMigrate  = "migrate_state_db"
	loggerContextConstruct    = "construct"
	loggerContextServer       = "server"

	readHeaderTimeoutSeconds = 5
)

// ConsoleConfig captures configuration needed to run the console.
type ConsoleConfig struct {
	ApplicationAddress string
	BackendBaseURL     string
	StateDatabasePath  string
	SessionSecret      string
}

// StateDatabaseOpener opens the local preference database.
type StateDatabaseOpener func(state.Config) (*gorm.DB, error)

// ConsoleApplication constructs and executes the console command.
type ConsoleApplication struct {
	configurationLoader *viper.Viper
	databaseOpener      StateDatabaseOpener
}

// NewConsoleApplication creates a ConsoleApplication with default dependencies.
func NewConsoleApplication() *ConsoleApplication {
	return &ConsoleApplication{
		configurationLoader: viper.New(),
		databaseOpener:      state.OpenDatabase,
	}
}

// WithStateDatabaseOpener overrides the state database opener dependency.
func (application *ConsoleApplication) WithStateDatabaseOpener(databaseOpener StateDatabaseOpener) *ConsoleApplication {
	application.databaseOpener = databaseOpener
	return application
}

// Command builds the Cobra command for the console.
func (application *ConsoleApplication) Command() (*cobra.Command, error) {
	rootCommand := &cobra.Command{
		Use:   commandUseName,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  application.runCommand,
	}

	if configurationErr := application.configureCommand(rootCommand); configurationErr != nil {
		return nil, configurationErr
	}

	return rootCommand, nil
}

func (application *ConsoleApplication) configureCommand(command *cobra.Command) error {
	application.configurationLoader.SetDefault(environmentKeyApplicationAddress, defaultApplicationAddress)
	application.configurationLoader.SetDefault(environmentKeyBackendBaseURL, defaultBackendBaseURL)
	application.configurationLoader.SetDefault(environmentKeyStateDatabasePath, defaultStateDatabasePath)
	application.configurationLoader.SetDefault(environmentKeySessionSecret, "")
	application.configurationLoader.AutomaticEnv()

	commandFlags := command.Flags()
	commandFlags.String(flagNameApplicationAddress, defaultApplicationAddress, flagUsageApplicationAddress)
	commandFlags.String(flagNameBackendBaseURL, defaultBackendBaseURL, flagUsageBackendBaseURL)
	commandFlags.String(flagNameStateDatabasePath, defaultStateDatabasePath, flagUsageStateDatabasePath)
	commandFlags.String(flagNameSessionSecret, "", flagUsageSessionSecret)

	flagBindings := []struct {
		environmentKey string
		flagName       string
	}{
		{environmentKeyApplicationAddress, flagNameApplicationAddress},
		{environmentKeyBackendBaseURL, flagNameBackendBaseURL},
		{environmentKeyStateDatabasePath, flagNameStateDatabasePath},
		{environmentKeySessionSecret, flagNameSessionSecret},
	}
	for _, binding := range flagBindings {
		if bindErr := application.bindFlag(commandFlags, binding.environmentKey, binding.flagName); bindErr != nil {
			return bindErr
		}
		if environmentErr := application.applyEnvironmentConfiguration(commandFlags, binding.environmentKey, binding.flagName); environmentErr != nil {
			return environmentErr
		}
	}

	return nil
}

func (application *ConsoleApplication) bindFlag(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	flag := flagSet.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf(flagNotDefinedMessage, flagName)
	}

	if bindErr := application.configurationLoader.BindPFlag(environmentKey, flag); bindErr != nil {
		return bindErr
	}

	return nil
}

func (application *ConsoleApplication) applyEnvironmentConfiguration(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	environmentValue, environmentFound := os.LookupEnv(environmentKey)
	if !environmentFound {
		return nil
	}

	if setErr := flagSet.Set(flagName, environmentValue); setErr != nil {
		return fmt.Errorf("%s: %w", environmentConfigurationError, setErr)
	}

	return nil
}

func (application *ConsoleApplication) runCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf("%s: %s", unexpectedArgumentsMessage, strings.Join(arguments, " "))
	}

	consoleConfig := ConsoleConfig{
		ApplicationAddress: application.configurationLoader.GetString(environmentKeyApplicationAddress),
		BackendBaseURL:     strings.TrimSpace(application.configurationLoader.GetString(environmentKeyBackendBaseURL)),
		StateDatabasePath:  strings.TrimSpace(application.configurationLoader.GetString(environmentKeyStateDatabasePath)),
		SessionSecret:      strings.TrimSpace(application.configurationLoader.GetString(environmentKeySessionSecret)),
	}

	if validationErr := application.ensureRequiredConfiguration(consoleConfig); validationErr != nil {
		return validationErr
	}

	logger, loggerErr := zap.NewProduction()
	if loggerErr != nil {
		return fmt.Errorf("%s: %w", loggerCreationErrorMessage, loggerErr)
	}
	defer func() {
		_ = logger.Sync()
	}()

	database, databaseErr := application.databaseOpener(state.Config{
		DriverName:     state.DriverNameSQLite,
		DataSourceName: consoleConfig.StateDatabasePath,
	})
	if databaseErr != nil {
		logger.Fatal(loggerContextOpenDatabase, zap.Error(databaseErr))
	}

	if migrateErr := state.AutoMigrate(database); migrateErr != nil {
		logger.Fatal(loggerContextAutoMigrate, zap.Error(migrateErr))
	}

	handlers, handlersErr := buildConsoleHandlers(consoleConfig, database, logger)
	if handlersErr != nil {
		logger.Fatal(loggerContextConstruct, zap.Error(handlersErr))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(console.RequestID())
	router.Use(console.RequestLogger(logger))

	registerConsoleRoutes(router, handlers, handlers.SessionManager())

	httpServer := &http.Server{
		Addr:              consoleConfig.ApplicationAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	logger.Info(logEventListening, zap.String(logFieldAddress, consoleConfig.ApplicationAddress))
	if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		logger.Fatal(loggerContextServer, zap.Error(serveErr))
	}

	return nil
}

// buildConsoleHandlers wires the full dependency graph: state store, backend
// client, session and theme managers, services, and the console handlers.
func buildConsoleHandlers(consoleConfig ConsoleConfig, database *gorm.DB, logger *zap.Logger) (*console.Handlers, error) {
	store, storeErr := state.NewStore(database)
	if storeErr != nil {
		return nil, storeErr
	}

	coordinator := loading.NewCoordinator()

	credentials, credentialsErr := session.NewCredentialKeeper(store, logger)
	if credentialsErr != nil {
		return nil, credentialsErr
	}

	client, clientErr := backend.NewClient(consoleConfig.BackendBaseURL, coordinator, credentials, logger)
	if clientErr != nil {
		return nil, clientErr
	}

	pending := console.NewPendingNotifications()
	sessionManager, sessionErr := session.NewManager(client, credentials, pending, logger)
	if sessionErr != nil {
		return nil, sessionErr
	}

	renderer, rendererErr := console.NewRenderer(logger)
	if rendererErr != nil {
		return nil, rendererErr
	}

	return console.NewHandlers(console.HandlerDependencies{
		Logger:         logger,
		Renderer:       renderer,
		Flashes:        console.NewFlashStore(consoleConfig.SessionSecret, logger),
		Pending:        pending,
		SessionManager: sessionManager,
		ThemeManager:   theme.NewManager(store, logger),
		Prober:         console.NewCapabilityProber(client, logger),
		Coordinator:    coordinator,
		SubmitGuard:    guard.NewSubmitGuard(),
		Contacts:       services.NewContactService(client),
		Demos:          services.NewDemoService(client),
		Clients:        services.NewClientService(client),
		Admins:         services.NewAdminService(client),
		Onboardings:    services.NewOnboardingService(client),
		Auth:           services.NewAuthService(client),
		Dashboard:      services.NewDashboardService(client),
	}), nil
}

func (application *ConsoleApplication) ensureRequiredConfiguration(configuration ConsoleConfig) error {
	var missingParameters []string

	if configuration.BackendBaseURL == "" {
		missingParameters = append(missingParameters, flagNameBackendBaseURL)
	}

	if configuration.StateDatabasePath == "" {
		missingParameters = append(missingParameters, flagNameStateDatabasePath)
	}

	if configuration.SessionSecret == "" {
		missingParameters = append(missingParameters, flagNameSessionSecret)
	}

	if len(missingParameters) == 0 {
		return nil
	}

	return fmt.Errorf("%s: %s", missingConfigurationMessage, strings.Join(missingParameters, ", "))
}

func main() {
	application := NewConsoleApplication()
	rootCommand, commandErr := application.Command()
	if commandErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailure, commandErr)
		os.Exit(1)
	}

	if executeErr := rootCommand.Execute(); executeErr != nil {
		os.Exit(1)
	}
}
