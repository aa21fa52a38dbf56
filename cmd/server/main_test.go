package main_test

import (
	"bytes"
	"strings"
	"testing"

	"gorm.io/gorm"

	servercmd "github.com/MarkoPoloResearchLab/admin_console/cmd/server"
	"github.com/MarkoPoloResearchLab/admin_console/internal/state"
)

const (
	testEnvironmentKeyBackendBaseURL    = "BACKEND_URL"
	testEnvironmentKeyStateDatabasePath = "STATE_DB"
	testEnvironmentKeySessionSecret     = "SESSION_SECRET"
	testPlaceholderBackendBaseURL       = "http://backend.example.com/api"
	testPlaceholderStateDatabasePath    = "console-state.db"
	testPlaceholderSessionSecret        = "very-secret-value"
	testMissingConfigurationMessage     = "missing required configuration"
	testFlagNameBackendBaseURL          = "backend-url"
	testFlagNameStateDatabasePath       = "state-db"
	testFlagNameSessionSecret           = "session-secret"
	testFlagIndicator                   = "--"
	testUsagePrefix                     = "Usage:"
)

func TestConsoleCommandMissingConfigurationShowsHelp(t *testing.T) {
	testCases := []struct {
		name                string
		backendBaseURL      string
		stateDatabasePath   string
		sessionSecret       string
		expectedMissingFlag string
	}{
		{
			name:                "missing backend url",
			backendBaseURL:      "",
			stateDatabasePath:   testPlaceholderStateDatabasePath,
			sessionSecret:       testPlaceholderSessionSecret,
			expectedMissingFlag: testFlagNameBackendBaseURL,
		},
		{
			name:                "missing state database path",
			backendBaseURL:      testPlaceholderBackendBaseURL,
			stateDatabasePath:   "",
			sessionSecret:       testPlaceholderSessionSecret,
			expectedMissingFlag: testFlagNameStateDatabasePath,
		},
		{
			name:                "missing session secret",
			backendBaseURL:      testPlaceholderBackendBaseURL,
			stateDatabasePath:   testPlaceholderStateDatabasePath,
			sessionSecret:       "",
			expectedMissingFlag: testFlagNameSessionSecret,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testEnvironmentKeyBackendBaseURL, testCase.backendBaseURL)
			t.Setenv(testEnvironmentKeyStateDatabasePath, testCase.stateDatabasePath)
			t.Setenv(testEnvironmentKeySessionSecret, testCase.sessionSecret)

			databaseOpenerStub := func(databaseConfig state.Config) (*gorm.DB, error) {
				t.Fatalf("database opener invoked with %s", databaseConfig.DataSourceName)
				return nil, nil
			}

			application := servercmd.NewConsoleApplication().WithStateDatabaseOpener(databaseOpenerStub)
			command, commandErr := application.Command()
			if commandErr != nil {
				t.Fatalf("unexpected command construction error: %v", commandErr)
			}

			commandOutput := &bytes.Buffer{}
			command.SetOut(commandOutput)
			command.SetErr(commandOutput)

			executionErr := command.Execute()
			if executionErr == nil {
				t.Fatalf("expected error for missing configuration")
			}

			combinedOutput := commandOutput.String()
			if !strings.Contains(combinedOutput, testMissingConfigurationMessage) {
				t.Fatalf("expected combined output to mention missing configuration: %s", combinedOutput)
			}

			if !strings.Contains(combinedOutput, testUsagePrefix) {
				t.Fatalf("expected combined output to include usage instructions: %s", combinedOutput)
			}

			expectedFlagIndicator := testFlagIndicator + testCase.expectedMissingFlag
			if !strings.Contains(combinedOutput, expectedFlagIndicator) {
				t.Fatalf("expected help output to include flag %s, actual output: %s", expectedFlagIndicator, combinedOutput)
			}
		})
	}
}
