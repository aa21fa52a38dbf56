package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/MarkoPoloResearchLab/admin_console/internal/state"
)

const (
	sqliteTestDatabaseNamePrefix        = "admin-console-test-db"
	sqliteInMemoryDataSourceNamePattern = "file:%s?mode=memory&cache=shared&_foreign_keys=on"
)

// SQLiteTestDatabase provides helpers for configuring temporary SQLite databases in tests.
type SQLiteTestDatabase struct {
	configuration state.Config
}

// NewSQLiteTestDatabase creates a SQLiteTestDatabase with a unique in-memory database configuration.
func NewSQLiteTestDatabase(testingT *testing.T) SQLiteTestDatabase {
	testingT.Helper()

	databaseName := fmt.Sprintf("%s-%s", sqliteTestDatabaseNamePrefix, uuid.NewString())

	return SQLiteTestDatabase{
		configuration: state.Config{
			DriverName:     state.DriverNameSQLite,
			DataSourceName: fmt.Sprintf(sqliteInMemoryDataSourceNamePattern, databaseName),
		},
	}
}

// Configuration returns the state configuration for the temporary SQLite database.
func (database SQLiteTestDatabase) Configuration() state.Config {
	return database.configuration
}

// DataSourceName returns the SQLite data source name for the temporary database.
func (database SQLiteTestDatabase) DataSourceName() string {
	return database.configuration.DataSourceName
}

// OpenStateStore opens, migrates, and wraps a temporary database in a state store.
func OpenStateStore(testingT *testing.T) *state.Store {
	testingT.Helper()

	sqliteDatabase := NewSQLiteTestDatabase(testingT)
	database, openErr := state.OpenDatabase(sqliteDatabase.Configuration())
	if openErr != nil {
		testingT.Fatalf("open state database: %v", openErr)
	}
	if migrateErr := state.AutoMigrate(database); migrateErr != nil {
		testingT.Fatalf("migrate state database: %v", migrateErr)
	}
	store, storeErr := state.NewStore(database)
	if storeErr != nil {
		testingT.Fatalf("construct state store: %v", storeErr)
	}
	return store
}
