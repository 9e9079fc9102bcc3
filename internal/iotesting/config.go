// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"

	"github.com/kuroshiolab/kurodb/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "kurodb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from the defaults, applies the same KURODB_DATABASE_*
// environment variables the CLI honors, and overrides the database name
// to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	if v := os.Getenv("KURODB_DATABASE_HOST"); v != "" {
		config.OptDatabaseHost(v)(cfg)
	}
	if v := os.Getenv("KURODB_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.OptDatabasePort(port)(cfg)
		}
	}
	if v := os.Getenv("KURODB_DATABASE_USER"); v != "" {
		config.OptDatabaseUser(v)(cfg)
	}
	if v := os.Getenv("KURODB_DATABASE_PASSWORD"); v != "" {
		config.OptDatabasePassword(v)(cfg)
	}

	// Always use test database for safety
	config.OptDatabaseDatabase(TestDatabaseName)(cfg)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
// This is useful when you only need database config without the full
// Config struct.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
