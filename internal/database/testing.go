package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/fight-predictor/internal/config"
)

// TestConfigPathEnv names the config file used by database integration tests.
const TestConfigPathEnv = "FIGHT_PREDICTOR_TEST_CONFIG"

// SetupTestDB connects to the test database and applies the schema.
// The test is skipped when no test configuration is provided.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(TestConfigPathEnv)
	if path == "" {
		t.Skip("Integration test - requires database setup")
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	return db
}

// TeardownTestDB removes test rows and closes the connection
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, table := range []string{"fight_predictions", "models"} {
		if _, err := db.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("warning: failed to clean %s: %v", table, err)
		}
	}
	db.Close()
}
