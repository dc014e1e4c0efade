//go:build integration

package integration

import (
	"context"
	"log"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfwise/shelfwise/internal/app"
	"github.com/shelfwise/shelfwise/internal/config"
	"github.com/shelfwise/shelfwise/internal/testutil"
)

var (
	testServer    *httptest.Server
	testValidator *testutil.OpenAPIValidator
	testDB        *pgxpool.Pool
)

// OpenAPI spec path relative to the tests/integration directory.
const openAPISpecPath = "../../api/openapi/openapi.yaml"

// newTestClient creates a new test client with OpenAPI validation enabled.
// Use this at the beginning of each test that makes API calls.
func newTestClient(t *testing.T) *testutil.Client {
	t.Helper()
	client := testutil.NewClientWithValidator(testServer.URL, testValidator)
	client.SetT(t)
	return client
}

// newManagerClient registers a fresh manager account and returns an
// authenticated client.
func newManagerClient(t *testing.T) *testutil.Client {
	t.Helper()
	client := newTestClient(t)
	client.RegisterAs(t, testutil.RandomEmail(), "password123", "manager")
	return client
}

// newStoreKeeperClient registers a fresh store keeper account and returns an
// authenticated client.
func newStoreKeeperClient(t *testing.T) *testutil.Client {
	t.Helper()
	client := newTestClient(t)
	client.RegisterAs(t, testutil.RandomEmail(), "password123", "")
	return client
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := testutil.NewPostgresContainer(ctx)
	if err != nil {
		log.Fatalf("start postgres: %v", err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("terminate postgres: %v", err)
		}
	}()

	migrator, err := migrate.New(
		"file://../../migrations",
		pgContainer.ConnectionString,
	)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("run migrations: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         "0",
			MetricsPort:  "0",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: config.DatabaseConfig{
			URL:             pgContainer.ConnectionString,
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
			ConnectTimeout:  30 * time.Second,
			ConnectAttempts: 3,
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "text",
		},
		JWT: config.JWTConfig{
			SecretKey:     "test-secret-key",
			TokenDuration: 15 * time.Minute,
		},
		// High limits so the credential-endpoint rate limiter never
		// interferes with unrelated tests. The limiter itself is covered by
		// the httputil unit tests.
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("create app: %v", err)
	}

	// Direct DB connection for tests that need it
	testDB, err = pgxpool.New(ctx, pgContainer.ConnectionString)
	if err != nil {
		log.Fatalf("create test db pool: %v", err)
	}

	testServer = httptest.NewServer(application.Router())

	testValidator, err = testutil.LoadOpenAPIValidator(openAPISpecPath)
	if err != nil {
		log.Fatalf("load OpenAPI validator: %v", err)
	}

	code := m.Run()

	testServer.Close()
	testDB.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown app: %v", err)
	}

	os.Exit(code)
}
