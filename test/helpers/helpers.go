// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-be/internal/adapters/db"
	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// findMigrationsDir walks up from the test's working directory until it
// finds the migrations directory at the module root.
func findMigrationsDir(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("migrations directory not found above test working directory")
		}
		dir = parent
	}
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_units",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_units",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		SourcePath: findMigrationsDir(t),
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_units",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Engine: config.EngineConfig{
			CartIdleAfter:  30 * time.Minute,
			SweepInterval:  5 * time.Minute,
			AuditRetention: 90 * 24 * time.Hour,
			LedgerPrefix:   "ledger",
		},
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret",
			JWTExpiration:     24 * time.Hour,
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestUnit creates a test barcode unit
func CreateTestUnit(overrides ...func(*domain.BarcodeUnit)) *domain.BarcodeUnit {
	purchaseID := uuid.New()
	now := time.Now().UTC()
	unit := &domain.BarcodeUnit{
		ID:                uuid.New(),
		ProductID:         uuid.New(),
		Code:              fmt.Sprintf("2%012d", now.UnixNano()%1_000_000_000_000),
		Tag:               domain.TagNew,
		PurchaseID:        &purchaseID,
		PurchaseUnitPrice: decimal.NewFromFloat(19.90),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for _, override := range overrides {
		override(unit)
	}

	return unit
}

// CreateTestUnits creates count units of one product, oldest first. Tags
// cycle through the given sequence; with no tags every unit starts new.
func CreateTestUnits(count int, productID uuid.UUID, tags ...domain.Tag) []domain.BarcodeUnit {
	units := make([]domain.BarcodeUnit, count)
	base := time.Now().UTC().Add(-time.Duration(count) * time.Minute)

	for i := 0; i < count; i++ {
		u := CreateTestUnit(func(u *domain.BarcodeUnit) {
			u.ProductID = productID
			u.Code = fmt.Sprintf("2%012d", i+1)
			u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			u.UpdatedAt = u.CreatedAt
			if len(tags) > 0 {
				u.Tag = tags[i%len(tags)]
			}
		})
		units[i] = *u
	}

	return units
}

// CreateTestReservation creates a cart reservation for a unit
func CreateTestReservation(cartID uuid.UUID, unit *domain.BarcodeUnit) domain.CartReservation {
	return domain.CartReservation{
		CartID:     cartID,
		UnitID:     unit.ID,
		ProductID:  unit.ProductID,
		ReservedAt: time.Now().UTC(),
	}
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"activity_log",
		"replacement_items",
		"replacement_records",
		"move_out_batches",
		"cart_reservations",
		"barcode_units",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// SeedTestUnits seeds the database with barcode units
func SeedTestUnits(t *testing.T, db *pgxpool.Pool, units []domain.BarcodeUnit) {
	t.Helper()

	ctx := context.Background()

	for _, u := range units {
		query := `
			INSERT INTO barcode_units (
				id, product_id, code, tag, purchase_id, purchase_unit_price,
				invoice_id, disposed_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		_, err := db.Exec(ctx, query,
			u.ID, u.ProductID, u.Code, u.Tag, u.PurchaseID, u.PurchaseUnitPrice,
			u.InvoiceID, u.DisposedAt, u.CreatedAt, u.UpdatedAt,
		)
		require.NoError(t, err, "Failed to seed test unit")
	}
}
