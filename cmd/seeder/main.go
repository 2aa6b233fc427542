package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stockline/stockline-be/internal/core/domain"
)

// seededUnit is one row destined for barcode_units.
type seededUnit struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	Code              string
	Tag               domain.Tag
	PurchaseID        uuid.UUID
	PurchaseUnitPrice decimal.Decimal
	InvoiceID         *uuid.UUID
	CreatedAt         time.Time
}

// tagMix is the seeded lifecycle distribution per product. Most units are
// sellable; the rest exercise the reconciliation paths.
var tagMix = []struct {
	tag    domain.Tag
	weight int
}{
	{domain.TagNew, 60},
	{domain.TagSold, 25},
	{domain.TagReturned, 7},
	{domain.TagDefective, 6},
	{domain.TagUnknown, 2},
}

func pickTag(rng *rand.Rand) domain.Tag {
	total := 0
	for _, m := range tagMix {
		total += m.weight
	}
	n := rng.Intn(total)
	for _, m := range tagMix {
		if n < m.weight {
			return m.tag
		}
		n -= m.weight
	}
	return domain.TagNew
}

// barcode returns an EAN-13-shaped in-store code (prefix 2).
func barcode(rng *rand.Rand) string {
	return fmt.Sprintf("2%012d", rng.Int63n(1_000_000_000_000))
}

func buildUnits(rng *rand.Rand, products, unitsPer int) []seededUnit {
	units := make([]seededUnit, 0, products*unitsPer)
	base := time.Now().UTC().Add(-30 * 24 * time.Hour)

	for p := 0; p < products; p++ {
		productID := uuid.New()
		purchaseID := uuid.New()
		// One shared sale invoice per product keeps replacement lookups
		// interesting: several sold units land on the same invoice line.
		invoiceID := uuid.New()
		price := decimal.NewFromInt(int64(rng.Intn(9000)+500)).Div(decimal.NewFromInt(100))

		for u := 0; u < unitsPer; u++ {
			unit := seededUnit{
				ID:                uuid.New(),
				ProductID:         productID,
				Code:              barcode(rng),
				Tag:               pickTag(rng),
				PurchaseID:        purchaseID,
				PurchaseUnitPrice: price,
				CreatedAt:         base.Add(time.Duration(p*unitsPer+u) * time.Minute),
			}
			if unit.Tag == domain.TagSold {
				id := invoiceID
				unit.InvoiceID = &id
			}
			units = append(units, unit)
		}
	}

	return units
}

func saveUnits(ctx context.Context, db *pgxpool.Pool, units []seededUnit) error {
	if len(units) == 0 {
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, u := range units {
		batch.Queue(`
			INSERT INTO barcode_units (
				id, product_id, code, tag, purchase_id,
				purchase_unit_price, invoice_id, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $8
			) ON CONFLICT (code) DO NOTHING`,
			u.ID, u.ProductID, u.Code, u.Tag, u.PurchaseID,
			u.PurchaseUnitPrice, u.InvoiceID, u.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range units {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert unit: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func main() {
	var (
		products = flag.Int("products", 25, "Number of products to seed")
		unitsPer = flag.Int("units", 40, "Units per product")
		seed     = flag.Int64("seed", 0, "RNG seed (0 = time-based)")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun   = flag.Bool("dry-run", false, "Preview without writing to the database")
	)
	flag.Parse()

	var slogLevel slog.Level
	switch *logLevel {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
	slog.SetDefault(logger)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	units := buildUnits(rng, *products, *unitsPer)

	perTag := map[domain.Tag]int{}
	for _, u := range units {
		perTag[u.Tag]++
	}

	logger.Info("seed plan built",
		slog.Int("products", *products),
		slog.Int("units", len(units)),
		slog.Int64("seed", *seed),
		slog.Any("per_tag", perTag))

	if *dryRun {
		fmt.Println("[DRY RUN] No changes were made to the database")
		return
	}

	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "stockline"),
		getEnv("DB_PASSWORD", "stockline_dev_2025"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "stockline_units"),
		getEnv("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	start := time.Now()
	if err := saveUnits(ctx, db, units); err != nil {
		logger.Error("Failed to save units", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed operation completed",
		slog.Int("units_created", len(units)),
		slog.Duration("took", time.Since(start)))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
