package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/envelope-ledger/backend/internal/integration/persistence"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

// Prepare migrates the schema and seeds the default categories when the store is empty.
func (d *Database) Prepare(ctx context.Context, seedFile string) error {
	if err := d.AutoMigrate(model.All()...); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	seeds, err := LoadSeedFile(seedFile)
	if err != nil {
		return err
	}
	categories, err := SeedEntities(seeds, time.Now())
	if err != nil {
		return err
	}

	if _, err := persistence.NewSeeder(d.db).Seed(ctx, categories); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}
