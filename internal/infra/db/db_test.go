package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-ledger/backend/config"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"ledger.db", "ledger.db?_pragma=foreign_keys(1)"},
		{"file:x?mode=memory", "file:x?mode=memory&_pragma=foreign_keys(1)"},
		{"ledger.db?_pragma=foreign_keys(0)", "ledger.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, withForeignKeys(tt.dsn))
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	t.Run("defaults when no path", func(t *testing.T) {
		seeds, err := LoadSeedFile("")
		require.NoError(t, err)
		assert.Len(t, seeds, 6)
	})

	t.Run("reads yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		content := "categories:\n  - name: Rent\n    percentage: \"62.5\"\n  - name: Fun\n    percentage: \"37.5\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		seeds, err := LoadSeedFile(path)
		require.NoError(t, err)
		require.Len(t, seeds, 2)
		assert.Equal(t, "Rent", seeds[0].Name)
		assert.True(t, seeds[0].Percentage.Equal(decimal.RequireFromString("62.5")))
	})

	t.Run("empty list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0o600))

		_, err := LoadSeedFile(path)
		assert.ErrorContains(t, err, "has no categories")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestSeedEntities(t *testing.T) {
	categories, err := SeedEntities(DefaultSeedCategories(), time.Now())
	require.NoError(t, err)
	require.Len(t, categories, 6)
	assert.Equal(t, "Savings", categories[0].Name)
	assert.True(t, categories[0].Balance.IsZero())

	_, err = SeedEntities([]SeedCategory{{Name: "  ", Percentage: decimal.NewFromInt(10)}}, time.Now())
	assert.Error(t, err)

	_, err = SeedEntities([]SeedCategory{
		{Name: "A", Percentage: decimal.NewFromInt(70)},
		{Name: "B", Percentage: decimal.NewFromInt(40)},
	}, time.Now())
	assert.ErrorContains(t, err, `"B"`)
}

func TestPrepare_SeedsOnce(t *testing.T) {
	database, err := Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	require.NoError(t, database.Prepare(ctx, ""))
	require.NoError(t, database.Prepare(ctx, ""))

	var count int64
	require.NoError(t, database.DB().Model(&model.CategoryModel{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
	assert.True(t, database.HealthCheck())
}
