// Package testutil provides helpers shared by store-backed tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/envelope-ledger/backend/internal/domain/valueobject"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

// SetupTestDB opens a private in-memory SQLite database with the schema migrated.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	dbSQL, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	dbSQL.SetMaxOpenConns(1)

	gdb, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		_ = dbSQL.Close()
	})

	return gdb
}

// CreateCategory inserts a category row directly and returns its ID.
func CreateCategory(t *testing.T, gdb *gorm.DB, name, percentage, balance string) int64 {
	t.Helper()

	row := &model.CategoryModel{
		Name:         name,
		PercentageBP: valueobject.ToBasisPoints(decimal.RequireFromString(percentage)),
		BalanceCents: valueobject.ToMinorUnits(decimal.RequireFromString(balance)),
	}
	require.NoError(t, gdb.Create(row).Error)
	return row.ID
}

// CategoryBalance reads the stored balance of a category.
func CategoryBalance(t *testing.T, gdb *gorm.DB, id int64) decimal.Decimal {
	t.Helper()

	var row model.CategoryModel
	require.NoError(t, gdb.First(&row, "id = ?", id).Error)
	return valueobject.FromMinorUnits(row.BalanceCents)
}

// CountRows returns the number of rows in the table backing m.
func CountRows(t *testing.T, gdb *gorm.DB, m interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, gdb.Model(m).Count(&count).Error)
	return count
}
