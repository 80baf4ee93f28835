package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/config"
)

const foreignKeysPragma = "_pragma=foreign_keys(1)"

// NewSQLiteConnection opens a SQLite database through the pure-Go driver.
// Foreign keys are always enabled and the pool is limited to one connection,
// which also keeps shared in-memory databases alive for the life of the pool.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	dsn := withForeignKeys(cfg.URL)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Debug("Database connection established", "driver", config.DriverSQLite)

	return &Database{
		db:  db,
		cfg: cfg,
	}, nil
}

// withForeignKeys appends the foreign_keys pragma to dsn unless it is already set.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + foreignKeysPragma
	}
	return dsn + "?" + foreignKeysPragma
}
