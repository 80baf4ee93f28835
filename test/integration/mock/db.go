package mock

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/config"
	"github.com/envelope-ledger/backend/internal/infra/db"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

var once sync.Once
var database *Db

// Db is the in-memory SQLite store shared by every scenario.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	// order lists tables children first so rows can be cleared under foreign keys.
	order []string
}

// NewDb opens the shared in-memory store and migrates the ledger schema.
func NewDb() *Db {
	once.Do(func() {
		database = open()
	})
	return database
}

func open() *Db {
	conn, err := db.NewSQLiteConnection(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:ledger_integration?mode=memory&cache=shared",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := conn.AutoMigrate(model.All()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDbMock := &Db{
		DbConn: conn.DB(),
		models: map[string]any{
			"categories":   &model.CategoryModel{},
			"transactions": &model.TransactionModel{},
			"loans":        &model.LoanModel{},
		},
		order: []string{"transactions", "loans", "categories"},
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB deletes every row and resets the autoincrement counters.
func (d *Db) ClearDB() error {
	for _, table := range d.order {
		if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(d.models[table]).Error; err != nil {
			return err
		}

		err := d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
