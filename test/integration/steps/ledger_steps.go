package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/internal/domain/valueobject"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

var placeholderPattern = regexp.MustCompile(`\{\{(category|loan):([^}]+)\}\}|\{\{last_transaction_id\}\}`)

// replacePlaceholders resolves {{category:Name}}, {{loan:Name}} and
// {{last_transaction_id}} to row IDs from the store.
func (t *testContext) replacePlaceholders(content string) (string, error) {
	var resolveErr error
	result := placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)

		var (
			id  int64
			err error
		)
		switch parts[1] {
		case "category":
			id, err = t.categoryID(parts[2])
		case "loan":
			id, err = t.loanID(parts[2])
		default:
			err = t.db.DbConn.Model(&model.TransactionModel{}).Select("COALESCE(MAX(id), 0)").Scan(&id).Error
		}
		if err != nil && resolveErr == nil {
			resolveErr = err
		}
		return strconv.FormatInt(id, 10)
	})
	return result, resolveErr
}

func (t *testContext) categoryID(name string) (int64, error) {
	var row model.CategoryModel
	if err := t.db.DbConn.Where("name = ?", name).First(&row).Error; err != nil {
		return 0, fmt.Errorf("category %q: %w", name, err)
	}
	return row.ID, nil
}

func (t *testContext) loanID(name string) (int64, error) {
	var row model.LoanModel
	if err := t.db.DbConn.Where("name = ?", name).First(&row).Error; err != nil {
		return 0, fmt.Errorf("loan %q: %w", name, err)
	}
	return row.ID, nil
}

// theLedgerHasTheCategories inserts categories from a table with the columns
// name, percentage and an optional balance.
func (t *testContext) theLedgerHasTheCategories(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("categories table needs a header and at least one row")
	}

	header := map[string]int{}
	for i, cell := range table.Rows[0].Cells {
		header[cell.Value] = i
	}

	now := time.Now().UTC()
	for _, row := range table.Rows[1:] {
		cell := func(name, fallback string) string {
			if i, ok := header[name]; ok {
				return row.Cells[i].Value
			}
			return fallback
		}

		percentage, err := decimal.NewFromString(cell("percentage", "0"))
		if err != nil {
			return err
		}
		balance, err := decimal.NewFromString(cell("balance", "0"))
		if err != nil {
			return err
		}

		categoryModel := &model.CategoryModel{
			Name:         cell("name", ""),
			PercentageBP: valueobject.ToBasisPoints(percentage),
			BalanceCents: valueobject.ToMinorUnits(balance),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := t.db.DbConn.Create(categoryModel).Error; err != nil {
			return err
		}
	}
	return nil
}

// transactionsWereRecorded inserts history rows without touching balances.
func (t *testContext) transactionsWereRecorded(count int, kind, amount, categoryName, date string) error {
	categoryID, err := t.categoryID(categoryName)
	if err != nil {
		return err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		row := &model.TransactionModel{
			Type:        kind,
			AmountCents: valueobject.ToMinorUnits(value),
			CategoryID:  categoryID,
			Note:        fmt.Sprintf("%s %d", kind, i+1),
			Date:        day,
			CreatedAt:   time.Now().UTC(),
		}
		if err := t.db.DbConn.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}

// aLoanWasTaken inserts an unpaid loan row without touching balances.
func (t *testContext) aLoanWasTaken(name, amount, categoryName string) error {
	categoryID, err := t.categoryID(categoryName)
	if err != nil {
		return err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return t.db.DbConn.Create(&model.LoanModel{
		Name:        name,
		AmountCents: valueobject.ToMinorUnits(value),
		CategoryID:  categoryID,
		Status:      "unpaid",
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error
}

func (t *testContext) theCategoryShouldHaveBalance(name, expected string) error {
	var row model.CategoryModel
	if err := t.db.DbConn.Where("name = ?", name).First(&row).Error; err != nil {
		return fmt.Errorf("category %q: %w", name, err)
	}

	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if actual := valueobject.FromMinorUnits(row.BalanceCents); !actual.Equal(want) {
		return fmt.Errorf("category %q expected balance %s, got %s", name, want, actual)
	}
	return nil
}

func (t *testContext) theLoanShouldHaveStatus(name, expected string) error {
	var row model.LoanModel
	if err := t.db.DbConn.Where("name = ?", name).First(&row).Error; err != nil {
		return fmt.Errorf("loan %q: %w", name, err)
	}
	if row.Status != expected {
		return fmt.Errorf("loan %q expected status %s, got %s", name, expected, row.Status)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}
