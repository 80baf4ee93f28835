package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

// Seeder inserts the default categories into an empty store.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new Seeder.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Seed inserts categories only when the categories table is empty.
// It returns the number of rows inserted.
func (s *Seeder) Seed(ctx context.Context, categories []*entity.Category) (int, error) {
	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.CategoryModel{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count categories: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, category := range categories {
			categoryModel := model.CategoryFromEntity(category)
			if err := tx.Create(categoryModel).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
			}
			category.ID = categoryModel.ID
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		slog.Info("Seeded default categories", "count", inserted)
	}
	return inserted, nil
}
