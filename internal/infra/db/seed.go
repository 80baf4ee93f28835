package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/envelope-ledger/backend/internal/domain/allocation"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// SeedCategory is one entry of a seed file.
type SeedCategory struct {
	Name       string          `yaml:"name"`
	Percentage decimal.Decimal `yaml:"percentage"`
}

// SeedFile is the YAML document listing the categories created on first start.
type SeedFile struct {
	Categories []SeedCategory `yaml:"categories"`
}

// DefaultSeedCategories returns the six built-in envelopes, summing to 100%.
func DefaultSeedCategories() []SeedCategory {
	return []SeedCategory{
		{Name: "Savings", Percentage: decimal.NewFromInt(10)},
		{Name: "Investments", Percentage: decimal.NewFromInt(15)},
		{Name: "Necessities", Percentage: decimal.NewFromInt(40)},
		{Name: "Education", Percentage: decimal.NewFromInt(15)},
		{Name: "Leisure", Percentage: decimal.NewFromInt(10)},
		{Name: "Giving", Percentage: decimal.NewFromInt(10)},
	}
}

// LoadSeedFile reads seed categories from a YAML file.
// An empty path returns the defaults.
func LoadSeedFile(path string) ([]SeedCategory, error) {
	if path == "" {
		return DefaultSeedCategories(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("seed file %s has no categories", path)
	}
	return file.Categories, nil
}

// SeedEntities validates seed entries against the allocation rules and turns them
// into category entities with a zero balance, created at now.
func SeedEntities(seeds []SeedCategory, now time.Time) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0, len(seeds))
	for _, seed := range seeds {
		name := strings.TrimSpace(seed.Name)
		if name == "" {
			return nil, fmt.Errorf("seed category without a name")
		}
		if err := allocation.ValidatePercentageTotal(categories, nil, seed.Percentage); err != nil {
			return nil, fmt.Errorf("invalid seed category %q: %w", name, err)
		}
		categories = append(categories, entity.NewCategory(name, seed.Percentage, now))
	}
	return categories, nil
}
