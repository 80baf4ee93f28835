package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/envelope-ledger/backend/internal/integration/persistence"
)

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed default categories",
		Long: `Create or update the ledger schema. An empty store is seeded with the
default categories, or with the ones listed in LEDGER_SEED_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			count, err := persistence.NewCategoryRepository(s.database.DB()).Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count categories: %w", err)
			}

			slog.Info("Database ready", "driver", s.cfg.Database.Driver, "categories", count)
			fmt.Fprintf(cmd.OutOrStdout(), "Database ready with %d categories\n", count)
			return nil
		},
	}
}
