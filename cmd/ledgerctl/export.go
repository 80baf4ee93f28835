package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/envelope-ledger/backend/internal/application/usecase/transaction"
	"github.com/envelope-ledger/backend/internal/integration/export"
	"github.com/envelope-ledger/backend/internal/integration/persistence"
)

func (c *cli) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := filterFlags(cmd)
			if err != nil {
				return err
			}
			outPath, _ := cmd.Flags().GetString("out")

			s, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer func() {
					if err := f.Close(); err != nil {
						slog.Error("Failed to close export file", "path", outPath, "error", err)
					}
				}()
				w = f
			}

			uc := transaction.NewExportTransactionsUseCase(
				persistence.NewTransactionRepository(s.database.DB()),
				export.NewCSVExporter(','),
			)
			output, err := uc.Execute(cmd.Context(), transaction.ExportTransactionsInput{Filter: filter}, w)
			if err != nil {
				return err
			}

			if outPath != "" {
				slog.Info("Transactions exported", "path", outPath, "rows", output.Rows)
			}
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("out", "", "write to this file instead of stdout")
	return cmd
}
