package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/application/usecase/ledger"
	"github.com/envelope-ledger/backend/internal/integration/persistence"
)

func (c *cli) splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <amount>",
		Short: "Split income across all categories by percentage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			note, _ := cmd.Flags().GetString("note")
			date, err := dateFlag(cmd, "date", false)
			if err != nil {
				return err
			}

			s, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			uc := ledger.NewSplitIncomeUseCase(s.unitOfWork(), adapter.SystemClock{})
			output, err := uc.Execute(cmd.Context(), ledger.SplitIncomeInput{
				Amount: amount,
				Note:   note,
				Date:   date,
			})
			if err != nil {
				return err
			}

			categories, err := persistence.NewCategoryRepository(s.database.DB()).List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			names := make(map[int64]string, len(categories))
			for _, cat := range categories {
				names[cat.ID] = cat.Name
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSHARE")
			for _, share := range output.Shares {
				fmt.Fprintf(w, "%s\t%s\n", names[share.CategoryID], share.Amount.StringFixed(2))
			}
			fmt.Fprintf(w, "TOTAL\t%s\n", output.Amount.StringFixed(2))
			return w.Flush()
		},
	}

	cmd.Flags().String("note", "", "transaction note (default: \"Global income\")")
	cmd.Flags().String("date", "", "transaction date, YYYY-MM-DD (default: today)")

	return cmd
}
