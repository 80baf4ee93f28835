package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/envelope-ledger/backend/internal/application/usecase/transaction"
	"github.com/envelope-ledger/backend/internal/integration/persistence"
)

func (c *cli) summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and net totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := filterFlags(cmd)
			if err != nil {
				return err
			}

			s, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			uc := transaction.NewSummarizeTransactionsUseCase(persistence.NewTransactionRepository(s.database.DB()), s.cache)
			summary, err := uc.Execute(cmd.Context(), filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Income\t%s\n", summary.Income.StringFixed(2))
			fmt.Fprintf(w, "Expense\t%s\n", summary.Expense.StringFixed(2))
			fmt.Fprintf(w, "Net\t%s\n", summary.Net().StringFixed(2))
			return w.Flush()
		},
	}

	addFilterFlags(cmd)
	return cmd
}
