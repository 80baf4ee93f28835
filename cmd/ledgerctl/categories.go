package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/envelope-ledger/backend/internal/application/usecase/category"
	"github.com/envelope-ledger/backend/internal/integration/persistence"
)

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their balances and allocation status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			uc := category.NewListCategoriesUseCase(persistence.NewCategoryRepository(s.database.DB()))
			output, err := uc.Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(output.Categories) == 0 {
				fmt.Fprintln(out, "No categories found. Run 'ledgerctl migrate' to seed the defaults.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPERCENTAGE\tBALANCE")
			for _, cat := range output.Categories {
				fmt.Fprintf(w, "%d\t%s\t%s%%\t%s\n", cat.ID, cat.Name, cat.Percentage.StringFixed(2), cat.Balance.StringFixed(2))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			status := output.Allocation
			if status.Complete {
				fmt.Fprintf(out, "\nAllocated %s%%\n", status.TotalPercentage.StringFixed(2))
			} else {
				fmt.Fprintf(out, "\nAllocated %s%%, %s%% left to assign\n",
					status.TotalPercentage.StringFixed(2), status.Deficit.StringFixed(2))
			}
			return nil
		},
	}
}
