package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/envelope-ledger/backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first day to include, YYYY-MM-DD")
	cmd.Flags().String("to", "", "last day to include, YYYY-MM-DD")
	cmd.Flags().String("search", "", "only notes containing this text")
}

func filterFlags(cmd *cobra.Command) (entity.TransactionFilter, error) {
	var filter entity.TransactionFilter

	from, err := dateFlag(cmd, "from", false)
	if err != nil {
		return filter, err
	}
	to, err := dateFlag(cmd, "to", true)
	if err != nil {
		return filter, err
	}
	filter.StartDate = from
	filter.EndDate = to
	filter.Search, _ = cmd.Flags().GetString("search")

	return filter, nil
}

// dateFlag parses a YYYY-MM-DD flag. With endOfDay the result is the last
// instant of that day so the whole day is included.
func dateFlag(cmd *cobra.Command, name string, endOfDay bool) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", name, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
