package dashboard

import (
	"fmt"
	"time"

	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// Period selects which calendar month the overview covers.
type Period string

const (
	PeriodCurrent  Period = "current"
	PeriodPrevious Period = "previous"
)

// ParsePeriod validates a period name. An empty name means the current month.
func ParsePeriod(value string) (Period, error) {
	switch Period(value) {
	case "", PeriodCurrent:
		return PeriodCurrent, nil
	case PeriodPrevious:
		return PeriodPrevious, nil
	default:
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			fmt.Sprintf("unknown period %q, expected current or previous", value),
			domainerror.ErrInvalidDateRange,
		)
	}
}

// MonthBounds returns the first and last instant of the UTC month containing date.
func MonthBounds(date time.Time) (start, end time.Time) {
	date = date.UTC()
	start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// PeriodBounds resolves a period relative to now.
func PeriodBounds(now time.Time, period Period) (start, end time.Time) {
	start, end = MonthBounds(now)
	if period == PeriodPrevious {
		return MonthBounds(start.Add(-time.Nanosecond))
	}
	return start, end
}

// PeriodLabel formats a month as "Jan 2024".
func PeriodLabel(start time.Time) string {
	return start.Format("Jan 2006")
}
