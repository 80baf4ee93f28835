// Package export renders ledger records into downloadable documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// DateLayout is the calendar date format used in exported files.
const DateLayout = "2006-01-02"

// transactionRow is the CSV shape of one transaction.
type transactionRow struct {
	ID       int64  `csv:"id"`
	Date     string `csv:"date"`
	Type     string `csv:"type"`
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
	Note     string `csv:"note"`
}

// CSVExporter writes transactions as comma separated values with a header row.
type CSVExporter struct {
	delimiter rune
}

// NewCSVExporter creates a CSV exporter. A zero delimiter means ','.
func NewCSVExporter(delimiter rune) adapter.TransactionExporter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVExporter{delimiter: delimiter}
}

// ContentType returns the MIME type of CSV documents.
func (e *CSVExporter) ContentType() string {
	return "text/csv"
}

// Export writes every transaction in the given order.
func (e *CSVExporter) Export(w io.Writer, transactions []*entity.Transaction) error {
	rows := make([]*transactionRow, len(transactions))
	for i, txn := range transactions {
		rows[i] = &transactionRow{
			ID:       txn.ID,
			Date:     txn.Date.UTC().Format(DateLayout),
			Type:     string(txn.Type),
			Category: txn.CategoryName,
			Amount:   txn.Amount.StringFixed(2),
			Note:     txn.Note,
		}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
