package transaction

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

const exportBatchSize = 500

// ExportTransactionsInput represents the input for a transaction export.
type ExportTransactionsInput struct {
	Filter entity.TransactionFilter
}

// ExportTransactionsOutput represents the output of a transaction export.
type ExportTransactionsOutput struct {
	Rows int
}

// ExportTransactionsUseCase writes every transaction matching a filter to a writer.
type ExportTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	exporter        adapter.TransactionExporter
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	exporter adapter.TransactionExporter,
) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		transactionRepo: transactionRepo,
		exporter:        exporter,
	}
}

// Execute performs the export in the same order as the listing.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ExportTransactionsInput, w io.Writer) (*ExportTransactionsOutput, error) {
	if err := validateFilter(input.Filter); err != nil {
		return nil, err
	}

	var all []*entity.Transaction
	for offset := 0; ; offset += exportBatchSize {
		batch, err := uc.transactionRepo.List(ctx, input.Filter, entity.Page{Limit: exportBatchSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		all = append(all, batch...)
		if len(batch) < exportBatchSize {
			break
		}
	}

	if err := uc.exporter.Export(w, all); err != nil {
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}

	slog.Info("Transactions exported", "rows", len(all))

	return &ExportTransactionsOutput{Rows: len(all)}, nil
}
