package adapter

import (
	"io"

	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// TransactionExporter serializes transactions into a downloadable document.
type TransactionExporter interface {
	Export(w io.Writer, transactions []*entity.Transaction) error
	// ContentType is the MIME type of the produced document.
	ContentType() string
}
