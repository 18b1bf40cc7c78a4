package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// WorksheetParser lee transacciones desde un archivo tabular (xlsx o csv).
// filename se usa solo para detectar el formato por extensión.
type WorksheetParser interface {
	Parse(filename string, r io.Reader) ([]entity.Transaction, error)
}

// WorkbookWriter exporta el kartu persediaan como libro de cálculo.
type WorkbookWriter interface {
	WriteWorkbook(ctx context.Context, ws Worksheet) ([]byte, error)
}

// LedgerPDFGenerator exporta el kartu persediaan como PDF.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, ws Worksheet) ([]byte, error)
}
