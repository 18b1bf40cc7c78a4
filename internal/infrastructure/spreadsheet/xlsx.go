package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// ParseWorkbook lee transacciones de la primera hoja de un xlsx con encabezado.
// Las celdas se leen crudas: una fecha con formato llega como número serial.
func ParseWorkbook(r io.Reader) ([]entity.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError(-1, "file", fmt.Sprintf("xlsx inválido: %v", err))
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError(-1, "file", "el libro no tiene hojas")
	}
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return parseRecords(records, nil, uses1904(f))
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}
