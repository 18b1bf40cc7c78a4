package spreadsheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	appinventory "github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

var _ appinventory.WorksheetParser = (*Parser)(nil)

// Parser implementa inventory.WorksheetParser detectando el formato por extensión.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser { return &Parser{} }

// Parse lee un .xlsx/.xlsm o un .csv.
func (p *Parser) Parse(filename string, r io.Reader) ([]entity.Transaction, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		return ParseWorkbook(r)
	case ".csv", ".txt":
		return ParseCSV(r)
	default:
		return nil, domain.NewValidationError(-1, "file", fmt.Sprintf("formato no soportado %q (use .xlsx o .csv)", ext))
	}
}
