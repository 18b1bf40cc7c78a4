package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// ParseCSV lee transacciones de un csv con encabezado. Acepta ',' o ';' como separador
// (se detecta en la primera línea) y un BOM UTF-8 inicial.
func ParseCSV(r io.Reader) ([]entity.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	// encoding/csv salta las líneas en blanco: se guarda la línea real de cada registro.
	var records [][]string
	var lines []int
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewValidationError(-1, "file", fmt.Sprintf("csv inválido: %v", err))
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return parseRecords(records, lines, false)
}

func sniffDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	if sc.Scan() {
		first := sc.Bytes()
		if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
			return ';'
		}
	}
	return ','
}
