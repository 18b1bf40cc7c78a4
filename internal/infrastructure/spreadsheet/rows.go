// Package spreadsheet lee transacciones FIFO desde hojas xlsx y csv y exporta el
// kartu persediaan a xlsx.
package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
)

// column índice lógico de una columna de la hoja.
type column int

const (
	colDate column = iota
	colKind
	colQuantity
	colUnitCost
)

var columnNames = map[column]string{
	colDate:     "date",
	colKind:     "kind",
	colQuantity: "quantity",
	colUnitCost: "unit_cost",
}

// Encabezados aceptados (minúsculas, sin espacios extremos).
var headerAliases = map[string]column{
	"tanggal":   colDate,
	"date":      colDate,
	"jenis":     colKind,
	"mutasi":    colKind,
	"kind":      colKind,
	"unit":      colQuantity,
	"jumlah":    colQuantity,
	"quantity":  colQuantity,
	"nilai":     colUnitCost,
	"unit cost": colUnitCost,
	"unit_cost": colUnitCost,
	"harga":     colUnitCost,
}

var kindAliases = map[string]entity.TransactionKind{
	"tambah":     entity.KindAddition,
	"addition":   entity.KindAddition,
	"pembelian":  entity.KindAddition,
	"masuk":      entity.KindAddition,
	"in":         entity.KindAddition,
	"kurang":     entity.KindWithdrawal,
	"withdrawal": entity.KindWithdrawal,
	"penjualan":  entity.KindWithdrawal,
	"keluar":     entity.KindWithdrawal,
	"out":        entity.KindWithdrawal,
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseRecords convierte las filas crudas (primera fila no vacía = encabezado).
// Los errores llevan el número de fila de la hoja (base 1): lines[i] si se indica,
// i+1 si lines es nil.
func parseRecords(records [][]string, lines []int, date1904 bool) ([]entity.Transaction, error) {
	headerAt := -1
	for i, rec := range records {
		if !isBlank(rec) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, domain.NewValidationError(-1, "file", "la hoja está vacía")
	}
	cols, err := mapHeader(records[headerAt])
	if err != nil {
		return nil, err
	}

	out := make([]entity.Transaction, 0, len(records)-headerAt-1)
	for i := headerAt + 1; i < len(records); i++ {
		rec := records[i]
		if isBlank(rec) {
			continue
		}
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		tx, err := parseRow(rec, cols, line, date1904)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

func mapHeader(header []string) (map[column]int, error) {
	cols := make(map[column]int, len(columnNames))
	for i, h := range header {
		c, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := cols[c]; !dup {
			cols[c] = i
		}
	}
	for _, required := range []column{colDate, colKind, colQuantity} {
		if _, ok := cols[required]; !ok {
			return nil, domain.NewValidationError(-1, columnNames[required], "columna requerida ausente en el encabezado")
		}
	}
	return cols, nil
}

func parseRow(rec []string, cols map[column]int, line int, date1904 bool) (entity.Transaction, error) {
	cell := func(c column) string {
		i, ok := cols[c]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	rowErr := func(c column, msg string) error {
		return domain.NewValidationError(-1, fmt.Sprintf("fila %d: %s", line, columnNames[c]), msg)
	}

	date, err := parseDate(cell(colDate), date1904)
	if err != nil {
		return entity.Transaction{}, rowErr(colDate, fmt.Sprintf("fecha ilegible %q", cell(colDate)))
	}
	kind, ok := kindAliases[strings.ToLower(cell(colKind))]
	if !ok {
		return entity.Transaction{}, rowErr(colKind, fmt.Sprintf("tipo desconocido %q (esperado Tambah o Kurang)", cell(colKind)))
	}
	qty, err := parseQuantity(cell(colQuantity))
	if err != nil {
		return entity.Transaction{}, rowErr(colQuantity, err.Error())
	}

	tx := entity.Transaction{Date: date, Kind: kind, Quantity: qty}
	if kind == entity.KindAddition {
		raw := cell(colUnitCost)
		if raw == "" {
			return entity.Transaction{}, rowErr(colUnitCost, "requerido para una entrada")
		}
		cost, err := parseAmount(raw)
		if err != nil {
			return entity.Transaction{}, rowErr(colUnitCost, fmt.Sprintf("monto ilegible %q", raw))
		}
		tx.UnitCost = &cost
	}
	return tx, nil
}

// parseDate acepta los layouts conocidos y números seriales de Excel.
func parseDate(s string, date1904 bool) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial <= 0 {
		return time.Time{}, fmt.Errorf("fecha ilegible %q", s)
	}
	d, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return time.Time{}, err
	}
	return d.Truncate(24 * time.Hour), nil
}

// parseQuantity exige un entero; "12.0" se acepta, "12.5" no.
func parseQuantity(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("requerido")
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return 0, fmt.Errorf("cantidad ilegible %q", s)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("la cantidad debe ser entera, se recibió %s", s)
	}
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("cantidad fuera de rango %s", s)
	}
	return d.IntPart(), nil
}

// parseAmount acepta punto o coma como separador decimal ("12.5" o "12,5").
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
