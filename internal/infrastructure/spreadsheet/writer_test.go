package spreadsheet

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appinventory "github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	fifo "github.com/jhoicas/fifo-ledger/internal/domain/inventory"
)

func TestWriteWorkbook(t *testing.T) {
	res, err := fifo.Apply(nil, []entity.Transaction{
		entity.Addition(day(2024, 1, 2), 100, decimal.NewFromInt(10)),
		entity.Addition(day(2024, 1, 5), 50, decimal.NewFromInt(12)),
		entity.Withdrawal(day(2024, 1, 9), 120),
	}, fifo.Options{Trace: true})
	require.NoError(t, err)
	ws := appinventory.BuildWorksheet(res, "Kartu Persediaan FIFO", "PT Contoh", "IDR", day(2024, 2, 1))

	data, err := NewWorkbookWriter().WriteWorkbook(context.Background(), ws)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetLedger, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetLedger, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	// encabezado + saldo awal + 3 pasos + saldo akhir
	require.Len(t, rows, 6)
	assert.Equal(t, "Uraian", rows[0][1])
	assert.Equal(t, appinventory.DescOpening, rows[1][1])
	assert.Equal(t, "Tambah 100 unit @ 10.00", rows[2][1])
	assert.Equal(t, "Kurang 120 unit", rows[4][1])
	assert.Equal(t, "-120", rows[4][2])
	assert.Equal(t, "1240", rows[4][3])
	assert.Equal(t, "30 @ 12.00", rows[4][4])
	assert.Equal(t, appinventory.DescClosing, rows[5][1])
	assert.Equal(t, "30", rows[5][5])
	assert.Equal(t, "360", rows[5][6])

	total, err := f.GetCellValue(SheetSummary, "B7", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1240", total)
}

func TestWriteWorkbook_LotesMultiples(t *testing.T) {
	row := appinventory.WorksheetRow{Lots: entity.Ledger{
		{Quantity: 10, UnitCost: decimal.NewFromInt(1)},
		{Quantity: 5, UnitCost: decimal.NewFromInt(2)},
	}}
	assert.Equal(t, "10 @ 1.00\n5 @ 2.00", lotsCell(row))
	assert.Equal(t, "-", lotsCell(appinventory.WorksheetRow{}))
}
