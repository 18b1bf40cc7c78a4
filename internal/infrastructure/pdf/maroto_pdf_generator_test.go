package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	fifo "github.com/jhoicas/fifo-ledger/internal/domain/inventory"
)

func sampleWorksheet(t *testing.T) appinventory.Worksheet {
	t.Helper()
	d := func(m time.Month, day int) time.Time { return time.Date(2024, m, day, 0, 0, 0, 0, time.UTC) }
	res, err := fifo.Apply(nil, []entity.Transaction{
		entity.Addition(d(1, 2), 100, decimal.NewFromInt(10)),
		entity.Addition(d(1, 5), 50, decimal.NewFromInt(12)),
		entity.Withdrawal(d(1, 9), 120),
	}, fifo.Options{Trace: true})
	require.NoError(t, err)
	ws := appinventory.BuildWorksheet(res, "Kartu Persediaan FIFO", "PT Contoh", "IDR", d(2, 1))
	ws.ID = "0b7c6a0e-1111-2222-3333-444455556666"
	return ws
}

func TestGenerateLedgerPDF(t *testing.T) {
	data, err := NewMarotoPDFGenerator().GenerateLedgerPDF(context.Background(), sampleWorksheet(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateLedgerPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoPDFGenerator().GenerateLedgerPDF(ctx, sampleWorksheet(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLotLines(t *testing.T) {
	assert.Equal(t, []string{"-"}, lotLines(nil))
	assert.Equal(t, []string{"30 @ 12.00", "5 @ 0.33"}, lotLines(entity.Ledger{
		{Quantity: 30, UnitCost: decimal.NewFromInt(12)},
		{Quantity: 5, UnitCost: decimal.RequireFromString("0.333")},
	}))
}

func TestNewAmountFormatter_MonedaDesconocida(t *testing.T) {
	f := newAmountFormatter("XXX-NO")
	assert.Equal(t, "1240.50", f(decimal.RequireFromString("1240.5")))
}
