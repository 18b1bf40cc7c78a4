package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fifo-ledger/internal/application/dto"
	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	"github.com/jhoicas/fifo-ledger/internal/domain/repository"
	"github.com/jhoicas/fifo-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovements struct {
	list []*entity.InventoryMovement
	err  error
	gotW string
}

func (f *fakeMovements) ListForProduct(_ context.Context, _ string, warehouseID string) ([]*entity.InventoryMovement, error) {
	f.gotW = warehouseID
	return f.list, f.err
}

type fakeParser struct {
	txs []entity.Transaction
	err error
}

func (f *fakeParser) Parse(_ string, _ io.Reader) ([]entity.Transaction, error) {
	return f.txs, f.err
}

type fakeWriter struct {
	got inventory.Worksheet
}

func (f *fakeWriter) WriteWorkbook(_ context.Context, ws inventory.Worksheet) ([]byte, error) {
	f.got = ws
	return []byte("xlsx"), nil
}

func (f *fakeWriter) GenerateLedgerPDF(_ context.Context, ws inventory.Worksheet) ([]byte, error) {
	f.got = ws
	return []byte("pdf"), nil
}

func day(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

func costPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var scenario = []dto.TransactionDTO{
	{Date: "2024-01-02", Kind: "addition", Quantity: 100, UnitCost: costPtr("10")},
	{Date: "2024-01-05", Kind: "Addition", Quantity: 50, UnitCost: costPtr("12")},
	{Date: "2024-01-09", Kind: "withdrawal", Quantity: 120},
}

func newUseCase(movements *fakeMovements, parser *fakeParser, w *fakeWriter, cfg inventory.LedgerConfig) *inventory.LedgerUseCase {
	var repo repository.InventoryMovementRepository
	if movements != nil {
		repo = movements
	}
	if parser == nil {
		parser = &fakeParser{}
	}
	if w == nil {
		w = &fakeWriter{}
	}
	return inventory.NewLedgerUseCase(repo, parser, w, w, cfg, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo y edición
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_RedondeaSoloAlPresentar(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})
	out, err := uc.Calculate(context.Background(), dto.CalculateRequest{
		OpeningLots: []dto.LotDTO{{Quantity: 3, UnitCost: decimal.RequireFromString("0.333333")}},
		Transactions: []dto.TransactionDTO{
			{Date: "2024-01-02", Kind: "withdrawal", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("0.67")), "0.666666 se presenta como 0.67")
	assert.True(t, out.TotalCostOfWithdrawals.Equal(decimal.RequireFromString("0.33")))
	require.Len(t, out.EndingLots, 1)
	assert.True(t, out.EndingLots[0].UnitCost.Equal(decimal.RequireFromString("0.333333")), "el costo unitario no se redondea")
}

func TestCalculate_EscenarioConTraza(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})
	out, err := uc.Calculate(context.Background(), dto.CalculateRequest{Transactions: scenario, IncludeTrace: true})
	require.NoError(t, err)

	assert.Equal(t, int64(30), out.TotalQuantity)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(360)))
	assert.True(t, out.AverageUnitCost.Equal(decimal.NewFromInt(12)))
	require.Len(t, out.Steps, 3)
	assert.Equal(t, "Tambah 50 unit @ 12.00", out.Steps[1].Description)
	assert.Equal(t, int64(-120), out.Steps[2].QuantityDelta)
	assert.True(t, out.Steps[2].CostOfWithdrawal.Equal(decimal.NewFromInt(1240)))
}

func TestCalculate_FechaIlegible(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})
	_, err := uc.Calculate(context.Background(), dto.CalculateRequest{Transactions: []dto.TransactionDTO{
		{Date: "02/01/2024", Kind: "addition", Quantity: 1, UnitCost: costPtr("1")},
	}})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, ve.Index)
	assert.Equal(t, "date", ve.Field)
}

func TestRun_LimiteDeTransacciones(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{MaxTransactions: 2})
	txs := []entity.Transaction{
		entity.Addition(day(1, 1), 1, decimal.NewFromInt(1)),
		entity.Addition(day(1, 2), 1, decimal.NewFromInt(1)),
		entity.Addition(day(1, 3), 1, decimal.NewFromInt(1)),
	}
	_, err := uc.Run(context.Background(), nil, txs, false)
	assert.ErrorIs(t, err, domain.ErrTooManyTransactions)
}

func TestRun_ContextoCancelado(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.Run(ctx, nil, nil, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAddTransaction(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})

	out, err := uc.AddTransaction(context.Background(), dto.AddTransactionRequest{
		Transactions: scenario,
		Candidate:    dto.TransactionDTO{Date: "2024-01-03", Kind: "withdrawal", Quantity: 30},
	})
	require.NoError(t, err, "quedan justo 120 para la salida del 9 de enero")
	require.Len(t, out.Transactions, 4)
	assert.Equal(t, "2024-01-03", out.Transactions[3].Date, "la lista conserva el orden de ingreso")

	// una unidad más deja sin cubrir la salida de 120 del 9 de enero
	_, err = uc.AddTransaction(context.Background(), dto.AddTransactionRequest{
		Transactions: out.Transactions,
		Candidate:    dto.TransactionDTO{Date: "2024-01-04", Kind: "withdrawal", Quantity: 1},
	})
	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Index)
	assert.Equal(t, int64(119), se.Available)
}

func TestAddTransaction_ConservaHoraAlReenviar(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})
	ctx := context.Background()

	// mismo día, orden de ingreso inverso: la salida de las 15:00 va primero y la
	// entrada de las 09:00 llega como candidata
	out, err := uc.AddTransaction(ctx, dto.AddTransactionRequest{
		Transactions: []dto.TransactionDTO{
			{Date: "2024-01-01T15:00:00Z", Kind: "withdrawal", Quantity: 5},
		},
		Candidate: dto.TransactionDTO{Date: "2024-01-01T09:00:00Z", Kind: "addition", Quantity: 5, UnitCost: costPtr("10")},
	})
	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, "2024-01-01T15:00:00Z", out.Transactions[0].Date)
	assert.Equal(t, "2024-01-01T09:00:00Z", out.Transactions[1].Date)

	// la lista devuelta se reenvía tal cual y da el mismo resultado
	again, err := uc.Calculate(ctx, dto.CalculateRequest{Transactions: out.Transactions, IncludeTrace: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.TotalQuantity)
	assert.True(t, decimal.NewFromInt(50).Equal(again.TotalCostOfWithdrawals))
	require.Len(t, again.Steps, 2)
	assert.Equal(t, 1, again.Steps[0].Index)
	assert.Equal(t, "2024-01-01T09:00:00Z", again.Steps[0].Date)
}

func TestAddTransaction_CandidataInvalida(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})
	_, err := uc.AddTransaction(context.Background(), dto.AddTransactionRequest{
		Transactions: scenario,
		Candidate:    dto.TransactionDTO{Date: "2024-01-10", Kind: "addition", Quantity: 5},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 3, ve.Index)
	assert.Equal(t, "unit_cost", ve.Field)
}

func TestRemoveTransaction(t *testing.T) {
	uc := newUseCase(nil, nil, nil, inventory.LedgerConfig{})

	out, err := uc.RemoveTransaction(context.Background(), 2, dto.RemoveTransactionRequest{Transactions: scenario})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 2)
	assert.Equal(t, int64(150), out.Result.TotalQuantity)

	_, err = uc.RemoveTransaction(context.Background(), 0, dto.RemoveTransactionRequest{Transactions: scenario})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.RemoveTransaction(context.Background(), 7, dto.RemoveTransactionRequest{Transactions: scenario})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos almacenados
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateFromMovements(t *testing.T) {
	repo := &fakeMovements{list: []*entity.InventoryMovement{
		{ID: "1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(1), Date: day(1, 1)},
		{ID: "2", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(2), Date: day(1, 2)},
		{ID: "3", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(-12), Date: day(1, 3)},
	}}
	uc := newUseCase(repo, nil, nil, inventory.LedgerConfig{})

	out, err := uc.CalculateFromMovements(context.Background(), "prod-1", "wh-1", false)
	require.NoError(t, err)
	assert.Equal(t, "wh-1", repo.gotW)
	assert.True(t, out.TotalCostOfWithdrawals.Equal(decimal.NewFromInt(14)))
	assert.Equal(t, int64(3), out.TotalQuantity)
}

func TestCalculateFromMovements_Errores(t *testing.T) {
	ctx := context.Background()

	_, err := newUseCase(nil, nil, nil, inventory.LedgerConfig{}).CalculateFromMovements(ctx, "p", "", false)
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = newUseCase(&fakeMovements{}, nil, nil, inventory.LedgerConfig{}).CalculateFromMovements(ctx, " ", "", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newUseCase(&fakeMovements{}, nil, nil, inventory.LedgerConfig{}).CalculateFromMovements(ctx, "p", "", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("conexión perdida")
	_, err = newUseCase(&fakeMovements{err: boom}, nil, nil, inventory.LedgerConfig{}).CalculateFromMovements(ctx, "p", "", false)
	assert.ErrorIs(t, err, boom)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestImportWorksheet(t *testing.T) {
	parser := &fakeParser{txs: []entity.Transaction{
		entity.Addition(day(1, 1), 1, decimal.NewFromInt(3)),
		entity.Withdrawal(day(1, 2), 1),
	}}
	uc := newUseCase(nil, parser, nil, inventory.LedgerConfig{MaxTransactions: 5})

	out, err := uc.ImportWorksheet(context.Background(), "mutasi.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "addition", out.Transactions[0].Kind)
	assert.Nil(t, out.Transactions[1].UnitCost)

	uc = newUseCase(nil, parser, nil, inventory.LedgerConfig{MaxTransactions: 1})
	_, err = uc.ImportWorksheet(context.Background(), "mutasi.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrTooManyTransactions)
}

func TestExport(t *testing.T) {
	w := &fakeWriter{}
	uc := newUseCase(nil, nil, w, inventory.LedgerConfig{Company: "PT Contoh"})

	data, name, err := uc.ExportWorkbook(context.Background(), dto.ExportRequest{Transactions: scenario})
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("xlsx"), data))
	assert.True(t, strings.HasPrefix(name, "kartu-persediaan-"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))

	assert.Equal(t, "Kartu Persediaan FIFO", w.got.Title)
	assert.Equal(t, "PT Contoh", w.got.Company)
	assert.Equal(t, "IDR", w.got.Currency)
	assert.NotEmpty(t, w.got.ID)
	require.Len(t, w.got.Rows, 5, "saldo awal + 3 pasos + saldo akhir")

	_, name, err = uc.ExportPDF(context.Background(), dto.ExportRequest{Transactions: scenario, Title: "Gudang A"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Equal(t, "Gudang A", w.got.Title)

	_, _, err = uc.ExportPDF(context.Background(), dto.ExportRequest{Transactions: []dto.TransactionDTO{
		{Date: "2024-01-01", Kind: "withdrawal", Quantity: 1},
	}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
