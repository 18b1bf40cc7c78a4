package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fifo-ledger/internal/application/dto"
	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	fifo "github.com/jhoicas/fifo-ledger/internal/domain/inventory"
)

func TestToTransaction(t *testing.T) {
	tx, err := inventory.ToTransaction(0, dto.TransactionDTO{Date: "2024-03-01T10:00:00Z", Kind: " WITHDRAWAL ", Quantity: 4, UnitCost: costPtr("9")})
	require.NoError(t, err)
	assert.Equal(t, entity.KindWithdrawal, tx.Kind)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), tx.Date)
	assert.Nil(t, tx.UnitCost, "el costo de una salida se ignora")

	in := costPtr("2.5")
	tx, err = inventory.ToTransaction(0, dto.TransactionDTO{Date: "2024-03-01", Kind: "addition", Quantity: 1, UnitCost: in})
	require.NoError(t, err)
	*in = decimal.NewFromInt(99)
	assert.True(t, tx.UnitCost.Equal(decimal.RequireFromString("2.5")), "el costo se copia, no se comparte")
}

func TestToTransactions_IndiceEnError(t *testing.T) {
	_, err := inventory.ToTransactions([]dto.TransactionDTO{
		{Date: "2024-01-01", Kind: "addition", Quantity: 1, UnitCost: costPtr("1")},
		{Date: "ayer", Kind: "withdrawal", Quantity: 1},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Index)
}

func TestFromTransactions(t *testing.T) {
	out := inventory.FromTransactions([]entity.Transaction{
		entity.Addition(day(1, 2), 5, decimal.RequireFromString("1.25")),
		entity.Withdrawal(day(1, 3), 2),
	})
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-02", out[0].Date)
	assert.Equal(t, "addition", out[0].Kind)
	require.NotNil(t, out[0].UnitCost)
	assert.Nil(t, out[1].UnitCost)
}

func TestFromResult_SinTrazaOmitePasos(t *testing.T) {
	res, err := fifo.Apply(nil, []entity.Transaction{entity.Addition(day(1, 1), 2, decimal.NewFromInt(5))}, fifo.Options{})
	require.NoError(t, err)
	out := inventory.FromResult(res)
	assert.Nil(t, out.Steps)
	assert.True(t, out.AverageUnitCost.Equal(decimal.NewFromInt(5)))
}

func TestFromMovements(t *testing.T) {
	moves := []*entity.InventoryMovement{
		{ID: "a", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(3), Date: day(1, 1)},
		{ID: "b", Type: entity.MovementTypeADJUSTMENT, Quantity: decimal.NewFromInt(-2), Date: day(1, 2)},
		{ID: "c", Type: entity.MovementTypeADJUSTMENT, Quantity: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(4), Date: day(1, 3)},
		{ID: "d", Type: entity.MovementTypeOUT, Quantity: decimal.Zero, Date: day(1, 4)},
		nil,
		{ID: "e", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(-5), Date: day(1, 5)},
	}
	txs, err := inventory.FromMovements(moves)
	require.NoError(t, err)
	require.Len(t, txs, 4, "cantidad 0 y nil se omiten")

	assert.Equal(t, entity.KindAddition, txs[0].Kind)
	assert.Equal(t, entity.KindWithdrawal, txs[1].Kind)
	assert.Equal(t, int64(2), txs[1].Quantity)
	assert.Equal(t, entity.KindAddition, txs[2].Kind)
	assert.True(t, txs[2].UnitCost.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, int64(5), txs[3].Quantity)
}

func TestFromMovements_Rechazos(t *testing.T) {
	_, err := inventory.FromMovements([]*entity.InventoryMovement{
		{ID: "x", Type: entity.MovementTypeIN, Quantity: decimal.RequireFromString("1.5"), Date: day(1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.FromMovements([]*entity.InventoryMovement{
		{ID: "z", Type: entity.MovementTypeOUT, Quantity: decimal.Zero, Date: day(1, 1)},
		{ID: "y", Type: "TRANSFER", Quantity: decimal.NewFromInt(1), Date: day(1, 1)},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, -1, ve.Index, "la posición del movimiento no es un índice de transacción")
	assert.Equal(t, "movimiento y: type", ve.Field)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-01-02", inventory.FormatDate(day(1, 2)))
	assert.Equal(t, "2024-01-02T09:30:00Z", inventory.FormatDate(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02T09:30:00.5Z", inventory.FormatDate(time.Date(2024, 1, 2, 9, 30, 0, 5e8, time.UTC)))

	wib := time.FixedZone("WIB", 7*3600)
	assert.Equal(t, "2024-01-02T00:00:00+07:00", inventory.FormatDate(time.Date(2024, 1, 2, 0, 0, 0, 0, wib)))
}

func TestBuildWorksheet(t *testing.T) {
	res, err := fifo.Apply(entity.Ledger{{Quantity: 100, UnitCost: decimal.NewFromInt(10)}}, []entity.Transaction{
		entity.Addition(day(1, 2), 50, decimal.NewFromInt(12)),
		entity.Withdrawal(day(1, 3), 120),
	}, fifo.Options{Trace: true})
	require.NoError(t, err)

	generated := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	ws := inventory.BuildWorksheet(res, "Kartu", "PT Contoh", "IDR", generated)
	require.Len(t, ws.Rows, 4)

	opening := ws.Rows[0]
	assert.Equal(t, inventory.DescOpening, opening.Description)
	assert.True(t, opening.Date.IsZero())
	assert.Equal(t, int64(100), opening.TotalQuantity)
	assert.True(t, opening.TotalValue.Equal(decimal.NewFromInt(1000)))

	withdrawal := ws.Rows[2]
	assert.Equal(t, "Kurang 120 unit", withdrawal.Description)
	assert.Equal(t, int64(-120), withdrawal.QuantityDelta)
	assert.True(t, withdrawal.CostOfWithdrawal.Equal(decimal.NewFromInt(1240)))
	require.Len(t, withdrawal.Lots, 1)
	assert.Equal(t, int64(30), withdrawal.Lots[0].Quantity)

	closing := ws.Rows[3]
	assert.Equal(t, inventory.DescClosing, closing.Description)
	assert.True(t, closing.TotalValue.Equal(decimal.NewFromInt(360)))
	assert.True(t, closing.CostOfWithdrawal.Equal(decimal.NewFromInt(1240)))
	assert.True(t, ws.AverageCost.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, generated, ws.GeneratedAt)
}
