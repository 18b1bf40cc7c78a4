package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	fifo "github.com/jhoicas/fifo-ledger/internal/domain/inventory"
	"github.com/jhoicas/fifo-ledger/pkg/money"
)

// Descripciones (uraian) de las filas del kartu persediaan.
const (
	DescOpening = "Saldo Awal"
	DescClosing = "Saldo Akhir"
)

// WorksheetRow fila del kartu persediaan. Date es cero en saldo inicial y final.
type WorksheetRow struct {
	Description      string
	Date             time.Time
	QuantityDelta    int64
	CostOfWithdrawal decimal.Decimal
	Lots             entity.Ledger
	TotalQuantity    int64
	TotalValue       decimal.Decimal
}

// Worksheet modelo de presentación compartido por los exportadores (xlsx, pdf, CLI).
type Worksheet struct {
	ID          string
	Title       string
	Company     string
	Currency    string
	GeneratedAt time.Time
	Rows        []WorksheetRow
	Result      entity.Result
	AverageCost decimal.Decimal
}

// Describe devuelve la uraian de una transacción.
func Describe(tx entity.Transaction) string {
	if tx.Kind == entity.KindAddition && tx.UnitCost != nil {
		return fmt.Sprintf("Tambah %d unit @ %s", tx.Quantity, money.Fixed(*tx.UnitCost))
	}
	return fmt.Sprintf("Kurang %d unit", tx.Quantity)
}

// QuantityDelta cambio de unidades que aporta la transacción al libro.
func QuantityDelta(tx entity.Transaction) int64 {
	if tx.Kind == entity.KindWithdrawal {
		return -tx.Quantity
	}
	return tx.Quantity
}

// BuildWorksheet arma las filas a partir de un resultado con traza.
// Incluye el saldo inicial, un paso por transacción y el saldo final.
func BuildWorksheet(res entity.Result, title, company, currency string, generatedAt time.Time) Worksheet {
	rows := make([]WorksheetRow, 0, len(res.Steps)+2)
	rows = append(rows, WorksheetRow{
		Description:      DescOpening,
		QuantityDelta:    res.OpeningLots.TotalQuantity(),
		CostOfWithdrawal: decimal.Zero,
		Lots:             res.OpeningLots,
		TotalQuantity:    res.OpeningLots.TotalQuantity(),
		TotalValue:       res.OpeningLots.TotalValue(),
	})
	for _, step := range res.Steps {
		rows = append(rows, WorksheetRow{
			Description:      Describe(step.Transaction),
			Date:             step.Date(),
			QuantityDelta:    QuantityDelta(step.Transaction),
			CostOfWithdrawal: step.CostOfWithdrawal,
			Lots:             step.Lots,
			TotalQuantity:    step.Lots.TotalQuantity(),
			TotalValue:       step.Lots.TotalValue(),
		})
	}
	rows = append(rows, WorksheetRow{
		Description:      DescClosing,
		CostOfWithdrawal: res.TotalCostOfWithdrawals,
		Lots:             res.EndingLots,
		TotalQuantity:    res.TotalQuantity,
		TotalValue:       res.TotalValue,
	})

	return Worksheet{
		Title:       title,
		Company:     company,
		Currency:    currency,
		GeneratedAt: generatedAt,
		Rows:        rows,
		Result:      res,
		AverageCost: fifo.AverageUnitCost(res.EndingLots),
	}
}
