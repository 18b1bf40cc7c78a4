package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/fifo-ledger/internal/application/dto"
	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	fifo "github.com/jhoicas/fifo-ledger/internal/domain/inventory"
	"github.com/jhoicas/fifo-ledger/pkg/money"
)

// DateLayout formato de fecha en JSON. Las fechas con hora se devuelven en RFC3339
// para que una lista reenviada conserve su orden cronológico.
const DateLayout = "2006-01-02"

// ToLedger convierte los lotes iniciales del request.
func ToLedger(in []dto.LotDTO) entity.Ledger {
	out := make(entity.Ledger, 0, len(in))
	for _, l := range in {
		out = append(out, entity.Lot{Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	return out
}

// ToTransactions convierte las transacciones del request. Solo falla por fechas o tipos
// ilegibles; el resto de la validación es del motor.
func ToTransactions(in []dto.TransactionDTO) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, 0, len(in))
	for i, t := range in {
		tx, err := ToTransaction(i, t)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

// ToTransaction convierte una transacción; index se usa en el mensaje de error.
func ToTransaction(index int, t dto.TransactionDTO) (entity.Transaction, error) {
	date, err := parseDate(t.Date)
	if err != nil {
		return entity.Transaction{}, domain.NewValidationError(index, "date", "formato esperado YYYY-MM-DD")
	}
	tx := entity.Transaction{
		Date:     date,
		Kind:     entity.TransactionKind(strings.ToLower(strings.TrimSpace(t.Kind))),
		Quantity: t.Quantity,
	}
	if t.UnitCost != nil && tx.Kind == entity.KindAddition {
		c := *t.UnitCost
		tx.UnitCost = &c
	}
	return tx, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatDate devuelve YYYY-MM-DD si d es medianoche UTC y RFC3339 con fracción en otro caso.
func FormatDate(d time.Time) string {
	if d.Location() == time.UTC && d.Equal(d.Truncate(24*time.Hour)) {
		return d.Format(DateLayout)
	}
	return d.Format(time.RFC3339Nano)
}

// FromTransactions convierte la lista aceptada para la respuesta.
func FromTransactions(in []entity.Transaction) []dto.TransactionDTO {
	out := make([]dto.TransactionDTO, 0, len(in))
	for _, tx := range in {
		t := dto.TransactionDTO{
			Date:     FormatDate(tx.Date),
			Kind:     string(tx.Kind),
			Quantity: tx.Quantity,
		}
		if tx.Kind == entity.KindAddition && tx.UnitCost != nil {
			c := *tx.UnitCost
			t.UnitCost = &c
		}
		out = append(out, t)
	}
	return out
}

// FromLedger convierte lotes para la respuesta (costos unitarios sin redondear).
func FromLedger(in entity.Ledger) []dto.LotDTO {
	out := make([]dto.LotDTO, 0, len(in))
	for _, l := range in {
		out = append(out, dto.LotDTO{Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	return out
}

// FromResult arma la respuesta; aquí se redondean los montos.
func FromResult(res entity.Result) dto.ResultDTO {
	out := dto.ResultDTO{
		EndingLots:             FromLedger(res.EndingLots),
		TotalQuantity:          res.TotalQuantity,
		TotalValue:             money.Round(res.TotalValue),
		TotalCostOfWithdrawals: money.Round(res.TotalCostOfWithdrawals),
		AverageUnitCost:        money.Round(fifo.AverageUnitCost(res.EndingLots)),
	}
	for _, step := range res.Steps {
		out.Steps = append(out.Steps, dto.StepDTO{
			Index:            step.Index,
			Description:      Describe(step.Transaction),
			Date:             FormatDate(step.Date()),
			QuantityDelta:    QuantityDelta(step.Transaction),
			CostOfWithdrawal: money.Round(step.CostOfWithdrawal),
			Lots:             FromLedger(step.Lots),
			TotalQuantity:    step.Lots.TotalQuantity(),
			TotalValue:       money.Round(step.Lots.TotalValue()),
		})
	}
	return out
}
