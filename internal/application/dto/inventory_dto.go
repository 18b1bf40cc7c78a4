package dto

import "github.com/shopspring/decimal"

// LotDTO lote del libro FIFO.
type LotDTO struct {
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// TransactionDTO transacción FIFO. Date en formato YYYY-MM-DD (también se acepta RFC3339).
// Kind: "addition" | "withdrawal". UnitCost obligatorio solo en "addition".
type TransactionDTO struct {
	Date     string           `json:"date"`
	Kind     string           `json:"kind"`
	Quantity int64            `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// CalculateRequest body para POST /api/fifo/calculate.
type CalculateRequest struct {
	OpeningLots  []LotDTO         `json:"opening_lots"`
	Transactions []TransactionDTO `json:"transactions"`
	IncludeTrace bool             `json:"include_trace"`
}

// AddTransactionRequest body para POST /api/fifo/transactions.
type AddTransactionRequest struct {
	OpeningLots  []LotDTO         `json:"opening_lots"`
	Transactions []TransactionDTO `json:"transactions"`
	Candidate    TransactionDTO   `json:"candidate"`
}

// RemoveTransactionRequest body para DELETE /api/fifo/transactions/:index.
type RemoveTransactionRequest struct {
	OpeningLots  []LotDTO         `json:"opening_lots"`
	Transactions []TransactionDTO `json:"transactions"`
}

// ExportRequest body para POST /api/fifo/export/{xlsx,pdf}.
type ExportRequest struct {
	OpeningLots  []LotDTO         `json:"opening_lots"`
	Transactions []TransactionDTO `json:"transactions"`
	Title        string           `json:"title,omitempty"`
}

// StepDTO fila del kartu persediaan: estado del libro después de una transacción.
type StepDTO struct {
	Index            int             `json:"index"` // posición en la lista enviada
	Description      string          `json:"description"`
	Date             string          `json:"date"`
	QuantityDelta    int64           `json:"quantity_delta"` // positivo entrada, negativo salida
	CostOfWithdrawal decimal.Decimal `json:"cost_of_withdrawal"`
	Lots             []LotDTO        `json:"lots"`
	TotalQuantity    int64           `json:"total_quantity"`
	TotalValue       decimal.Decimal `json:"total_value"`
}

// ResultDTO resultado de una corrida. Montos redondeados a 2 decimales.
type ResultDTO struct {
	EndingLots             []LotDTO        `json:"ending_lots"`
	TotalQuantity          int64           `json:"total_quantity"`
	TotalValue             decimal.Decimal `json:"total_value"`
	TotalCostOfWithdrawals decimal.Decimal `json:"total_cost_of_withdrawals"`
	AverageUnitCost        decimal.Decimal `json:"average_unit_cost"` // informativo
	Steps                  []StepDTO       `json:"steps,omitempty"`
}

// TransactionListResponse lista aceptada tras agregar o eliminar una transacción.
type TransactionListResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
	Result       ResultDTO        `json:"result"`
}

// ImportResponse transacciones leídas de una hoja de cálculo.
type ImportResponse struct {
	Total        int              `json:"total"`
	Transactions []TransactionDTO `json:"transactions"`
}
