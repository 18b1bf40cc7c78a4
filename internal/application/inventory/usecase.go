package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fifo-ledger/internal/application/dto"
	"github.com/jhoicas/fifo-ledger/internal/domain"
	"github.com/jhoicas/fifo-ledger/internal/domain/entity"
	fifo "github.com/jhoicas/fifo-ledger/internal/domain/inventory"
	"github.com/jhoicas/fifo-ledger/internal/domain/repository"
	"github.com/jhoicas/fifo-ledger/pkg/logger"
)

// DefaultMaxTransactions límite por corrida cuando la configuración no define uno.
const DefaultMaxTransactions = 10000

// LedgerConfig parámetros de los casos de uso del kartu persediaan.
type LedgerConfig struct {
	MaxTransactions int    // tope de transacciones por request (protección del API)
	Currency        string // moneda de los reportes (ISO 4217)
	Company         string // encabezado de los reportes
}

// LedgerUseCase orquesta el motor FIFO: cálculo, edición validada de la lista de
// transacciones, importación y exportación. No guarda estado entre llamadas: cada
// request trae su saldo inicial y su lista, y el motor trabaja sobre copias.
type LedgerUseCase struct {
	movements repository.InventoryMovementRepository // opcional (nil = sin base de datos)
	parser    WorksheetParser
	workbook  WorkbookWriter
	pdf       LedgerPDFGenerator
	cfg       LedgerConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso inyectando sus dependencias.
func NewLedgerUseCase(
	movements repository.InventoryMovementRepository,
	parser WorksheetParser,
	workbook WorkbookWriter,
	pdf LedgerPDFGenerator,
	cfg LedgerConfig,
	log *logger.Logger,
) *LedgerUseCase {
	if cfg.MaxTransactions <= 0 {
		cfg.MaxTransactions = DefaultMaxTransactions
	}
	if cfg.Currency == "" {
		cfg.Currency = "IDR"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		movements: movements,
		parser:    parser,
		workbook:  workbook,
		pdf:       pdf,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// Run ejecuta el motor sobre entidades de dominio (usado también por el CLI).
func (uc *LedgerUseCase) Run(ctx context.Context, opening entity.Ledger, txs []entity.Transaction, trace bool) (entity.Result, error) {
	if err := ctx.Err(); err != nil {
		return entity.Result{}, err
	}
	if len(txs) > uc.cfg.MaxTransactions {
		return entity.Result{}, fmt.Errorf("%w: %d transacciones, máximo %d",
			domain.ErrTooManyTransactions, len(txs), uc.cfg.MaxTransactions)
	}
	res, err := fifo.Apply(opening, txs, fifo.Options{Trace: trace})
	if err != nil {
		uc.log.Info().Err(err).Int("transactions", len(txs)).Msg("cálculo FIFO rechazado")
		return entity.Result{}, err
	}
	uc.log.Debug().
		Int("transactions", len(txs)).
		Int("ending_lots", len(res.EndingLots)).
		Int64("total_quantity", res.TotalQuantity).
		Str("total_value", res.TotalValue.String()).
		Str("cost_of_withdrawals", res.TotalCostOfWithdrawals.String()).
		Msg("cálculo FIFO")
	return res, nil
}

// Calculate calcula el resultado de un request JSON.
func (uc *LedgerUseCase) Calculate(ctx context.Context, in dto.CalculateRequest) (dto.ResultDTO, error) {
	txs, err := ToTransactions(in.Transactions)
	if err != nil {
		return dto.ResultDTO{}, err
	}
	res, err := uc.Run(ctx, ToLedger(in.OpeningLots), txs, in.IncludeTrace)
	if err != nil {
		return dto.ResultDTO{}, err
	}
	return FromResult(res), nil
}

// AddTransaction valida la candidata reproduciendo cronológicamente la lista y, si
// se acepta, devuelve la lista nueva con su resultado. Un rechazo deja la lista igual.
func (uc *LedgerUseCase) AddTransaction(ctx context.Context, in dto.AddTransactionRequest) (dto.TransactionListResponse, error) {
	accepted, err := ToTransactions(in.Transactions)
	if err != nil {
		return dto.TransactionListResponse{}, err
	}
	candidate, err := ToTransaction(len(accepted), in.Candidate)
	if err != nil {
		return dto.TransactionListResponse{}, err
	}
	if len(accepted)+1 > uc.cfg.MaxTransactions {
		return dto.TransactionListResponse{}, fmt.Errorf("%w: máximo %d", domain.ErrTooManyTransactions, uc.cfg.MaxTransactions)
	}
	opening := ToLedger(in.OpeningLots)
	next, err := fifo.Accept(opening, accepted, candidate)
	if err != nil {
		uc.log.Info().Err(err).Str("kind", string(candidate.Kind)).Int64("quantity", candidate.Quantity).
			Msg("transacción rechazada")
		return dto.TransactionListResponse{}, err
	}
	res, err := uc.Run(ctx, opening, next, false)
	if err != nil {
		return dto.TransactionListResponse{}, err
	}
	return dto.TransactionListResponse{Transactions: FromTransactions(next), Result: FromResult(res)}, nil
}

// RemoveTransaction elimina la transacción index y recalcula desde el saldo inicial.
func (uc *LedgerUseCase) RemoveTransaction(ctx context.Context, index int, in dto.RemoveTransactionRequest) (dto.TransactionListResponse, error) {
	if err := ctx.Err(); err != nil {
		return dto.TransactionListResponse{}, err
	}
	accepted, err := ToTransactions(in.Transactions)
	if err != nil {
		return dto.TransactionListResponse{}, err
	}
	next, res, err := fifo.Remove(ToLedger(in.OpeningLots), accepted, index)
	if err != nil {
		uc.log.Info().Err(err).Int("index", index).Msg("eliminación rechazada")
		return dto.TransactionListResponse{}, err
	}
	return dto.TransactionListResponse{Transactions: FromTransactions(next), Result: FromResult(res)}, nil
}

// CalculateFromMovements calcula el FIFO de un producto a partir de los movimientos
// almacenados. Devuelve domain.ErrUnavailable si no hay base de datos configurada.
func (uc *LedgerUseCase) CalculateFromMovements(ctx context.Context, productID, warehouseID string, trace bool) (dto.ResultDTO, error) {
	if uc.movements == nil {
		return dto.ResultDTO{}, domain.ErrUnavailable
	}
	if strings.TrimSpace(productID) == "" {
		return dto.ResultDTO{}, domain.NewValidationError(-1, "product_id", "requerido")
	}
	movements, err := uc.movements.ListForProduct(ctx, productID, warehouseID)
	if err != nil {
		return dto.ResultDTO{}, fmt.Errorf("listar movimientos: %w", err)
	}
	if len(movements) == 0 {
		return dto.ResultDTO{}, domain.ErrNotFound
	}
	txs, err := FromMovements(movements)
	if err != nil {
		return dto.ResultDTO{}, err
	}
	res, err := uc.Run(ctx, nil, txs, trace)
	if err != nil {
		return dto.ResultDTO{}, err
	}
	return FromResult(res), nil
}

// ImportWorksheet lee transacciones desde un xlsx o csv subido.
func (uc *LedgerUseCase) ImportWorksheet(_ context.Context, filename string, r io.Reader) (dto.ImportResponse, error) {
	txs, err := uc.parser.Parse(filename, r)
	if err != nil {
		return dto.ImportResponse{}, err
	}
	if len(txs) > uc.cfg.MaxTransactions {
		return dto.ImportResponse{}, fmt.Errorf("%w: %d filas, máximo %d",
			domain.ErrTooManyTransactions, len(txs), uc.cfg.MaxTransactions)
	}
	uc.log.Debug().Str("file", filename).Int("transactions", len(txs)).Msg("hoja importada")
	return dto.ImportResponse{Total: len(txs), Transactions: FromTransactions(txs)}, nil
}

// BuildWorksheet calcula con traza y arma el modelo de presentación.
func (uc *LedgerUseCase) BuildWorksheet(ctx context.Context, opening entity.Ledger, txs []entity.Transaction, title string) (Worksheet, error) {
	res, err := uc.Run(ctx, opening, txs, true)
	if err != nil {
		return Worksheet{}, err
	}
	if title == "" {
		title = "Kartu Persediaan FIFO"
	}
	ws := BuildWorksheet(res, title, uc.cfg.Company, uc.cfg.Currency, uc.now())
	ws.ID = uuid.New().String()
	return ws, nil
}

// ExportWorkbook devuelve el kartu persediaan en xlsx y el nombre de archivo sugerido.
func (uc *LedgerUseCase) ExportWorkbook(ctx context.Context, in dto.ExportRequest) ([]byte, string, error) {
	ws, err := uc.worksheetFromRequest(ctx, in)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.workbook.WriteWorkbook(ctx, ws)
	if err != nil {
		return nil, "", fmt.Errorf("exportar xlsx: %w", err)
	}
	return data, exportFilename(ws, "xlsx"), nil
}

// ExportPDF devuelve el kartu persediaan en PDF y el nombre de archivo sugerido.
func (uc *LedgerUseCase) ExportPDF(ctx context.Context, in dto.ExportRequest) ([]byte, string, error) {
	ws, err := uc.worksheetFromRequest(ctx, in)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateLedgerPDF(ctx, ws)
	if err != nil {
		return nil, "", fmt.Errorf("exportar pdf: %w", err)
	}
	return data, exportFilename(ws, "pdf"), nil
}

func (uc *LedgerUseCase) worksheetFromRequest(ctx context.Context, in dto.ExportRequest) (Worksheet, error) {
	txs, err := ToTransactions(in.Transactions)
	if err != nil {
		return Worksheet{}, err
	}
	return uc.BuildWorksheet(ctx, ToLedger(in.OpeningLots), txs, in.Title)
}

func exportFilename(ws Worksheet, ext string) string {
	id := ws.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("kartu-persediaan-%s-%s.%s", ws.GeneratedAt.Format("20060102"), id, ext)
}
