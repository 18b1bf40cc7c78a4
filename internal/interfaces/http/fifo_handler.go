package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fifo-ledger/internal/application/dto"
	"github.com/jhoicas/fifo-ledger/internal/application/inventory"
)

// Content types de las exportaciones.
const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// FIFOHandler maneja las peticiones HTTP del motor FIFO.
type FIFOHandler struct {
	uc *inventory.LedgerUseCase
}

// NewFIFOHandler construye el handler.
func NewFIFOHandler(uc *inventory.LedgerUseCase) *FIFOHandler {
	return &FIFOHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular el libro FIFO
// @Description  Aplica las transacciones (ordenadas por fecha) sobre el saldo inicial.
// @Tags         fifo
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CalculateRequest  true  "opening_lots, transactions, include_trace"
// @Success      200   {object}  dto.ResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fifo/calculate [post]
func (h *FIFOHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Calculate(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddTransaction godoc
// @Summary      Agregar una transacción validada
// @Description  Rechaza la candidata si alguna salida queda sin stock al reproducir la lista por fecha.
// @Tags         fifo
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddTransactionRequest  true  "opening_lots, transactions, candidate"
// @Success      201   {object}  dto.TransactionListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fifo/transactions [post]
func (h *FIFOHandler) AddTransaction(c *fiber.Ctx) error {
	var in dto.AddTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddTransaction(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveTransaction godoc
// @Summary      Eliminar una transacción
// @Tags         fifo
// @Accept       json
// @Produce      json
// @Param        index  path      int                           true  "Posición (0-based) en transactions"
// @Param        body   body      dto.RemoveTransactionRequest  true  "opening_lots, transactions"
// @Success      200    {object}  dto.TransactionListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/fifo/transactions/{index} [delete]
func (h *FIFOHandler) RemoveTransaction(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index debe ser un entero", Field: "index"})
	}
	var in dto.RemoveTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RemoveTransaction(c.UserContext(), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar transacciones desde xlsx o csv
// @Tags         fifo
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Hoja con columnas Tanggal, Jenis, Unit, Nilai"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fifo/import [post]
func (h *FIFOHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart 'file' requerido", Field: "file"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	out, err := h.uc.ImportWorksheet(c.UserContext(), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportXLSX godoc
// @Summary      Exportar el kartu persediaan a xlsx
// @Tags         fifo
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.ExportRequest  true  "opening_lots, transactions, title"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fifo/export/xlsx [post]
func (h *FIFOHandler) ExportXLSX(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	data, filename, err := h.uc.ExportWorkbook(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar el kartu persediaan a PDF
// @Tags         fifo
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ExportRequest  true  "opening_lots, transactions, title"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/fifo/export/pdf [post]
func (h *FIFOHandler) ExportPDF(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	data, filename, err := h.uc.ExportPDF(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentTypePDF)
	return c.Send(data)
}

// ProductLedger godoc
// @Summary      Libro FIFO de un producto desde los movimientos almacenados
// @Tags         fifo
// @Security     Bearer
// @Produce      json
// @Param        product_id    path   string  true   "Producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Param        trace         query  bool    false  "Incluir el estado del libro por paso"
// @Success      200  {object}  dto.ResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/fifo/products/{product_id} [get]
func (h *FIFOHandler) ProductLedger(c *fiber.Ctx) error {
	out, err := h.uc.CalculateFromMovements(c.UserContext(), c.Params("product_id"), c.Query("warehouse_id"), c.QueryBool("trace"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
