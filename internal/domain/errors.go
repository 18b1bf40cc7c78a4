package domain

import (
	"errors"
	"fmt"
	"time"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvariantViolation  = errors.New("invariante del motor FIFO violada")
	ErrUnavailable         = errors.New("servicio no disponible")
	ErrTooManyTransactions = errors.New("demasiadas transacciones")
)

// ValidationError rechazo a nivel de campo. Index es la posición (0-based) de la
// transacción en la lista del caller, o -1 si el error no pertenece a una transacción.
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

// NewValidationError construye un ValidationError.
func NewValidationError(index int, field, message string) *ValidationError {
	return &ValidationError{Index: index, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("transacción %d: %s: %s", e.Index+1, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// InsufficientStockError una salida pide más unidades de las disponibles en su
// posición cronológica.
type InsufficientStockError struct {
	Index     int
	Date      time.Time
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("se piden %d unidades, disponibles %d", e.Requested, e.Available)
	}
	return fmt.Sprintf("transacción %d (%s): se piden %d unidades, disponibles %d",
		e.Index+1, e.Date.Format("2006-01-02"), e.Requested, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InvariantViolation indica un bug en la lógica de consumo. Se lanza con panic, nunca se devuelve.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return ErrInvariantViolation.Error() + ": " + e.Detail
}

// Unwrap expone el sentinel.
func (e *InvariantViolation) Unwrap() error { return ErrInvariantViolation }
