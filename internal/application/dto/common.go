package dto

// ErrorResponse cuerpo de error HTTP.
// Field e Index se completan en errores de validación por transacción;
// Requested y Available en rechazos por stock insuficiente.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Index     *int   `json:"index,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
	Available *int64 `json:"available,omitempty"`
}
