// Package money centraliza el redondeo de montos para presentación.
// El motor trabaja a precisión completa; solo reportes, exportaciones y respuestas HTTP redondean.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Places decimales usados en reportes.
const Places = 2

// Round redondea a Places decimales (mitad lejos de cero).
func Round(d decimal.Decimal) decimal.Decimal { return d.Round(Places) }

// Fixed devuelve el monto redondeado con exactamente Places decimales, sin símbolo.
func Fixed(d decimal.Decimal) string { return d.StringFixed(Places) }

// Formatter formatea montos con el símbolo y separadores de una moneda ISO 4217.
type Formatter struct {
	currency *gomoney.Currency
}

// NewFormatter construye un formatter para code (ej. "IDR", "USD").
func NewFormatter(code string) (*Formatter, error) {
	c := gomoney.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if c == nil {
		return nil, fmt.Errorf("money: moneda desconocida %q", code)
	}
	return &Formatter{currency: c}, nil
}

// Code código ISO de la moneda.
func (f *Formatter) Code() string { return f.currency.Code }

// Format muestra d con el símbolo y separadores de la moneda, siempre con Places
// decimales (también en monedas sin fracción como JPY).
func (f *Formatter) Format(d decimal.Decimal) string {
	minor := Round(d).Shift(Places).IntPart()
	c := f.currency
	return gomoney.NewFormatter(Places, c.Decimal, c.Thousand, c.Grapheme, c.Template).Format(minor)
}
