package entity

import "github.com/shopspring/decimal"

// SalesPoint es una cifra de ventas asociada a un período calendario
// (ej. "Jul"). Viene de fuera del catálogo; el agregador de estacionalidad
// solo la valida y la expone para graficar.
type SalesPoint struct {
	Period string          `json:"period"`
	Amount decimal.Decimal `json:"amount"`
}
