package dto

import "github.com/shopspring/decimal"

// ABCEntryDTO un producto clasificado dentro de la curva ABC.
type ABCEntryDTO struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	CumulativeShare decimal.Decimal `json:"cumulative_share"` // % acumulado, redondeado a 2
	Category        string          `json:"category"`         // A | B | C
}

// ABCCategoryTotalDTO agregado por categoría para la leyenda del gráfico.
type ABCCategoryTotalDTO struct {
	Category string          `json:"category"`
	Items    int             `json:"items"`
	Quantity int             `json:"quantity"`
	Share    decimal.Decimal `json:"share"` // % del total de unidades
}

// ABCReportDTO respuesta de GET /api/reports/abc.
type ABCReportDTO struct {
	TotalQuantity int                   `json:"total_quantity"`
	Entries       []ABCEntryDTO         `json:"entries"`
	Categories    []ABCCategoryTotalDTO `json:"categories"`
}

// SalesPointDTO cifra de ventas de un período para graficar.
type SalesPointDTO struct {
	Period string          `json:"period"`
	Amount decimal.Decimal `json:"amount"`
}

// SeasonalityReportDTO respuesta de GET /api/reports/seasonality.
type SeasonalityReportDTO struct {
	Points []SalesPointDTO `json:"points"`
}

// TopStockEntryDTO posición del ranking de existencias.
type TopStockEntryDTO struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
