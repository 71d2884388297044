// Package analytics contiene los casos de uso de los reportes analíticos:
// curva ABC de existencias, estacionalidad de ventas y ranking de stock.
package analytics

import (
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain/abc"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ABCReportUseCase deriva el reporte ABC desde un snapshot del catálogo.
// No guarda estado: el reporte se recalcula bajo demanda con abc.Classify.
type ABCReportUseCase struct{}

// NewABCReportUseCase construye el caso de uso.
func NewABCReportUseCase() *ABCReportUseCase {
	return &ABCReportUseCase{}
}

// Report clasifica el snapshot y agrega los totales por categoría que la
// leyenda del gráfico necesita.
func (uc *ABCReportUseCase) Report(snapshot entity.StockSnapshot) dto.ABCReportDTO {
	entries := abc.Classify(snapshot)

	total := 0
	items := make([]dto.ABCEntryDTO, 0, len(entries))
	type aggregate struct {
		items    int
		quantity int
	}
	byCategory := map[abc.Category]*aggregate{
		abc.CategoryA: {},
		abc.CategoryB: {},
		abc.CategoryC: {},
	}

	for _, e := range entries {
		total += e.Quantity
		agg := byCategory[e.Category]
		agg.items++
		agg.quantity += e.Quantity
		items = append(items, dto.ABCEntryDTO{
			ProductID:       e.ProductID,
			Name:            e.Name,
			Quantity:        e.Quantity,
			CumulativeShare: e.CumulativeShare.Round(2),
			Category:        string(e.Category),
		})
	}

	totalDec := decimal.NewFromInt(int64(total))
	categories := make([]dto.ABCCategoryTotalDTO, 0, 3)
	for _, cat := range []abc.Category{abc.CategoryA, abc.CategoryB, abc.CategoryC} {
		agg := byCategory[cat]
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(int64(agg.quantity)).Mul(hundred).Div(totalDec).Round(2)
		}
		categories = append(categories, dto.ABCCategoryTotalDTO{
			Category: string(cat),
			Items:    agg.items,
			Quantity: agg.quantity,
			Share:    share,
		})
	}

	return dto.ABCReportDTO{
		TotalQuantity: total,
		Entries:       items,
		Categories:    categories,
	}
}

// TopStock devuelve las primeras posiciones del ranking de existencias
// (cantidad descendente, empates por ID) para el widget "Top 10".
func (uc *ABCReportUseCase) TopStock(snapshot entity.StockSnapshot, limit int) []dto.TopStockEntryDTO {
	entries := abc.Classify(snapshot)
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	top := make([]dto.TopStockEntryDTO, 0, limit)
	for i := 0; i < limit; i++ {
		top = append(top, dto.TopStockEntryDTO{
			Position: i + 1,
			Name:     entries[i].Name,
			Quantity: entries[i].Quantity,
		})
	}
	return top
}
