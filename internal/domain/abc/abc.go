// Package abc implementa la clasificación ABC (curva de Pareto) del catálogo:
// ordena por cantidad descendente, acumula participación y segmenta en
// categorías A/B/C (~80/15/5) para priorizar la reposición.
package abc

import (
	"sort"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Category es la categoría ABC asignada a un producto.
type Category string

const (
	CategoryA Category = "A" // acumulado ≤ 80%: máxima prioridad de reposición
	CategoryB Category = "B" // 80% < acumulado ≤ 95%
	CategoryC Category = "C" // acumulado > 95%
)

var (
	hundred    = decimal.NewFromInt(100)
	thresholdA = decimal.NewFromInt(80)
	thresholdB = decimal.NewFromInt(95)
)

// Entry es el resultado derivado para un producto. No se almacena: se
// recalcula bajo demanda desde un snapshot y no tiene ciclo de vida propio.
type Entry struct {
	ProductID       string
	Name            string
	Quantity        int
	CumulativeShare decimal.Decimal // % acumulado incluyendo este producto
	Category        Category
}

// Classify es una función pura sobre un snapshot inmutable: dos llamadas con
// el mismo snapshot producen exactamente la misma salida.
//
// Algoritmo (recorrido monotónico de umbrales):
//  1. Ordenar por cantidad descendente; empates por ID ascendente (determinismo).
//  2. total = suma de cantidades. Si total == 0, todo es C con acumulado 0
//     (evita la división por cero).
//  3. Recorrer acumulando: share = 100 * acumulado / total (incluye el actual).
//  4. share ≤ 80 → A; 80 < share ≤ 95 → B; share > 95 → C. Una vez que un
//     producto cruza el 95, todos los siguientes son C.
//
// Nota: un único producto dominante puede quedar solo en A aun estando muy por
// debajo del 80% del total; se conserva el recorrido tal cual.
func Classify(snapshot entity.StockSnapshot) []Entry {
	sorted := make([]entity.Product, len(snapshot))
	copy(sorted, snapshot)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CurrentQuantity != sorted[j].CurrentQuantity {
			return sorted[i].CurrentQuantity > sorted[j].CurrentQuantity
		}
		return sorted[i].ID < sorted[j].ID
	})

	var total int64
	for _, p := range sorted {
		total += int64(p.CurrentQuantity)
	}

	entries := make([]Entry, 0, len(sorted))
	if total == 0 {
		for _, p := range sorted {
			entries = append(entries, Entry{
				ProductID:       p.ID,
				Name:            p.Name,
				Quantity:        p.CurrentQuantity,
				CumulativeShare: decimal.Zero,
				Category:        CategoryC,
			})
		}
		return entries
	}

	totalDec := decimal.NewFromInt(total)
	var running int64
	for _, p := range sorted {
		running += int64(p.CurrentQuantity)
		share := decimal.NewFromInt(running).Mul(hundred).Div(totalDec)

		category := CategoryC
		switch {
		case share.LessThanOrEqual(thresholdA):
			category = CategoryA
		case share.LessThanOrEqual(thresholdB):
			category = CategoryB
		}

		entries = append(entries, Entry{
			ProductID:       p.ID,
			Name:            p.Name,
			Quantity:        p.CurrentQuantity,
			CumulativeShare: share,
			Category:        category,
		})
	}
	return entries
}
