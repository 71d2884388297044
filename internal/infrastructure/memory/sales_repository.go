package memory

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SalesRepository = (*SalesRepository)(nil)

// SalesRepository serie mensual de demostración para el modo memory.
// Ventas altas en julio (vacaciones) y diciembre (navidad).
type SalesRepository struct {
	points []entity.SalesPoint
}

// NewSalesRepository construye el repositorio con la serie de demostración.
func NewSalesRepository() *SalesRepository {
	amounts := []struct {
		period string
		amount int64
	}{
		{"Ene", 12000}, {"Feb", 19000}, {"Mar", 15000}, {"Abr", 18000},
		{"May", 9000}, {"Jun", 11000}, {"Jul", 25000}, {"Ago", 21000},
		{"Sep", 17000}, {"Oct", 16000}, {"Nov", 19000}, {"Dic", 23000},
	}
	points := make([]entity.SalesPoint, 0, len(amounts))
	for _, a := range amounts {
		points = append(points, entity.SalesPoint{
			Period: a.period,
			Amount: decimal.NewFromInt(a.amount),
		})
	}
	return &SalesRepository{points: points}
}

// List devuelve la serie en orden calendario.
func (r *SalesRepository) List(_ context.Context) ([]entity.SalesPoint, error) {
	out := make([]entity.SalesPoint, len(r.points))
	copy(out, r.points)
	return out, nil
}
