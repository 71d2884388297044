package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepository)(nil)

// SalesRepository lectura de la serie de ventas por período (tabla alimentada
// desde fuera del catálogo).
type SalesRepository struct {
	pool *pgxpool.Pool
}

// NewSalesRepository construye el adaptador.
func NewSalesRepository(pool *pgxpool.Pool) *SalesRepository {
	return &SalesRepository{pool: pool}
}

// List devuelve la serie en orden calendario.
func (r *SalesRepository) List(ctx context.Context) ([]entity.SalesPoint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT period, amount FROM sales_points ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list sales points: %w", err)
	}
	defer rows.Close()

	var out []entity.SalesPoint
	for rows.Next() {
		var p entity.SalesPoint
		if err := rows.Scan(&p.Period, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan sales point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
