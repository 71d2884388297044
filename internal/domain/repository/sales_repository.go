package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// SalesRepository define el puerto de lectura de cifras de ventas por período.
// Los datos llegan de fuera del catálogo (facturación, importaciones); el
// agregador de estacionalidad solo los expone para graficar.
type SalesRepository interface {
	List(ctx context.Context) ([]entity.SalesPoint, error)
}
