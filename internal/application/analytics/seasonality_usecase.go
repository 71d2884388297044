package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

// SeasonalityUseCase expone la serie de ventas por período para graficar.
// El agregador no recalcula nada: valida que las etiquetas de período sean
// únicas y deja pasar la serie tal cual llega.
type SeasonalityUseCase struct {
	salesRepo repository.SalesRepository
}

// NewSeasonalityUseCase construye el caso de uso.
func NewSeasonalityUseCase(salesRepo repository.SalesRepository) *SeasonalityUseCase {
	return &SeasonalityUseCase{salesRepo: salesRepo}
}

// MonthlySales lee la serie del repositorio externo y la expone para graficar.
func (uc *SeasonalityUseCase) MonthlySales(ctx context.Context) (*dto.SeasonalityReportDTO, error) {
	points, err := uc.salesRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := Series(points); err != nil {
		return nil, err
	}
	out := make([]dto.SalesPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.SalesPointDTO{Period: p.Period, Amount: p.Amount})
	}
	return &dto.SeasonalityReportDTO{Points: out}, nil
}

// Series valida una serie suministrada por el llamador: la única regla es que
// las etiquetas de período no se repitan. La serie no se modifica.
func Series(points []entity.SalesPoint) error {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		if _, dup := seen[p.Period]; dup {
			return fmt.Errorf("%w: período repetido %q", domain.ErrValidation, p.Period)
		}
		seen[p.Period] = struct{}{}
	}
	return nil
}
