package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/stock"
)

// ReportsHandler expone los reportes analíticos derivados del snapshot.
type ReportsHandler struct {
	ledger      *stock.Ledger
	abcReport   *analytics.ABCReportUseCase
	seasonality *analytics.SeasonalityUseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(
	ledger *stock.Ledger,
	abcReport *analytics.ABCReportUseCase,
	seasonality *analytics.SeasonalityUseCase,
) *ReportsHandler {
	return &ReportsHandler{ledger: ledger, abcReport: abcReport, seasonality: seasonality}
}

// ABC godoc
// @Summary      Curva ABC de existencias
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ABCReportDTO
// @Router       /api/reports/abc [get]
func (h *ReportsHandler) ABC(c *fiber.Ctx) error {
	return c.JSON(h.abcReport.Report(h.ledger.Snapshot()))
}

// Seasonality godoc
// @Summary      Ventas mensuales (estacionalidad)
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SeasonalityReportDTO
// @Router       /api/reports/seasonality [get]
func (h *ReportsHandler) Seasonality(c *fiber.Ctx) error {
	out, err := h.seasonality.MonthlySales(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// TopStock godoc
// @Summary      Ranking de items con más existencias
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Posiciones a devolver"  default(10)
// @Success      200    {array}  dto.TopStockEntryDTO
// @Router       /api/reports/top-stock [get]
func (h *ReportsHandler) TopStock(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	return c.JSON(h.abcReport.TopStock(h.ledger.Snapshot(), limit))
}
