package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *stock.Ledger
	ABCReport   *analytics.ABCReportUseCase
	Seasonality *analytics.SeasonalityUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Ledger)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/adjust", productHandler.Adjust)
	products.Delete("/:id", productHandler.Delete)

	reports := api.Group("/reports")
	reportsHandler := NewReportsHandler(deps.Ledger, deps.ABCReport, deps.Seasonality)
	reports.Get("/abc", reportsHandler.ABC)
	reports.Get("/seasonality", reportsHandler.Seasonality)
	reports.Get("/top-stock", reportsHandler.TopStock)
}
