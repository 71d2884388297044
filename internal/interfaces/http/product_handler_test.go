package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/analytics"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/stock"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	apihttp "github.com/jhoicas/Repuestos-api/internal/interfaces/http"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Armado de la app para tests
// ──────────────────────────────────────────────────────────────────────────────

func newTestApp(t *testing.T) (*fiber.App, *stock.Ledger) {
	t.Helper()
	ledger := stock.NewLedger(memory.NewProductStore(), logger.Nop())
	require.NoError(t, ledger.Load(context.Background()))

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		Ledger:      ledger,
		ABCReport:   analytics.NewABCReportUseCase(),
		Seasonality: analytics.NewSeasonalityUseCase(memory.NewSalesRepository()),
	})
	return app, ledger
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *nethttp.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_201ConStockBajoDerivado(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/products", dto.CreateProductRequest{
		Name:            "Filtro de aire",
		Code:            "FLT-020",
		Category:        "Filtros",
		MinQuantity:     "5",
		CurrentQuantity: "0",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decode[dto.ProductResponse](t, resp)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 0, out.CurrentQuantity)
	assert.True(t, out.LowStock)
}

func TestCreate_400PorValidacion(t *testing.T) {
	app, _ := newTestApp(t)

	// Campo obligatorio ausente: lo corta el validador del handler
	resp := doJSON(t, app, fiber.MethodPost, "/api/products", map[string]string{
		"code": "FLT-020", "min_quantity": "1", "current_quantity": "1",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	// Cantidad no numérica: la corta el dominio
	resp = doJSON(t, app, fiber.MethodPost, "/api/products", dto.CreateProductRequest{
		Name: "Filtro", Code: "F", Category: "X", MinQuantity: "uno", CurrentQuantity: "1",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestList_FiltroPorTexto(t *testing.T) {
	app, ledger := newTestApp(t)
	seed := func(name, code string) {
		_, err := ledger.Create(context.Background(), stock.CreateInput{
			Name: name, Code: code, MinQuantity: "1", CurrentQuantity: "10",
		})
		require.NoError(t, err)
	}
	seed("Filtro de aceite", "FLT-001")
	seed("Bujía", "BUJ-002")
	seed("Filtro de aire", "FLT-003")

	resp := doJSON(t, app, fiber.MethodGet, "/api/products?q=filtro", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.ProductListResponse](t, resp)
	assert.Equal(t, 2, out.Total)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products", nil)
	assert.Equal(t, 3, decode[dto.ProductListResponse](t, resp).Total)
}

func TestLowStock_SoloBajoUmbral(t *testing.T) {
	app, ledger := newTestApp(t)
	_, err := ledger.Create(context.Background(), stock.CreateInput{
		Name: "Correa", Code: "C1", MinQuantity: "5", CurrentQuantity: "3",
	})
	require.NoError(t, err)
	_, err = ledger.Create(context.Background(), stock.CreateInput{
		Name: "Disco", Code: "D1", MinQuantity: "2", CurrentQuantity: "8",
	})
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/low", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.ProductListResponse](t, resp)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Correa", out.Items[0].Name)
	assert.True(t, out.Items[0].LowStock)
}

func TestAdjust_400DeltaCero(t *testing.T) {
	app, ledger := newTestApp(t)
	p, err := ledger.Create(context.Background(), stock.CreateInput{
		Name: "Alternador", Code: "A1", MinQuantity: "1", CurrentQuantity: "3",
	})
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodPost, "/api/products/"+p.ID+"/adjust", dto.AdjustQuantityRequest{Delta: 0})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	// La cantidad no cambió
	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, 3, decode[dto.ProductResponse](t, resp).CurrentQuantity)
}

func TestAdjust_422SobreDecremento(t *testing.T) {
	app, ledger := newTestApp(t)
	p, err := ledger.Create(context.Background(), stock.CreateInput{
		Name: "Bujía", Code: "B1", MinQuantity: "1", CurrentQuantity: "3",
	})
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodPost, "/api/products/"+p.ID+"/adjust", dto.AdjustQuantityRequest{Delta: -5})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, resp).Code)

	// La cantidad no cambió
	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, 3, decode[dto.ProductResponse](t, resp).CurrentQuantity)

	// Un ajuste válido sí aplica
	resp = doJSON(t, app, fiber.MethodPost, "/api/products/"+p.ID+"/adjust", dto.AdjustQuantityRequest{Delta: -2})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ProductResponse](t, resp).CurrentQuantity)
}

func TestProducto_404(t *testing.T) {
	app, _ := newTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{fiber.MethodGet, "/api/products/no-existe"},
		{fiber.MethodDelete, "/api/products/no-existe"},
	} {
		resp := doJSON(t, app, tc.method, tc.path, nil)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
	}

	resp := doJSON(t, app, fiber.MethodPost, "/api/products/no-existe/adjust", dto.AdjustQuantityRequest{Delta: 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateYDelete_CicloCompleto(t *testing.T) {
	app, ledger := newTestApp(t)
	p, err := ledger.Create(context.Background(), stock.CreateInput{
		Name: "Radiador", Code: "R1", MinQuantity: "1", CurrentQuantity: "4",
	})
	require.NoError(t, err)

	resp := doJSON(t, app, fiber.MethodPut, "/api/products/"+p.ID, dto.UpdateProductRequest{
		Name: "Radiador reforzado", Code: "R2", Category: "Refrigeración",
		MinQuantity: 2, CurrentQuantity: 6,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Radiador reforzado", out.Name)
	assert.Equal(t, 6, out.CurrentQuantity)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/products/"+p.ID, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes_ABCYTopStock(t *testing.T) {
	app, ledger := newTestApp(t)
	for i, qty := range []string{"50", "30", "10", "5", "5"} {
		_, err := ledger.Create(context.Background(), stock.CreateInput{
			Name: fmt.Sprintf("Pieza %d", i+1), Code: fmt.Sprintf("P%d", i+1),
			MinQuantity: "1", CurrentQuantity: qty,
		})
		require.NoError(t, err)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/reports/abc", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	abcOut := decode[dto.ABCReportDTO](t, resp)
	assert.Equal(t, 100, abcOut.TotalQuantity)
	require.Len(t, abcOut.Entries, 5)
	assert.Equal(t, "A", abcOut.Entries[0].Category)
	require.Len(t, abcOut.Categories, 3)

	resp = doJSON(t, app, fiber.MethodGet, "/api/reports/top-stock?limit=2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	top := decode[[]dto.TopStockEntryDTO](t, resp)
	require.Len(t, top, 2)
	assert.Equal(t, "Pieza 1", top[0].Name)
	assert.Equal(t, 50, top[0].Quantity)
}

func TestReportes_Seasonality(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/reports/seasonality", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.SeasonalityReportDTO](t, resp)
	require.Len(t, out.Points, 12)
	assert.Equal(t, "Jul", out.Points[6].Period)
}
