package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/stock"
	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	ledger   *stock.Ledger
	validate *validator.Validate
}

// NewProductHandler construye el handler.
func NewProductHandler(ledger *stock.Ledger) *ProductHandler {
	return &ProductHandler{ledger: ledger, validate: validator.New()}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto (cantidades como texto)"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.ledger.Create(c.Context(), stock.CreateInput{
		Name:            in.Name,
		Code:            in.Code,
		Category:        in.Category,
		MinQuantity:     in.MinQuantity,
		CurrentQuantity: in.CurrentQuantity,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(*out))
}

// List godoc
// @Summary      Listar productos (filtro opcional por nombre o código)
// @Tags         products
// @Produce      json
// @Param        q  query  string  false  "Texto a buscar en nombre o código"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	search := strings.ToLower(c.Query("q"))
	snapshot := h.ledger.Snapshot()

	items := make([]dto.ProductResponse, 0, len(snapshot))
	for _, p := range snapshot {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Code), search) {
			continue
		}
		items = append(items, dto.ToProductResponse(p))
	}
	return c.JSON(dto.ProductListResponse{Items: items, Total: len(items)})
}

// LowStock godoc
// @Summary      Productos en o bajo su umbral de reorden
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/low [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	low := h.ledger.Snapshot().LowStock()
	items := make([]dto.ProductResponse, 0, len(low))
	for _, p := range low {
		items = append(items, dto.ToProductResponse(p))
	}
	return c.JSON(dto.ProductListResponse{Items: items, Total: len(items)})
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ledger.Get(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(*out))
}

// Update godoc
// @Summary      Actualización completa de un producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.ledger.Update(c.Context(), c.Params("id"), stock.UpdateInput{
		Name:            in.Name,
		Code:            in.Code,
		Category:        in.Category,
		MinQuantity:     in.MinQuantity,
		CurrentQuantity: in.CurrentQuantity,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(*out))
}

// Adjust godoc
// @Summary      Ajustar la cantidad con un delta con signo
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustQuantityRequest  true  "Delta (+/-)"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust [post]
func (h *ProductHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.ledger.ApplyDelta(c.Context(), c.Params("id"), in.Delta)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.ToProductResponse(*out))
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.Delete(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// respondDomainError traduce los errores tipados del núcleo a HTTP.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistence):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "el almacén durable no confirmó la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
