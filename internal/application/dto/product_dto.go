package dto

import (
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Las cantidades llegan
// como texto (el formulario las envía así); el motor las parsea y valida.
type CreateProductRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Code            string `json:"code" validate:"required,min=1,max=100"`
	Category        string `json:"category" validate:"max=100"`
	MinQuantity     string `json:"min_quantity" validate:"required"`
	CurrentQuantity string `json:"current_quantity" validate:"required"`
}

// UpdateProductRequest entrada para la actualización completa de un producto.
type UpdateProductRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Code            string `json:"code" validate:"required,min=1,max=100"`
	Category        string `json:"category" validate:"max=100"`
	MinQuantity     int    `json:"min_quantity" validate:"min=0"`
	CurrentQuantity int    `json:"current_quantity" validate:"min=0"`
}

// AdjustQuantityRequest body para ajustar la cantidad con un delta con signo.
// required sobre un int rechaza el cero: un ajuste de 0 no es un ajuste.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ProductResponse salida de un producto. LowStock se deriva al construir la
// respuesta, nunca se almacena, así no puede quedar obsoleto respecto a la
// cantidad autoritativa.
type ProductResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Category        string    `json:"category"`
	MinQuantity     int       `json:"min_quantity"`
	CurrentQuantity int       `json:"current_quantity"`
	LowStock        bool      `json:"low_stock"`
	LastUpdated     time.Time `json:"last_updated"`
}

// ProductListResponse lista de productos con el total.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ToProductResponse convierte la entidad en DTO de salida.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Code:            p.Code,
		Category:        p.Category,
		MinQuantity:     p.MinQuantity,
		CurrentQuantity: p.CurrentQuantity,
		LowStock:        p.IsLow(),
		LastUpdated:     p.LastUpdated,
	}
}
