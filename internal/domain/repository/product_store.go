package repository

import (
	"context"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// EventType tipo de cambio notificado por el almacén durable.
type EventType string

const (
	EventAdded    EventType = "added"
	EventModified EventType = "modified"
	EventRemoved  EventType = "removed"
)

// ProductEvent notifica un cambio ya confirmado en el almacén durable.
type ProductEvent struct {
	Type    EventType
	Product entity.Product
}

// ProductStore define el puerto del almacén durable de productos (DIP).
// El núcleo lo asume fuertemente consistente por documento; la unicidad de
// Code y el layout en disco son responsabilidad del adaptador, no de aquí.
type ProductStore interface {
	Put(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListAll(ctx context.Context) ([]entity.Product, error)
	Delete(ctx context.Context, id string) error
	// Subscribe entrega los cambios confirmados por cualquier escritor.
	// El canal se cierra cuando el contexto termina.
	Subscribe(ctx context.Context) (<-chan ProductEvent, error)
}
