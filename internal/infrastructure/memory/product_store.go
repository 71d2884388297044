// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests y en el modo de desarrollo STORAGE=memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
)

var _ repository.ProductStore = (*ProductStore)(nil)

// ProductStore almacén durable simulado: consistencia fuerte por documento y
// notificación de cambios a los suscriptores.
type ProductStore struct {
	mu   sync.RWMutex
	m    map[string]entity.Product
	subs map[int]chan repository.ProductEvent
	next int
}

// NewProductStore construye el almacén vacío.
func NewProductStore() *ProductStore {
	return &ProductStore{
		m:    make(map[string]entity.Product),
		subs: make(map[int]chan repository.ProductEvent),
	}
}

// Put inserta o reemplaza el documento y notifica added/modified.
func (s *ProductStore) Put(_ context.Context, product *entity.Product) error {
	s.mu.Lock()
	_, existed := s.m[product.ID]
	s.m[product.ID] = *product
	s.mu.Unlock()

	eventType := repository.EventAdded
	if existed {
		eventType = repository.EventModified
	}
	s.broadcast(repository.ProductEvent{Type: eventType, Product: *product})
	return nil
}

// GetByID devuelve el documento o ErrNotFound.
func (s *ProductStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ListAll devuelve todos los documentos ordenados por ID.
func (s *ProductStore) ListAll(_ context.Context) ([]entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete elimina el documento y notifica removed.
func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	p, ok := s.m[id]
	if !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.m, id)
	s.mu.Unlock()

	s.broadcast(repository.ProductEvent{Type: repository.EventRemoved, Product: p})
	return nil
}

// Subscribe entrega los cambios confirmados. El canal se cierra al terminar
// el contexto.
func (s *ProductStore) Subscribe(ctx context.Context) (<-chan repository.ProductEvent, error) {
	ch := make(chan repository.ProductEvent, 64)

	s.mu.Lock()
	s.next++
	id := s.next
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// broadcast reparte el evento; un suscriptor saturado pierde eventos en vez
// de bloquear al escritor.
func (s *ProductStore) broadcast(ev repository.ProductEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
