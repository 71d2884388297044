package stock

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// Ledger es el motor de mutaciones de stock: aplica deltas y altas/bajas sobre
// el catálogo bajo una sección crítica exclusiva, persiste write-through en el
// almacén durable y, solo tras confirmar, publica el snapshot nuevo a los
// observadores.
//
// Regla de consistencia: la mutación de un producto es una lectura-modificación-
// escritura atómica respecto a las demás mutaciones (dos decrementos
// concurrentes nunca leen la misma cantidad previa). Las lecturas de snapshot
// no toman el candado.
type Ledger struct {
	store    repository.ProductStore
	catalog  *Catalog
	notifier *Notifier
	log      *logger.Logger

	// mu serializa las mutaciones (sección crítica por almacén).
	mu sync.Mutex
}

// NewLedger construye el motor sobre el almacén durable dado.
func NewLedger(store repository.ProductStore, log *logger.Logger) *Ledger {
	return &Ledger{
		store:    store,
		catalog:  NewCatalog(),
		notifier: NewNotifier(),
		log:      log,
	}
}

// Load siembra el catálogo con el contenido actual del almacén durable.
// Llamar una vez antes de aceptar mutaciones.
func (l *Ledger) Load(ctx context.Context) error {
	products, err := l.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range products {
		l.catalog.Upsert(p)
	}
	l.log.Info().Int("productos", len(products)).Msg("catálogo cargado")
	return nil
}

// Run consume los cambios confirmados por otros escritores del almacén durable
// y los pliega al catálogo, notificando a los observadores. Bloquea hasta que
// el contexto termine o el canal se cierre.
func (l *Ledger) Run(ctx context.Context) error {
	events, err := l.store.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	for ev := range events {
		l.applyEvent(ev)
	}
	return nil
}

// applyEvent pliega un cambio externo ya confirmado. El filtro es de
// antigüedad, no de igualdad: solo se aplica un evento estrictamente más nuevo
// que la entrada vigente del catálogo. Así los ecos de nuestras propias
// escrituras (que llegan con retraso y con el sello igual, o truncado a
// microsegundos por timestamptz) nunca regresan la cantidad autoritativa.
func (l *Ledger) applyEvent(ev repository.ProductEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch ev.Type {
	case repository.EventAdded, repository.EventModified:
		if current, ok := l.catalog.Get(ev.Product.ID); ok && !ev.Product.LastUpdated.After(current.LastUpdated) {
			return
		}
		l.catalog.Upsert(ev.Product)
	case repository.EventRemoved:
		current, ok := l.catalog.Get(ev.Product.ID)
		if !ok {
			return
		}
		// Una baja retrasada no debe tumbar un estado más nuevo del producto.
		if current.LastUpdated.After(ev.Product.LastUpdated) {
			return
		}
		l.catalog.Remove(ev.Product.ID)
	default:
		return
	}
	l.log.Debug().
		Str("evento", string(ev.Type)).
		Str("producto_id", ev.Product.ID).
		Msg("cambio externo aplicado al catálogo")
	l.notifier.Notify(l.catalog.Snapshot())
}

// Snapshot devuelve la vista confirmada más reciente del catálogo.
func (l *Ledger) Snapshot() entity.StockSnapshot {
	return l.catalog.Snapshot()
}

// Get devuelve un producto por ID desde el snapshot vigente.
func (l *Ledger) Get(id string) (*entity.Product, error) {
	p, ok := l.catalog.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// Subscribe registra un observador de snapshots; devuelve el handle de baja.
func (l *Ledger) Subscribe(fn Observer) int {
	return l.notifier.Subscribe(fn)
}

// Unsubscribe retira un observador.
func (l *Ledger) Unsubscribe(handle int) {
	l.notifier.Unsubscribe(handle)
}

// ApplyDelta aplica un ajuste con signo a la cantidad del producto.
//
//   - ErrNotFound si el producto no existe.
//   - ErrInvalidQuantity si la cantidad resultante sería negativa; el catálogo
//     queda intacto y no se emite notificación.
//   - ErrPersistence si el almacén durable falla; el snapshot en memoria
//     conserva el valor previo, por lo que reintentar siempre es seguro.
func (l *Ledger) ApplyDelta(ctx context.Context, id string, delta int) (*entity.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.catalog.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	newQuantity := current.CurrentQuantity + delta
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: %d%+d", domain.ErrInvalidQuantity, current.CurrentQuantity, delta)
	}

	updated := current
	updated.CurrentQuantity = newQuantity
	updated.LastUpdated = time.Now()

	if err := l.commit(ctx, updated); err != nil {
		return nil, err
	}
	l.log.Debug().
		Str("producto_id", id).
		Int("delta", delta).
		Int("cantidad", newQuantity).
		Msg("delta aplicado")
	return &updated, nil
}

// CreateInput campos de alta tal como llegan del formulario: las cantidades
// vienen como texto y se parsean aquí.
type CreateInput struct {
	Name            string
	Code            string
	Category        string
	MinQuantity     string
	CurrentQuantity string
}

// Create valida el alta, asigna ID, sella LastUpdated y confirma.
// Devuelve ErrValidation si el nombre está vacío o alguna cantidad no es un
// entero ≥ 0.
func (l *Ledger) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	}
	minQuantity, err := parseQuantity("min_quantity", in.MinQuantity)
	if err != nil {
		return nil, err
	}
	currentQuantity, err := parseQuantity("current_quantity", in.CurrentQuantity)
	if err != nil {
		return nil, err
	}

	product := entity.Product{
		ID:              uuid.New().String(),
		Name:            name,
		Code:            strings.TrimSpace(in.Code),
		Category:        in.Category,
		MinQuantity:     minQuantity,
		CurrentQuantity: currentQuantity,
		LastUpdated:     time.Now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.commit(ctx, product); err != nil {
		return nil, err
	}
	l.log.Info().
		Str("producto_id", product.ID).
		Str("code", product.Code).
		Msg("producto creado")
	return &product, nil
}

// UpdateInput campos para la actualización completa de un producto.
type UpdateInput struct {
	Name            string
	Code            string
	Category        string
	MinQuantity     int
	CurrentQuantity int
}

// Update reemplaza todos los campos editables del producto y sella
// LastUpdated. Mismas reglas de validación que el alta.
func (l *Ledger) Update(ctx context.Context, id string, in UpdateInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	}
	if in.MinQuantity < 0 || in.CurrentQuantity < 0 {
		return nil, fmt.Errorf("%w: las cantidades no pueden ser negativas", domain.ErrValidation)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.catalog.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := current
	updated.Name = name
	updated.Code = strings.TrimSpace(in.Code)
	updated.Category = in.Category
	updated.MinQuantity = in.MinQuantity
	updated.CurrentQuantity = in.CurrentQuantity
	updated.LastUpdated = time.Now()

	if err := l.commit(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete da de baja el producto; deja de aparecer en snapshots posteriores.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.catalog.Get(id); !ok {
		return domain.ErrNotFound
	}
	if err := l.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	l.catalog.Remove(id)
	l.notifier.Notify(l.catalog.Snapshot())
	l.log.Info().Str("producto_id", id).Msg("producto eliminado")
	return nil
}

// commit persiste write-through y, solo si el almacén durable confirma,
// aplica al catálogo y notifica. Requiere l.mu.
func (l *Ledger) commit(ctx context.Context, p entity.Product) error {
	if err := l.store.Put(ctx, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	l.catalog.Upsert(p)
	l.notifier.Notify(l.catalog.Snapshot())
	return nil
}

// parseQuantity convierte el texto del formulario en un entero ≥ 0.
func parseQuantity(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s no es numérico", domain.ErrValidation, field)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s no puede ser negativo", domain.ErrValidation, field)
	}
	return n, nil
}
