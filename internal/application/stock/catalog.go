package stock

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// Catalog es el almacén en memoria del catálogo: fuente de verdad de
// cantidades y umbrales para los lectores. El único escritor de
// CurrentQuantity/LastUpdated es el Ledger; el resto de componentes solo
// consume snapshots.
//
// El snapshot vigente se publica en un puntero atómico: leerlo no toma el
// candado de mutación, a cambio de poder quedar una mutación por detrás.
type Catalog struct {
	mu   sync.RWMutex
	m    map[string]entity.Product
	snap atomic.Pointer[entity.StockSnapshot]
}

// NewCatalog construye un catálogo vacío.
func NewCatalog() *Catalog {
	c := &Catalog{m: make(map[string]entity.Product)}
	empty := entity.StockSnapshot{}
	c.snap.Store(&empty)
	return c
}

// Get devuelve el producto por ID.
func (c *Catalog) Get(id string) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.m[id]
	return p, ok
}

// Upsert inserta o reemplaza el producto y publica un snapshot nuevo.
func (c *Catalog) Upsert(p entity.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[p.ID] = p
	c.publishLocked()
}

// Remove elimina el producto; a partir de aquí deja de aparecer en snapshots.
func (c *Catalog) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, id)
	c.publishLocked()
}

// Snapshot devuelve la vista inmutable más reciente ya confirmada.
// No bloquea a los escritores; los consumidores no deben modificarla.
func (c *Catalog) Snapshot() entity.StockSnapshot {
	return *c.snap.Load()
}

// publishLocked reconstruye el snapshot completo (orden por ID ascendente)
// y lo publica de forma atómica. Requiere c.mu en escritura.
func (c *Catalog) publishLocked() {
	snap := make(entity.StockSnapshot, 0, len(c.m))
	for _, p := range c.m {
		snap = append(snap, p)
	}
	sort.Slice(snap, func(i, j int) bool { return snap[i].ID < snap[j].ID })
	c.snap.Store(&snap)
}
