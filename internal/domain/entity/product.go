package entity

import "time"

// Product representa un repuesto del catálogo con su stock autoritativo.
// CurrentQuantity nunca es negativa: el motor de mutaciones rechaza (no recorta)
// cualquier delta que la dejaría por debajo de cero.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`     // código externo de búsqueda; unicidad la garantiza el almacén durable
	Category        string    `json:"category"` // agrupación libre ("Pieza", "Filtro"...), no es la categoría ABC
	MinQuantity     int       `json:"min_quantity"`
	CurrentQuantity int       `json:"current_quantity"`
	LastUpdated     time.Time `json:"last_updated"` // sellado por el motor de mutaciones en cada commit
}

// IsLow indica si el producto está en stock bajo (cantidad actual en o bajo el
// umbral de reorden). Se deriva siempre del snapshot, nunca se almacena.
func (p Product) IsLow() bool {
	return p.CurrentQuantity <= p.MinQuantity
}

// StockSnapshot es una vista inmutable y ordenada (ID ascendente) del catálogo
// en un instante. Se reemplaza completa en cada commit; ningún lector observa
// una mutación a medio aplicar. Los consumidores no deben modificarla.
type StockSnapshot []Product

// Get busca un producto dentro del snapshot.
func (s StockSnapshot) Get(id string) (Product, bool) {
	for _, p := range s {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// LowStock devuelve los productos en o bajo su umbral de reorden.
func (s StockSnapshot) LowStock() []Product {
	var low []Product
	for _, p := range s {
		if p.IsLow() {
			low = append(low, p)
		}
	}
	return low
}
