package stock

import (
	"sync"

	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// Observer recibe el snapshot nuevo tras cada mutación confirmada.
// Debe ser idempotente: tras un Unsubscribe puede llegarle todavía una
// notificación que ya estaba en vuelo.
type Observer func(entity.StockSnapshot)

type subscription struct {
	id int
	fn Observer
}

// Notifier mantiene los observadores activos y les propaga cada snapshot
// confirmado, en orden de suscripción, exactamente una vez por mutación.
// Cada invocación corre en su propia goroutine: un observador lento o que
// entra en pánico no bloquea al commit ni al resto.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs []subscription // conserva el orden de suscripción
}

// NewNotifier construye el notificador sin observadores.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registra el observador y devuelve el handle para darse de baja.
func (n *Notifier) Subscribe(fn Observer) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next++
	n.subs = append(n.subs, subscription{id: n.next, fn: fn})
	return n.next
}

// Unsubscribe retira el observador. Surte efecto para toda notificación
// emitida después de retornar; una ya despachada puede entregarse igual.
func (n *Notifier) Unsubscribe(handle int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == handle {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

// Notify despacha el snapshot a los suscritos en este instante.
func (n *Notifier) Notify(snapshot entity.StockSnapshot) {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		fn := s.fn
		go func() {
			// Un pánico del observador no debe tumbar el proceso ni
			// afectar a los demás.
			defer func() { _ = recover() }()
			fn(snapshot)
		}()
	}
}
