package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

var _ repository.ProductStore = (*ProductStore)(nil)

// productsChannel canal de pg_notify alimentado por el trigger de products.
const productsChannel = "products_changed"

// ProductStore adaptador del almacén durable de productos sobre PostgreSQL.
// Los cambios confirmados (de este proceso o de cualquier otro escritor) se
// propagan vía LISTEN/NOTIFY con el payload completo del documento.
type ProductStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewProductStore construye el adaptador.
func NewProductStore(pool *pgxpool.Pool, log *logger.Logger) *ProductStore {
	return &ProductStore{pool: pool, log: log}
}

// Put inserta o reemplaza el documento completo del producto.
func (s *ProductStore) Put(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, code, category, min_quantity, current_quantity, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			code = EXCLUDED.code,
			category = EXCLUDED.category,
			min_quantity = EXCLUDED.min_quantity,
			current_quantity = EXCLUDED.current_quantity,
			last_updated = EXCLUDED.last_updated`
	_, err := s.pool.Exec(ctx, query,
		product.ID, product.Name, product.Code, product.Category,
		product.MinQuantity, product.CurrentQuantity, product.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("put product: %w", err)
	}
	return nil
}

// GetByID obtiene el producto por ID.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, code, category, min_quantity, current_quantity, last_updated
		FROM products WHERE id = $1`
	var p entity.Product
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Code, &p.Category,
		&p.MinQuantity, &p.CurrentQuantity, &p.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListAll devuelve el catálogo completo ordenado por ID.
func (s *ProductStore) ListAll(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT id, name, code, category, min_quantity, current_quantity, last_updated
		FROM products ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Category,
			&p.MinQuantity, &p.CurrentQuantity, &p.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete elimina el producto.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// notifyPayload forma del payload que emite el trigger products_changed.
type notifyPayload struct {
	Event   repository.EventType `json:"event"`
	Product entity.Product       `json:"product"`
}

// Subscribe abre una conexión dedicada en LISTEN y entrega cada notificación
// decodificada. El canal se cierra cuando el contexto termina.
func (s *ProductStore) Subscribe(ctx context.Context) (<-chan repository.ProductEvent, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen conn: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+productsChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", productsChannel, err)
	}

	ch := make(chan repository.ProductEvent, 64)
	go func() {
		defer close(ch)
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				// Contexto cancelado o conexión caída: terminar la suscripción.
				if ctx.Err() == nil {
					s.log.Error().Err(err).Msg("suscripción a products_changed interrumpida")
				}
				return
			}
			var payload notifyPayload
			if err := json.Unmarshal([]byte(notification.Payload), &payload); err != nil {
				s.log.Warn().Err(err).Msg("payload de notificación ilegible, descartado")
				continue
			}
			select {
			case ch <- repository.ProductEvent{Type: payload.Event, Product: payload.Product}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
