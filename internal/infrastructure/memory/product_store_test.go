package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/domain/repository"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStore_CRUD(t *testing.T) {
	store := memory.NewProductStore()
	ctx := context.Background()

	p := entity.Product{ID: "p1", Name: "Filtro", Code: "FLT-001", CurrentQuantity: 4}
	require.NoError(t, store.Put(ctx, &p))

	got, err := store.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Filtro", got.Name)

	p.CurrentQuantity = 9
	require.NoError(t, store.Put(ctx, &p))
	got, err = store.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 9, got.CurrentQuantity)

	require.NoError(t, store.Delete(ctx, "p1"))
	_, err = store.GetByID(ctx, "p1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, "p1"), domain.ErrNotFound)
}

func TestProductStore_ListAllOrdenado(t *testing.T) {
	store := memory.NewProductStore()
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Put(ctx, &entity.Product{ID: id}))
	}

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)
}

// El suscriptor recibe added al insertar, modified al reemplazar y removed al
// borrar, con el documento completo en cada evento.
func TestProductStore_SubscribeEventos(t *testing.T) {
	store := memory.NewProductStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Subscribe(ctx)
	require.NoError(t, err)

	p := entity.Product{ID: "p1", Name: "Bujía", CurrentQuantity: 2}
	require.NoError(t, store.Put(ctx, &p))
	p.CurrentQuantity = 5
	require.NoError(t, store.Put(ctx, &p))
	require.NoError(t, store.Delete(ctx, "p1"))

	expect := func(want repository.EventType) repository.ProductEvent {
		select {
		case ev := <-events:
			require.Equal(t, want, ev.Type)
			return ev
		case <-time.After(time.Second):
			t.Fatalf("no llegó el evento %s", want)
			return repository.ProductEvent{}
		}
	}

	added := expect(repository.EventAdded)
	assert.Equal(t, 2, added.Product.CurrentQuantity)
	modified := expect(repository.EventModified)
	assert.Equal(t, 5, modified.Product.CurrentQuantity)
	removed := expect(repository.EventRemoved)
	assert.Equal(t, "p1", removed.Product.ID)
}

// Cancelar el contexto cierra el canal y da de baja al suscriptor.
func TestProductStore_SubscribeCancelacion(t *testing.T) {
	store := memory.NewProductStore()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := store.Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, open := <-events:
		assert.False(t, open, "el canal debería cerrarse al cancelar")
	case <-time.After(time.Second):
		t.Fatal("el canal no se cerró al cancelar el contexto")
	}

	// Escrituras posteriores no entran en pánico por el canal cerrado
	require.NoError(t, store.Put(context.Background(), &entity.Product{ID: "p2"}))
}
