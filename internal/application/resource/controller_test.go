package resource

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/memory"
)

// ─── helpers ─────────────────────────────────────────────────────────────────

type fakeAuth struct{ admin bool }

func (f fakeAuth) IsAdmin() bool { return f.admin }

// countingGateway cuenta las operaciones que llegan al backend en memoria.
type countingGateway struct {
	*memory.Gateway
	calls atomic.Int64
}

func newCountingGateway() *countingGateway {
	g := &countingGateway{Gateway: memory.NewGateway()}
	memory.SeedDemo(g.Gateway)
	g.SetHook(func(context.Context, string, string) error {
		g.calls.Add(1)
		return nil
	})
	return g
}

func mountedProducts(t *testing.T, admin bool) (*Controller[entity.Product], *countingGateway) {
	t.Helper()
	gw := newCountingGateway()
	c := NewController(ProductSchema(), gw, fakeAuth{admin: admin}, zerolog.Nop())
	require.NoError(t, c.Mount(context.Background()))
	return c, gw
}

func mountedCategories(t *testing.T) (*Controller[entity.Category], *countingGateway) {
	t.Helper()
	gw := newCountingGateway()
	c := NewController(CategorySchema(), gw, fakeAuth{admin: true}, zerolog.Nop())
	require.NoError(t, c.Mount(context.Background()))
	return c, gw
}

func countID[T any](items []T, id func(T) string, key string) int {
	n := 0
	for _, it := range items {
		if id(it) == key {
			n++
		}
	}
	return n
}

// ─── mount ───────────────────────────────────────────────────────────────────

func TestMount_ProductosOrdenYOpciones(t *testing.T) {
	c, _ := mountedProducts(t, true)

	items := c.Items()
	require.Len(t, items, 5)
	assert.Equal(t, "prd-kopi", items[0].ID, "más reciente primero")
	assert.Equal(t, "Minuman", items[0].CategoryName())
	assert.Equal(t, StateReady, c.State())

	v := c.View()
	require.Len(t, v.Options["categories"], 3)
	assert.Equal(t, "Elektronik", v.Options["categories"][0].Label)
	require.Len(t, v.Options["suppliers"], 2)
	assert.Equal(t, "Rp 28.500", v.Rows[0]["price"])
}

func TestMount_FalloLookup_MensajeFijoYListaVacia(t *testing.T) {
	gw := memory.NewGateway()
	memory.SeedDemo(gw)
	gw.SetHook(func(_ context.Context, op, ent string) error {
		if op == "list" && ent == repository.EntitySuppliers {
			return errors.New("timeout")
		}
		return nil
	})
	c := NewController(ProductSchema(), gw, fakeAuth{admin: true}, zerolog.Nop())

	err := c.Mount(context.Background())
	require.Error(t, err)
	v := c.View()
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, MsgLoadFailed, v.Error)
	assert.Empty(t, v.Rows)
	assert.False(t, v.Loading)
}

func TestMount_FalloSinMensajeFijo_UsaMensajeBackend(t *testing.T) {
	gw := memory.NewGateway()
	gw.SetHook(func(context.Context, string, string) error { return errors.New("JWT expired") })
	c := NewController(StoreSchema(), gw, fakeAuth{}, zerolog.Nop())

	require.Error(t, c.Mount(context.Background()))
	assert.Equal(t, "JWT expired", c.View().Error)
}

func TestMount_RespuestaTardiaTrasUnmount_SeDescarta(t *testing.T) {
	gw := memory.NewGateway()
	memory.SeedDemo(gw)
	release := make(chan struct{})
	gw.SetHook(func(ctx context.Context, op, _ string) error {
		if op == "list" {
			<-release
		}
		return nil
	})
	c := NewController(StoreSchema(), gw, fakeAuth{admin: true}, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- c.Mount(context.Background()) }()
	require.Eventually(t, func() bool { return c.State() == StateLoading }, time.Second, time.Millisecond)

	c.Unmount()
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, StateIdle, c.State())
	assert.Empty(t, c.Items())
	assert.False(t, c.Mounted())
}

// ─── filtro ──────────────────────────────────────────────────────────────────

func TestFiltered_RelacionesYMayusculas(t *testing.T) {
	c, _ := mountedProducts(t, false)

	c.SetSearch("NUSANTARA")
	assert.Len(t, c.Filtered(), 3, "por nombre de proveedor expandido")

	c.SetSearch("elektronik")
	assert.Len(t, c.Filtered(), 2, "por nombre de categoría expandida")

	c.SetSearch("")
	assert.Equal(t, c.Items(), c.Filtered())
}

func TestFilter_IdempotenteYNoDestructivo(t *testing.T) {
	c, _ := mountedProducts(t, false)
	items := c.Items()
	text := ProductSchema().SearchText

	once := Filter(items, "mi", text)
	twice := Filter(once, "mi", text)
	assert.Equal(t, once, twice)
	assert.Equal(t, items, Filter(items, "", text))
	assert.Equal(t, c.Items(), items, "la lista original no cambia")
}

// ─── rol ─────────────────────────────────────────────────────────────────────

func TestNoAdmin_SoloLectura(t *testing.T) {
	c, gw := mountedProducts(t, false)
	before := gw.calls.Load()

	v := c.View()
	assert.False(t, v.CanMutate)
	assert.Nil(t, v.Form)
	assert.NotEmpty(t, v.Rows)

	form := Form{"name": "X", "price": "1", "category_id": "cat-makanan", "supplier_id": "sup-sumber"}
	assert.ErrorIs(t, c.Submit(context.Background(), form), domain.ErrForbidden)
	assert.ErrorIs(t, c.Edit("prd-kopi"), domain.ErrForbidden)
	assert.ErrorIs(t, c.RequestDelete("prd-kopi"), domain.ErrForbidden)
	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), domain.ErrForbidden)
	assert.Equal(t, before, gw.calls.Load(), "sin llamadas de red")
}

// ─── submit ──────────────────────────────────────────────────────────────────

func TestSubmit_SinPrecio_BloqueaSinRed(t *testing.T) {
	c, gw := mountedProducts(t, true)
	before := gw.calls.Load()

	form := Form{"name": "Gula 1kg", "stock": "10", "category_id": "cat-makanan", "supplier_id": "sup-sumber"}
	err := c.Submit(context.Background(), form)

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, MsgProductRequired, err.Error())
	assert.Equal(t, MsgProductRequired, c.View().Error)
	assert.Equal(t, "Gula 1kg", c.View().Form["name"], "el formulario se conserva")
	assert.Equal(t, before, gw.calls.Load())
}

func TestSubmit_PrecioNoNumerico(t *testing.T) {
	c, gw := mountedProducts(t, true)
	before := gw.calls.Load()

	err := c.Submit(context.Background(), Form{"name": "X", "price": "mahal", "category_id": "c", "supplier_id": "s"})
	assert.Equal(t, MsgPriceNotNumber, err.Error())
	err = c.Submit(context.Background(), Form{"name": "X", "price": "10", "stock": "1.5", "category_id": "c", "supplier_id": "s"})
	assert.Equal(t, MsgStockNotInteger, err.Error())
	assert.Equal(t, before, gw.calls.Load())
}

func TestSubmit_AltaProducto_AlInicioUnaVez(t *testing.T) {
	c, _ := mountedProducts(t, true)
	before := len(c.Items())

	form := Form{"name": "Gula 1kg", "price": "17500", "category_id": "cat-makanan", "supplier_id": "sup-sumber"}
	require.NoError(t, c.Submit(context.Background(), form))

	items := c.Items()
	require.Len(t, items, before+1)
	assert.Equal(t, "Gula 1kg", items[0].Name)
	assert.Equal(t, 0, items[0].Stock, "stock vacío se envía como 0")
	assert.Equal(t, "Makanan", items[0].CategoryName())
	assert.Equal(t, 1, countID(items, func(p entity.Product) string { return p.ID }, items[0].ID))

	v := c.View()
	assert.Empty(t, v.Form["name"], "formulario limpio tras éxito")
	assert.Empty(t, v.Error)
}

func TestSubmit_AltaCadaEntidad_IncrementaUno(t *testing.T) {
	ctx := context.Background()
	gw := memory.NewGateway()
	memory.SeedDemo(gw)
	admin := fakeAuth{admin: true}

	sup := NewController(SupplierSchema(), gw, admin, zerolog.Nop())
	require.NoError(t, sup.Mount(ctx))
	require.NoError(t, sup.Submit(ctx, Form{"name": "UD Maju", "email": "maju@toko.id"}))
	assert.Len(t, sup.Items(), 3)
	assert.Equal(t, "UD Maju", sup.Items()[0].Name)

	st := NewController(StoreSchema(), gw, admin, zerolog.Nop())
	require.NoError(t, st.Mount(ctx))
	require.NoError(t, st.Submit(ctx, Form{"name": "Toko Surabaya", "location": "Surabaya"}))
	assert.Len(t, st.Items(), 3)
	assert.Equal(t, "Toko Surabaya", st.Items()[0].Name)
}

func TestSubmit_AltaCategoria_Reordena(t *testing.T) {
	c, _ := mountedCategories(t)

	require.NoError(t, c.Submit(context.Background(), Form{"name": "Frozen Food"}))
	names := []string{}
	for _, cat := range c.Items() {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"Elektronik", "Frozen Food", "Makanan", "Minuman"}, names)
}

func TestSubmit_EdicionCategoria_ReemplazaEnSuLugar(t *testing.T) {
	c, gw := mountedCategories(t)
	before := gw.calls.Load()

	require.NoError(t, c.Edit("cat-elektronik"))
	assert.Equal(t, before, gw.calls.Load(), "editar no va al backend")
	assert.Equal(t, "Elektronik", c.View().Form["name"])
	assert.Equal(t, "cat-elektronik", c.View().EditingID)

	require.NoError(t, c.Submit(context.Background(), Form{"name": "Zona Elektronik"}))
	items := c.Items()
	assert.Equal(t, "Zona Elektronik", items[0].Name, "la edición no reordena")
	assert.Empty(t, c.View().EditingID)

	// Un list fresco devuelve los valores parcheados.
	rows, err := gw.List(context.Background(), repository.EntityCategories, repository.ListOptions{
		Filters: []repository.Filter{{Column: "id", Value: "cat-elektronik"}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Zona Elektronik", rows[0]["name"])
}

func TestSubmit_EdicionParcial_ConservaCamposOmitidos(t *testing.T) {
	c, gw := mountedCategories(t)

	require.NoError(t, c.Edit("cat-elektronik"))
	require.NoError(t, c.Submit(context.Background(), Form{"name": "Zona Elektronik"}))

	rows, err := gw.List(context.Background(), repository.EntityCategories, repository.ListOptions{
		Filters: []repository.Filter{{Column: "id", Value: "cat-elektronik"}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Zona Elektronik", rows[0]["name"])
	assert.Equal(t, "Perangkat elektronik", rows[0]["description"])

	// Sin edición activa el alta parte de un formulario vacío.
	require.NoError(t, c.Submit(context.Background(), Form{"name": "Frozen Food"}))
	items := c.Items()
	require.Equal(t, "Frozen Food", items[0].Name)
	assert.Empty(t, items[0].Description)
}

func TestSubmit_EdicionProductoParcial_NoFallaValidacion(t *testing.T) {
	c, _ := mountedProducts(t, true)

	require.NoError(t, c.Edit("prd-kopi"))
	require.NoError(t, c.Submit(context.Background(), Form{"stock": "75"}))

	items := c.Items()
	assert.Equal(t, "Kopi Bubuk 200g", items[0].Name)
	assert.Equal(t, 75, items[0].Stock)
	assert.Equal(t, "28500", items[0].Price.String())
}

func TestSubmit_NombreCategoriaDuplicado_ErrorVisible(t *testing.T) {
	c, _ := mountedCategories(t)

	err := c.Submit(context.Background(), Form{"name": "Elektronik"})
	require.Error(t, err)
	assert.True(t, domain.IsConstraint(err))

	v := c.View()
	assert.Contains(t, v.Error, "duplicate key value violates unique constraint")
	assert.Equal(t, "Elektronik", v.Form["name"], "el formulario se conserva")
	assert.Len(t, c.Items(), 3)
}

func TestSubmit_PrecioOStockNegativo_BloqueaSinRed(t *testing.T) {
	c, gw := mountedProducts(t, true)
	before := gw.calls.Load()

	err := c.Submit(context.Background(), Form{"name": "X", "price": "-100", "category_id": "cat-makanan", "supplier_id": "sup-sumber"})
	assert.Equal(t, MsgPriceNotNumber, err.Error())
	err = c.Submit(context.Background(), Form{"name": "X", "price": "100", "stock": "-5", "category_id": "cat-makanan", "supplier_id": "sup-sumber"})
	assert.Equal(t, MsgStockNotInteger, err.Error())
	assert.Equal(t, MsgStockNotInteger, c.View().Error)
	assert.Equal(t, before, gw.calls.Load())
	assert.Len(t, c.Items(), 5)
}

func TestSubmit_FalloBackend_ConservaFormulario(t *testing.T) {
	c, _ := mountedProducts(t, true)
	before := c.Items()

	form := Form{"name": "Huérfano", "price": "1000", "category_id": "cat-nope", "supplier_id": "sup-sumber"}
	err := c.Submit(context.Background(), form)
	require.Error(t, err)
	assert.True(t, domain.IsConstraint(err))

	v := c.View()
	assert.Equal(t, "Huérfano", v.Form["name"])
	assert.Contains(t, v.Error, "violates foreign key constraint")
	assert.Equal(t, before, c.Items())
	assert.Equal(t, StateReady, c.State())
}

func TestSubmit_Concurrente_Busy(t *testing.T) {
	gw := memory.NewGateway()
	memory.SeedDemo(gw)
	c := NewController(StoreSchema(), gw, fakeAuth{admin: true}, zerolog.Nop())
	require.NoError(t, c.Mount(context.Background()))

	release := make(chan struct{})
	gw.SetHook(func(_ context.Context, op, _ string) error {
		if op == "insert" {
			<-release
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Submit(context.Background(), Form{"name": "A", "location": "B"}))
	}()
	require.Eventually(t, func() bool { return c.State() == StateMutating }, time.Second, time.Millisecond)

	err := c.Submit(context.Background(), Form{"name": "C", "location": "D"})
	assert.ErrorIs(t, err, domain.ErrBusy)

	close(release)
	wg.Wait()
	assert.Len(t, c.Items(), 3)
}

func TestEdit_DuranteMutacion_Busy(t *testing.T) {
	gw := memory.NewGateway()
	memory.SeedDemo(gw)
	c := NewController(StoreSchema(), gw, fakeAuth{admin: true}, zerolog.Nop())
	require.NoError(t, c.Mount(context.Background()))

	release := make(chan struct{})
	gw.SetHook(func(_ context.Context, op, _ string) error {
		if op == "insert" {
			<-release
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Submit(context.Background(), Form{"name": "A", "location": "B"}))
	}()
	require.Eventually(t, func() bool { return c.State() == StateMutating }, time.Second, time.Millisecond)

	assert.ErrorIs(t, c.Edit("store-pusat"), domain.ErrBusy)

	close(release)
	wg.Wait()
	require.NoError(t, c.Edit("store-pusat"))
	assert.Equal(t, "store-pusat", c.View().EditingID)
}

// ─── delete ──────────────────────────────────────────────────────────────────

func TestDelete_RequiereConfirmacion(t *testing.T) {
	c, gw := mountedProducts(t, true)
	before := gw.calls.Load()

	require.NoError(t, c.RequestDelete("prd-kopi"))
	assert.Equal(t, "prd-kopi", c.View().PendingDelete)
	assert.Len(t, c.Items(), 5)
	assert.Equal(t, before, gw.calls.Load())

	require.NoError(t, c.CancelDelete())
	assert.Empty(t, c.View().PendingDelete)
	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), domain.ErrNotFound)
}

func TestDelete_Exito_QuitaUnaFila(t *testing.T) {
	c, _ := mountedProducts(t, true)

	require.NoError(t, c.RequestDelete("prd-kopi"))
	require.NoError(t, c.ConfirmDelete(context.Background()))

	items := c.Items()
	assert.Len(t, items, 4)
	assert.Zero(t, countID(items, func(p entity.Product) string { return p.ID }, "prd-kopi"))
	assert.Empty(t, c.View().PendingDelete)
}

func TestDelete_CategoriaReferenciada_ListaIntacta(t *testing.T) {
	c, _ := mountedCategories(t)
	before := c.Items()

	require.NoError(t, c.RequestDelete("cat-makanan"))
	err := c.ConfirmDelete(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsConstraint(err))
	v := c.View()
	assert.Equal(t, before, c.Items())
	assert.Empty(t, v.PendingDelete, "la confirmación se cierra")
	assert.Equal(t, err.Error(), v.Error)
}

func TestRequestDelete_IDInexistente(t *testing.T) {
	c, _ := mountedCategories(t)
	assert.ErrorIs(t, c.RequestDelete("nope"), domain.ErrNotFound)
}

func TestMutacionSinMontar(t *testing.T) {
	c := NewController(StoreSchema(), memory.NewGateway(), fakeAuth{admin: true}, zerolog.Nop())
	err := c.Submit(context.Background(), Form{"name": "A", "location": "B"})
	assert.ErrorIs(t, err, domain.ErrNotMounted)
	assert.Equal(t, StateIdle, c.State())
}
