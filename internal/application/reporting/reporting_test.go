package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/memory"
)

// ─── helpers ─────────────────────────────────────────────────────────────────

type staticIdentity struct{ id *entity.Identity }

func (s staticIdentity) Current() *entity.Identity { return s.id }

type fakeRenderer struct{ got *dto.ReportDTO }

func (f *fakeRenderer) Render(r *dto.ReportDTO) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

func seededGateway() *memory.Gateway {
	gw := memory.NewGateway()
	memory.SeedDemo(gw)
	return gw
}

func p(price string, stock int, label string) entity.Product {
	return entity.Product{Price: decimal.RequireFromString(price), Stock: stock, CategoryLabel: label}
}

// ─── funciones puras ─────────────────────────────────────────────────────────

func TestInventoryValue_SumaPrecioPorStock(t *testing.T) {
	products := []entity.Product{p("1000.50", 2, "A"), p("250", 4, "B"), p("99", 0, "")}
	assert.True(t, decimal.RequireFromString("3001").Equal(InventoryValue(products)))
	assert.True(t, InventoryValue(nil).IsZero())
}

func TestLowStock_UmbralEstricto(t *testing.T) {
	products := []entity.Product{p("1", 29, ""), p("1", 30, ""), p("1", 0, ""), p("1", 31, "")}
	low := LowStock(products, LowStockThreshold)
	require.Len(t, low, 2)
	assert.Equal(t, 29, low[0].Stock)
	assert.Equal(t, 0, low[1].Stock)
}

func TestAveragePrice(t *testing.T) {
	assert.True(t, AveragePrice(nil).IsZero())
	avg := AveragePrice([]entity.Product{p("100", 1, ""), p("200", 1, ""), p("400", 1, "")})
	assert.Equal(t, "233.33", avg.Round(2).StringFixed(2))
}

func TestStockByCategory_PrimeraAparicionYSinEtiqueta(t *testing.T) {
	groups, unlabeled := StockByCategory([]entity.Product{
		p("1", 5, "Minuman"), p("1", 3, ""), p("1", 7, "Elektronik"), p("1", 2, "Minuman"), p("1", 1, "  "),
	})
	assert.Equal(t, []CategoryTotal{
		{Label: "Minuman", Stock: 7},
		{Label: UnlabeledCategory, Stock: 4},
		{Label: "Elektronik", Stock: 7},
	}, groups)
	assert.Equal(t, 2, unlabeled)
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, dto.Greeting{Name: "Andi", Role: "Admin"},
		greeting(&entity.Identity{Email: "a@toko.id", DisplayName: "Andi", Role: "admin"}))
	assert.Equal(t, dto.Greeting{Name: "a@toko.id", Role: "User"},
		greeting(&entity.Identity{Email: "a@toko.id", Role: "user"}))
	assert.Equal(t, dto.Greeting{Name: "a@toko.id", Role: "Pengguna"},
		greeting(&entity.Identity{Email: "a@toko.id"}))
	assert.Equal(t, "Pengguna", greeting(nil).Role)
}

// ─── dashboard ───────────────────────────────────────────────────────────────

func TestDashboard_Load(t *testing.T) {
	id := &entity.Identity{Email: "admin@toko.local", DisplayName: "Rina", Role: "admin"}
	d := NewDashboard(seededGateway(), staticIdentity{id}, zerolog.Nop())

	out, err := d.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, out.ProductCount)
	assert.Equal(t, 2, out.SupplierCount)
	assert.Equal(t, 2, out.StoreCount)
	assert.Equal(t, 222, out.TotalStock)
	require.Len(t, out.RecentProducts, 5)
	assert.Equal(t, "Kopi Bubuk 200g", out.RecentProducts[0].Name)
	assert.Equal(t, "Minuman", out.RecentProducts[0].CategoryName)
	assert.Equal(t, "Rp 28.500", out.RecentProducts[0].PriceLabel)
	require.Len(t, out.Sales, 6)
	assert.Equal(t, "Jan", out.Sales[0].Month)
	assert.Equal(t, "Rina", out.Greeting.Name)
}

func TestDashboard_CategoriaColgante_NA(t *testing.T) {
	gw := memory.NewGateway()
	gw.Seed(repository.EntityProducts, repository.Row{"name": "Suelto", "price": 1, "stock": 1, "category_id": "borrada"})
	d := NewDashboard(gw, nil, zerolog.Nop())

	out, err := d.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out.RecentProducts, 1)
	assert.Equal(t, "N/A", out.RecentProducts[0].CategoryName)
}

func TestDashboard_FalloConteoProveedores_SinDatosParciales(t *testing.T) {
	gw := seededGateway()
	gw.SetHook(func(_ context.Context, op, ent string) error {
		if op == "count" && ent == repository.EntitySuppliers {
			return errors.New("connection refused")
		}
		return nil
	})
	var logs bytes.Buffer
	d := NewDashboard(gw, nil, zerolog.New(&logs))

	out, err := d.Load(context.Background())
	assert.Nil(t, out)
	require.ErrorIs(t, err, domain.ErrDashboardFetch)
	assert.Equal(t, "Gagal mengambil sebagian atau seluruh data dashboard.", err.Error())
	assert.Contains(t, logs.String(), `"entity":"suppliers"`)
	assert.Contains(t, logs.String(), `"query":"count"`)
}

// ─── reports ─────────────────────────────────────────────────────────────────

func TestReports_Stats(t *testing.T) {
	var logs bytes.Buffer
	r := NewReports(seededGateway(), nil, zerolog.New(&logs))
	require.NoError(t, r.Load(context.Background()))

	s, err := r.Stats()
	require.NoError(t, err)
	assert.Equal(t, 5, s.ProductCount)
	assert.True(t, decimal.NewFromInt(25835000).Equal(s.InventoryValue))
	assert.True(t, decimal.NewFromInt(154900).Equal(s.AveragePrice))
	require.Len(t, s.LowStock, 2)
	assert.Equal(t, []CategoryTotal{
		{Label: "Elektronik", Stock: 57},
		{Label: "Makanan", Stock: 80},
		{Label: "Minuman", Stock: 25},
		{Label: UnlabeledCategory, Stock: 60},
	}, s.Categories)
	assert.Equal(t, 1, s.UnlabeledProducts)
	assert.Contains(t, logs.String(), "sin etiqueta de categoría")
	require.Len(t, s.Sales, 6)
	assert.True(t, decimal.NewFromInt(2100000).Equal(s.Sales[0].Profit))
}

func TestReports_StatsMemoizadas(t *testing.T) {
	gw := seededGateway()
	r := NewReports(gw, nil, zerolog.Nop())
	require.NoError(t, r.Load(context.Background()))

	first, err := r.Stats()
	require.NoError(t, err)
	second, err := r.Stats()
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, r.Load(context.Background()))
	third, err := r.Stats()
	require.NoError(t, err)
	assert.NotSame(t, first, third, "un Load nuevo invalida la memoización")
}

func TestReports_FalloVentas_TodoONada(t *testing.T) {
	gw := seededGateway()
	gw.SetHook(func(_ context.Context, op, ent string) error {
		if ent == repository.EntitySales {
			return errors.New("boom")
		}
		return nil
	})
	r := NewReports(gw, nil, zerolog.Nop())

	assert.ErrorIs(t, r.Load(context.Background()), domain.ErrReportFetch)
	_, err := r.Stats()
	assert.ErrorIs(t, err, domain.ErrReportFetch)
	assert.False(t, r.Loaded())
}

func TestReports_RecargaFallida_DescartaDatosAnteriores(t *testing.T) {
	gw := seededGateway()
	r := NewReports(gw, &fakeRenderer{}, zerolog.Nop())
	require.NoError(t, r.Load(context.Background()))
	_, err := r.Stats()
	require.NoError(t, err)

	gw.SetHook(func(_ context.Context, op, ent string) error {
		if ent == repository.EntitySales {
			return errors.New("boom")
		}
		return nil
	})
	assert.ErrorIs(t, r.Load(context.Background()), domain.ErrReportFetch)

	_, err = r.Stats()
	assert.ErrorIs(t, err, domain.ErrReportFetch)
	_, err = r.DTO()
	assert.ErrorIs(t, err, domain.ErrReportFetch)
	_, err = r.Export()
	assert.ErrorIs(t, err, domain.ErrReportFetch, "no se exportan cifras viejas")

	gw.SetHook(nil)
	require.NoError(t, r.Load(context.Background()))
	s, err := r.Stats()
	require.NoError(t, err)
	assert.Equal(t, 5, s.ProductCount)
}

func TestReports_ExportUsaRenderer(t *testing.T) {
	rend := &fakeRenderer{}
	r := NewReports(seededGateway(), rend, zerolog.Nop())
	require.NoError(t, r.Load(context.Background()))

	pdf, err := r.Export()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	require.NotNil(t, rend.got)
	assert.Equal(t, 2, rend.got.LowStockCount)
	assert.Equal(t, "Rp 25.835.000", rend.got.InventoryValueLabel)
	assert.Equal(t, LowStockThreshold, rend.got.LowStockThreshold)
}

func TestReports_UnmountLimpia(t *testing.T) {
	r := NewReports(seededGateway(), nil, zerolog.Nop())
	require.NoError(t, r.Load(context.Background()))
	r.Unmount()
	_, err := r.Stats()
	assert.ErrorIs(t, err, domain.ErrNotMounted)
}
