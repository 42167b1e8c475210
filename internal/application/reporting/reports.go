package reporting

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/records"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
	"github.com/andidelouise/TOKO-APP-V2/pkg/rupiah"
)

// Stats estadísticas derivadas del conjunto cargado.
type Stats struct {
	ProductCount      int
	InventoryValue    decimal.Decimal
	AveragePrice      decimal.Decimal
	LowStock          []entity.Product
	Categories        []CategoryTotal
	UnlabeledProducts int
	Sales             []dto.SalesPointDTO
}

// Reports controlador de la página de reportes. Las estadísticas se
// recalculan solo cuando cambia la versión de los datos cargados.
type Reports struct {
	gw       repository.Gateway
	renderer ReportRenderer
	log      zerolog.Logger

	mu       sync.Mutex
	gen      uint64
	loaded   bool
	loadErr  error // fallo de la última carga vigente
	version  uint64
	products []entity.Product
	sales    []entity.SaleRecord

	memo struct {
		version uint64
		stats   *Stats
	}
}

// NewReports construye el controlador. renderer puede ser nil si no se exporta PDF.
func NewReports(gw repository.Gateway, renderer ReportRenderer, log zerolog.Logger) *Reports {
	return &Reports{gw: gw, renderer: renderer, log: log.With().Str("page", "reports").Logger()}
}

// Load trae todos los productos (filas crudas, con la etiqueta "category") y
// todas las ventas por created_at asc, en paralelo y todo o nada.
func (r *Reports) Load(ctx context.Context) error {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	var (
		g                     errgroup.Group
		productRows, saleRows []repository.Row
	)
	g.Go(func() error {
		rows, err := r.gw.List(ctx, repository.EntityProducts, repository.ListOptions{})
		if err != nil {
			r.log.Error().Err(err).Str("entity", repository.EntityProducts).Str("query", "list").Msg("fallo en lectura de reportes")
			return err
		}
		productRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := r.gw.List(ctx, repository.EntitySales, repository.ListOptions{
			OrderBy: &repository.Order{Column: "created_at", Ascending: true},
		})
		if err != nil {
			r.log.Error().Err(err).Str("entity", repository.EntitySales).Str("query", "list").Msg("fallo en lectura de reportes")
			return err
		}
		saleRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return r.fail(gen)
	}

	products, err := records.DecodeAll(productRows, records.Product)
	if err != nil {
		r.log.Error().Err(err).Str("entity", repository.EntityProducts).Msg("fila inválida del backend")
		return r.fail(gen)
	}
	sales, err := records.DecodeAll(saleRows, records.Sale)
	if err != nil {
		r.log.Error().Err(err).Str("entity", repository.EntitySales).Msg("fila inválida del backend")
		return r.fail(gen)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		r.log.Debug().Msg("respuesta de carga descartada")
		return nil
	}
	r.products = products
	r.sales = sales
	r.loaded = true
	r.loadErr = nil
	r.version++
	return nil
}

// fail descarta los datos de la carga anterior: un reporte es todo o nada
// y tras un fallo no se sirven cifras viejas.
func (r *Reports) fail(gen uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen == r.gen {
		r.clearLocked()
		r.loadErr = domain.ErrReportFetch
	}
	return domain.ErrReportFetch
}

func (r *Reports) clearLocked() {
	r.loaded = false
	r.products = nil
	r.sales = nil
	r.version++
	r.memo.stats = nil
}

// Loaded indica si hay datos de una carga exitosa.
func (r *Reports) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Unmount descarta los datos y cualquier carga en vuelo.
func (r *Reports) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.clearLocked()
	r.loadErr = nil
}

// Stats estadísticas del último Load exitoso. ErrReportFetch si la última
// carga falló y ErrNotMounted si no hay datos.
func (r *Reports) Stats() (*Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if !r.loaded {
		return nil, domain.ErrNotMounted
	}
	if r.memo.stats != nil && r.memo.version == r.version {
		return r.memo.stats, nil
	}

	groups, unlabeled := StockByCategory(r.products)
	if unlabeled > 0 {
		r.log.Warn().Int("unlabeled", unlabeled).Int("products", len(r.products)).
			Msg("productos sin etiqueta de categoría; el agrupado usa la columna category, no category_id")
	}
	s := &Stats{
		ProductCount:      len(r.products),
		InventoryValue:    InventoryValue(r.products),
		AveragePrice:      AveragePrice(r.products),
		LowStock:          LowStock(r.products, LowStockThreshold),
		Categories:        groups,
		UnlabeledProducts: unlabeled,
		Sales:             SalesSeries(r.sales),
	}
	r.memo.version = r.version
	r.memo.stats = s
	return s, nil
}

// DTO estadísticas listas para el Shell.
func (r *Reports) DTO() (*dto.ReportDTO, error) {
	s, err := r.Stats()
	if err != nil {
		return nil, err
	}
	out := &dto.ReportDTO{
		InventoryValue:      s.InventoryValue,
		InventoryValueLabel: rupiah.Format(s.InventoryValue),
		AveragePrice:        s.AveragePrice.Round(2),
		AveragePriceLabel:   rupiah.Format(s.AveragePrice),
		ProductCount:        s.ProductCount,
		LowStockThreshold:   LowStockThreshold,
		LowStockCount:       len(s.LowStock),
		LowStock:            make([]dto.LowStockDTO, 0, len(s.LowStock)),
		CategoryStock:       make([]dto.CategoryStock, 0, len(s.Categories)),
		Sales:               s.Sales,
		UnlabeledProducts:   s.UnlabeledProducts,
	}
	for _, p := range s.LowStock {
		label := p.CategoryLabel
		if label == "" {
			label = UnlabeledCategory
		}
		out.LowStock = append(out.LowStock, dto.LowStockDTO{Name: p.Name, Stock: p.Stock, Category: label})
	}
	for _, c := range s.Categories {
		out.CategoryStock = append(out.CategoryStock, dto.CategoryStock{Category: c.Label, Stock: c.Stock})
	}
	return out, nil
}

// Export renderiza el reporte cargado con el ReportRenderer configurado.
func (r *Reports) Export() ([]byte, error) {
	if r.renderer == nil {
		return nil, domain.ErrNotFound
	}
	report, err := r.DTO()
	if err != nil {
		return nil, err
	}
	return r.renderer.Render(report)
}
