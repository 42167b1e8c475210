// Package reporting contiene los controladores de agregación: el Dashboard y
// la página de Reportes, más las funciones puras de estadística.
package reporting

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/records"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
	"github.com/andidelouise/TOKO-APP-V2/pkg/rupiah"
)

const (
	recentProductsLimit = 5 // productos en el widget de recientes
	defaultRoleLabel    = "Pengguna"
)

// Dashboard arma el resumen de la página de inicio.
type Dashboard struct {
	gw       repository.Gateway
	identity IdentitySource
	log      zerolog.Logger
}

// NewDashboard construye el controlador del dashboard.
func NewDashboard(gw repository.Gateway, identity IdentitySource, log zerolog.Logger) *Dashboard {
	return &Dashboard{gw: gw, identity: identity, log: log.With().Str("page", "dashboard").Logger()}
}

// Load construye el DashboardDTO.
//
// Seis lecturas en paralelo:
//  1. Count(products)
//  2. Count(suppliers)
//  3. Count(stores)
//  4. List(products) top 5 por created_at desc, con categories(name)
//  5. List(products) solo stock → TotalStock
//  6. List(sales) por created_at asc → serie
//
// Si cualquiera falla se registra cuál y se devuelve ErrDashboardFetch sin datos parciales.
func (d *Dashboard) Load(ctx context.Context) (*dto.DashboardDTO, error) {
	var (
		g                            errgroup.Group
		products, suppliers, stores  int
		recentRows, stockRows, sales []repository.Row
	)

	count := func(entityName string, dst *int) func() error {
		return func() error {
			n, err := d.gw.Count(ctx, entityName)
			if err != nil {
				d.log.Error().Err(err).Str("entity", entityName).Str("query", "count").Msg("fallo en lectura del dashboard")
				return err
			}
			*dst = n
			return nil
		}
	}
	list := func(entityName, query string, opts repository.ListOptions, dst *[]repository.Row) func() error {
		return func() error {
			rows, err := d.gw.List(ctx, entityName, opts)
			if err != nil {
				d.log.Error().Err(err).Str("entity", entityName).Str("query", query).Msg("fallo en lectura del dashboard")
				return err
			}
			*dst = rows
			return nil
		}
	}

	g.Go(count(repository.EntityProducts, &products))
	g.Go(count(repository.EntitySuppliers, &suppliers))
	g.Go(count(repository.EntityStores, &stores))
	g.Go(list(repository.EntityProducts, "recent", repository.ListOptions{
		Columns: []string{"name", "price", "stock"},
		OrderBy: &repository.Order{Column: "created_at", Ascending: false},
		Limit:   recentProductsLimit,
		Expand:  []repository.Expansion{{ForeignKey: "category_id", Table: repository.EntityCategories, Field: "name"}},
	}, &recentRows))
	g.Go(list(repository.EntityProducts, "stock", repository.ListOptions{
		Columns: []string{"stock"},
	}, &stockRows))
	g.Go(list(repository.EntitySales, "sales", repository.ListOptions{
		OrderBy: &repository.Order{Column: "created_at", Ascending: true},
	}, &sales))

	if err := g.Wait(); err != nil {
		return nil, domain.ErrDashboardFetch
	}

	recent, err := records.DecodeAll(recentRows, records.Product)
	if err != nil {
		d.log.Error().Err(err).Str("query", "recent").Msg("fila inválida del backend")
		return nil, domain.ErrDashboardFetch
	}
	stock, err := records.DecodeAll(stockRows, records.Product)
	if err != nil {
		d.log.Error().Err(err).Str("query", "stock").Msg("fila inválida del backend")
		return nil, domain.ErrDashboardFetch
	}
	salesRecords, err := records.DecodeAll(sales, records.Sale)
	if err != nil {
		d.log.Error().Err(err).Str("query", "sales").Msg("fila inválida del backend")
		return nil, domain.ErrDashboardFetch
	}

	out := &dto.DashboardDTO{
		Greeting:       greeting(d.currentIdentity()),
		ProductCount:   products,
		SupplierCount:  suppliers,
		StoreCount:     stores,
		TotalStock:     TotalStock(stock),
		RecentProducts: make([]dto.RecentProductDTO, 0, len(recent)),
		Sales:          SalesSeries(salesRecords),
	}
	for _, p := range recent {
		category := p.CategoryName()
		if category == "" {
			category = "N/A"
		}
		out.RecentProducts = append(out.RecentProducts, dto.RecentProductDTO{
			Name:         p.Name,
			Price:        p.Price,
			PriceLabel:   rupiah.Format(p.Price),
			Stock:        p.Stock,
			CategoryName: category,
		})
	}
	return out, nil
}

func (d *Dashboard) currentIdentity() *entity.Identity {
	if d.identity == nil {
		return nil
	}
	return d.identity.Current()
}

// greeting nombre visible (o email) y rol capitalizado.
func greeting(id *entity.Identity) dto.Greeting {
	if id == nil {
		return dto.Greeting{Role: defaultRoleLabel}
	}
	name := strings.TrimSpace(id.DisplayName)
	if name == "" {
		name = id.Email
	}
	role := defaultRoleLabel
	if r := strings.TrimSpace(id.Role); r != "" {
		role = cases.Title(language.Indonesian).String(r)
	}
	return dto.Greeting{Name: name, Role: role}
}
