// Package pages es la superficie que consume el Shell: un controlador por
// página, montado según la navegación y desmontado al cerrar sesión.
package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/reporting"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/resource"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/session"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

// Nombres de página fuera de los recursos CRUD.
const (
	PageDashboard = "dashboard"
	PageReports   = "reports"
)

// Registry dueño de los controladores de página.
type Registry struct {
	pages     map[string]resource.Page
	dashboard *reporting.Dashboard
	reports   *reporting.Reports
	log       zerolog.Logger

	mu      sync.Mutex
	current string
}

// NewRegistry construye los cuatro controladores de recurso, el dashboard y
// los reportes sobre el mismo gateway y el mismo Session Store.
func NewRegistry(gw repository.Gateway, store *session.Store, renderer reporting.ReportRenderer, log zerolog.Logger) *Registry {
	r := &Registry{
		pages: map[string]resource.Page{
			repository.EntityProducts:   resource.NewController(resource.ProductSchema(), gw, store, log),
			repository.EntityCategories: resource.NewController(resource.CategorySchema(), gw, store, log),
			repository.EntitySuppliers:  resource.NewController(resource.SupplierSchema(), gw, store, log),
			repository.EntityStores:     resource.NewController(resource.StoreSchema(), gw, store, log),
		},
		dashboard: reporting.NewDashboard(gw, store, log),
		reports:   reporting.NewReports(gw, renderer, log),
		log:       log.With().Str("component", "pages").Logger(),
	}
	store.Subscribe(func(id *entity.Identity) {
		if id == nil {
			r.UnmountAll()
		}
	})
	return r
}

// Names páginas de recurso disponibles, ordenadas.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.pages))
	for name := range r.pages {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Page controlador de recurso por nombre de entidad.
func (r *Registry) Page(name string) (resource.Page, error) {
	p, ok := r.pages[name]
	if !ok {
		return nil, domain.ErrUnknownEntity
	}
	return p, nil
}

// Dashboard controlador del dashboard.
func (r *Registry) Dashboard() *reporting.Dashboard { return r.dashboard }

// Reports controlador de reportes.
func (r *Registry) Reports() *reporting.Reports { return r.reports }

// Current página montada ("" si ninguna).
func (r *Registry) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate desmonta la página actual y monta la seleccionada. Para el
// dashboard no hay estado que montar; los reportes cargan sus datos.
func (r *Registry) Navigate(ctx context.Context, name string) error {
	if _, ok := r.pages[name]; !ok && name != PageDashboard && name != PageReports {
		return domain.ErrUnknownEntity
	}

	r.mu.Lock()
	prev := r.current
	r.current = name
	r.mu.Unlock()

	if prev != "" && prev != name {
		r.unmount(prev)
	}
	r.log.Debug().Str("from", prev).Str("to", name).Msg("navegación")

	switch name {
	case PageDashboard:
		return nil
	case PageReports:
		return r.reports.Load(ctx)
	default:
		return r.pages[name].Mount(ctx)
	}
}

// Ensure monta la página si no es la actual; no recarga si ya lo está.
func (r *Registry) Ensure(ctx context.Context, name string) (resource.Page, error) {
	p, err := r.Page(name)
	if err != nil {
		return nil, err
	}
	if r.Current() == name && p.Mounted() {
		return p, nil
	}
	if err := r.Navigate(ctx, name); err != nil {
		return p, err
	}
	return p, nil
}

func (r *Registry) unmount(name string) {
	switch name {
	case PageDashboard:
	case PageReports:
		r.reports.Unmount()
	default:
		if p, ok := r.pages[name]; ok {
			p.Unmount()
		}
	}
}

// UnmountAll desmonta todo; se llama al cerrar sesión.
func (r *Registry) UnmountAll() {
	r.mu.Lock()
	r.current = ""
	r.mu.Unlock()
	for _, p := range r.pages {
		p.Unmount()
	}
	r.reports.Unmount()
	r.log.Debug().Msg("páginas desmontadas")
}
