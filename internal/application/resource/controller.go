package resource

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/records"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

// State estado de la página.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateMutating State = "mutating"
)

// Page vista no genérica del controlador, la que usan el registro de páginas y los handlers.
type Page interface {
	Entity() string
	Mount(ctx context.Context) error
	Unmount()
	Mounted() bool
	SetSearch(term string)
	Submit(ctx context.Context, form Form) error
	Edit(id string) error
	ResetForm() error
	RequestDelete(id string) error
	CancelDelete() error
	ConfirmDelete(ctx context.Context) error
	CanMutate() bool
	View() dto.PageView
}

var _ Page = (*Controller[struct{}])(nil)

// Controller controlador de una página de recurso. Es dueño exclusivo de su
// lista en caché; cada Mount abre una generación nueva y cualquier respuesta
// de una generación anterior se descarta.
type Controller[T any] struct {
	schema Schema[T]
	gw     repository.Gateway
	auth   Authorizer
	log    zerolog.Logger

	mu      sync.Mutex
	state   State
	mounted bool
	gen     uint64
	items   []T
	version uint64
	options map[string][]dto.Option
	err     string

	search        string
	form          Form
	editingID     string
	pendingDelete string

	memo struct {
		valid   bool
		term    string
		version uint64
		out     []T
	}
}

// NewController construye el controlador de la entidad del schema.
func NewController[T any](schema Schema[T], gw repository.Gateway, auth Authorizer, log zerolog.Logger) *Controller[T] {
	return &Controller[T]{
		schema: schema,
		gw:     gw,
		auth:   auth,
		log:    log.With().Str("entity", schema.Entity).Logger(),
		state:  StateIdle,
		form:   schema.emptyForm(),
	}
}

// Entity nombre de la colección.
func (c *Controller[T]) Entity() string { return c.schema.Entity }

// Mount carga la lista con el orden por defecto y las listas de opciones, en paralelo.
// Si algo falla la página queda Ready con lista vacía y el mensaje de error.
func (c *Controller[T]) Mount(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mounted = true
	c.state = StateLoading
	c.err = ""
	c.items = nil
	c.options = nil
	c.version++
	c.search = ""
	c.form = c.schema.emptyForm()
	c.editingID = ""
	c.pendingDelete = ""
	c.mu.Unlock()

	var (
		g       errgroup.Group
		rows    []repository.Row
		options = make([][]dto.Option, len(c.schema.Lookups))
	)
	g.Go(func() error {
		order := c.schema.Order
		r, err := c.gw.List(ctx, c.schema.Entity, repository.ListOptions{OrderBy: &order, Expand: c.schema.Expand})
		if err != nil {
			c.log.Error().Err(err).Str("query", "list").Msg("fallo al cargar la lista")
			return err
		}
		rows = r
		return nil
	})
	for i, lk := range c.schema.Lookups {
		i, lk := i, lk
		g.Go(func() error {
			opts, err := c.loadLookup(ctx, lk)
			if err != nil {
				c.log.Error().Err(err).Str("query", "lookup:"+lk.Entity).Msg("fallo al cargar opciones")
				return err
			}
			options[i] = opts
			return nil
		})
	}
	err := g.Wait()

	var items []T
	if err == nil {
		items, err = records.DecodeAll(rows, c.schema.Decode)
		if err != nil {
			c.log.Error().Err(err).Str("query", "decode").Msg("fila inválida del backend")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen) {
		c.log.Debug().Msg("respuesta de carga descartada")
		return nil
	}
	c.state = StateReady
	if err != nil {
		c.err = err.Error()
		if c.schema.LoadErrorMessage != "" {
			c.err = c.schema.LoadErrorMessage
		}
		return err
	}
	c.items = items
	c.version++
	if len(c.schema.Lookups) > 0 {
		c.options = make(map[string][]dto.Option, len(c.schema.Lookups))
		for i, lk := range c.schema.Lookups {
			c.options[lk.Key] = options[i]
		}
	}
	return nil
}

func (c *Controller[T]) loadLookup(ctx context.Context, lk Lookup) ([]dto.Option, error) {
	rows, err := c.gw.List(ctx, lk.Entity, repository.ListOptions{
		Columns: []string{"id", lk.Label},
		OrderBy: &repository.Order{Column: lk.Label, Ascending: true},
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.Option, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.Option{ID: records.String(r, "id"), Label: records.String(r, lk.Label)})
	}
	return out, nil
}

// Unmount cierra la página; las respuestas pendientes se descartarán al llegar.
func (c *Controller[T]) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.mounted = false
	c.state = StateIdle
	c.items = nil
	c.options = nil
	c.version++
	c.err = ""
	c.search = ""
	c.form = c.schema.emptyForm()
	c.editingID = ""
	c.pendingDelete = ""
}

// Mounted indica si la página está montada.
func (c *Controller[T]) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *Controller[T]) current(gen uint64) bool {
	return c.mounted && c.gen == gen
}

// SetSearch fija el término de búsqueda.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
}

// Filtered vista filtrada de la lista, memoizada sobre (término, versión de la lista).
func (c *Controller[T]) Filtered() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

func (c *Controller[T]) filteredLocked() []T {
	if !c.memo.valid || c.memo.term != c.search || c.memo.version != c.version {
		c.memo.out = Filter(c.items, c.search, c.schema.SearchText)
		c.memo.term = c.search
		c.memo.version = c.version
		c.memo.valid = true
	}
	return append([]T(nil), c.memo.out...)
}

// Items copia de la lista en caché.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// State estado actual.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanMutate indica si se ofrecen crear, editar y eliminar (rol admin).
func (c *Controller[T]) CanMutate() bool {
	return c.auth != nil && c.auth.IsAdmin()
}

// beginMutationLocked valida montaje y exclusión; deja el estado en Mutating.
// Debe llamarse con c.mu tomado.
func (c *Controller[T]) beginMutationLocked() (uint64, error) {
	if !c.mounted {
		return 0, domain.ErrNotMounted
	}
	if c.state == StateMutating {
		return 0, domain.ErrBusy
	}
	c.state = StateMutating
	c.err = ""
	return c.gen, nil
}

// Submit crea (sin edición activa) o actualiza la fila en edición.
// El formulario se conserva si falla; se limpia al confirmar el backend.
func (c *Controller[T]) Submit(ctx context.Context, form Form) error {
	if !c.CanMutate() {
		return domain.ErrForbidden
	}
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return domain.ErrNotMounted
	}
	if c.state == StateMutating {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	base := c.schema.emptyForm()
	if c.editingID != "" {
		base = c.form
	}
	c.form = c.mergeForm(base, form)
	if err := c.validateLocked(); err != nil {
		c.err = err.Error()
		c.mu.Unlock()
		return err
	}
	payload, err := c.schema.Payload(c.form.clone())
	if err != nil {
		c.err = err.Error()
		c.mu.Unlock()
		return err
	}
	editing := c.editingID
	gen, err := c.beginMutationLocked()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	op := "insert"
	var row repository.Row
	if editing == "" {
		row, err = c.gw.Insert(ctx, c.schema.Entity, payload, c.schema.Expand...)
	} else {
		op = "update"
		row, err = c.gw.Update(ctx, c.schema.Entity, editing, payload, c.schema.Expand...)
	}
	var item T
	if err == nil {
		item, err = c.schema.Decode(row)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen) {
		c.log.Debug().Str("op", op).Msg("respuesta de mutación descartada")
		return err
	}
	c.state = StateReady
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Msg("mutación rechazada")
		c.err = err.Error()
		return err
	}
	if editing == "" {
		c.items = ApplyInsert(c.items, item, c.schema.ID, c.schema.Placement)
	} else {
		c.items = ApplyUpdate(c.items, item, c.schema.ID)
	}
	c.version++
	c.form = c.schema.emptyForm()
	c.editingID = ""
	c.log.Debug().Str("op", op).Str("id", c.schema.ID(item)).Msg("mutación aplicada")
	return nil
}

// mergeForm superpone in sobre base, limitado a los campos del esquema.
// En modo edición base es el formulario copiado por Edit, así los campos
// que el cliente omite conservan su valor.
func (c *Controller[T]) mergeForm(base, in Form) Form {
	f := c.schema.emptyForm()
	for k, v := range base {
		if _, ok := f[k]; ok {
			f[k] = v
		}
	}
	for k, v := range in {
		if _, ok := f[k]; ok {
			f[k] = v
		}
	}
	return f
}

func (c *Controller[T]) validateLocked() error {
	for _, name := range c.schema.Required {
		if strings.TrimSpace(c.form[name]) == "" {
			return domain.NewValidationError(c.schema.RequiredMessage)
		}
	}
	return nil
}

// Edit copia la fila id al formulario, sin ir al backend.
func (c *Controller[T]) Edit(id string) error {
	if !c.CanMutate() {
		return domain.ErrForbidden
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return domain.ErrNotMounted
	}
	if c.state == StateMutating {
		return domain.ErrBusy
	}
	item, ok := c.findLocked(id)
	if !ok {
		return domain.ErrNotFound
	}
	c.form = c.mergeForm(c.schema.emptyForm(), c.schema.FormOf(item))
	c.editingID = id
	c.err = ""
	return nil
}

// ResetForm vacía el formulario y sale del modo edición.
func (c *Controller[T]) ResetForm() error {
	if !c.CanMutate() {
		return domain.ErrForbidden
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = c.schema.emptyForm()
	c.editingID = ""
	c.err = ""
	return nil
}

// RequestDelete abre la confirmación de borrado; nunca borra directamente.
func (c *Controller[T]) RequestDelete(id string) error {
	if !c.CanMutate() {
		return domain.ErrForbidden
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return domain.ErrNotMounted
	}
	if _, ok := c.findLocked(id); !ok {
		return domain.ErrNotFound
	}
	c.pendingDelete = id
	return nil
}

// CancelDelete cierra la confirmación.
func (c *Controller[T]) CancelDelete() error {
	if !c.CanMutate() {
		return domain.ErrForbidden
	}
	c.mu.Lock()
	c.pendingDelete = ""
	c.mu.Unlock()
	return nil
}

// ConfirmDelete borra la fila pendiente. La confirmación se cierra siempre;
// si el backend falla la lista no cambia y queda el mensaje de error.
func (c *Controller[T]) ConfirmDelete(ctx context.Context) error {
	if !c.CanMutate() {
		return domain.ErrForbidden
	}
	c.mu.Lock()
	id := c.pendingDelete
	if id == "" && c.mounted {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	gen, err := c.beginMutationLocked()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	err = c.gw.Delete(ctx, c.schema.Entity, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.current(gen) {
		c.log.Debug().Str("op", "delete").Msg("respuesta de mutación descartada")
		return err
	}
	c.state = StateReady
	c.pendingDelete = ""
	if err != nil {
		c.log.Debug().Err(err).Str("op", "delete").Str("id", id).Msg("mutación rechazada")
		c.err = err.Error()
		return err
	}
	c.items = ApplyDelete(c.items, id, c.schema.ID)
	c.version++
	c.log.Debug().Str("op", "delete").Str("id", id).Msg("mutación aplicada")
	return nil
}

func (c *Controller[T]) findLocked(id string) (T, bool) {
	for _, it := range c.items {
		if c.schema.ID(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// View instantánea para el Shell con la lista filtrada ya presentada.
func (c *Controller[T]) View() dto.PageView {
	canMutate := c.CanMutate()

	c.mu.Lock()
	defer c.mu.Unlock()
	filtered := c.filteredLocked()
	rows := make([]dto.ViewRow, 0, len(filtered))
	for _, it := range filtered {
		rows = append(rows, c.schema.Present(it))
	}
	v := dto.PageView{
		Entity:    c.schema.Entity,
		State:     string(c.state),
		Loading:   c.state == StateLoading,
		Error:     c.err,
		Search:    c.search,
		Rows:      rows,
		Total:     len(c.items),
		CanMutate: canMutate,
	}
	if canMutate {
		v.Form = c.form.clone()
		v.EditingID = c.editingID
		v.PendingDelete = c.pendingDelete
		v.Options = c.options
	}
	return v
}
