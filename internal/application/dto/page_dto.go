package dto

// ViewRow fila lista para mostrar; los valores ya vienen formateados.
type ViewRow map[string]any

// Option entrada de un selector (categorías, proveedores).
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PageView estado completo de una página de recurso para el Shell.
type PageView struct {
	Entity  string `json:"entity"`
	State   string `json:"state"` // idle, loading, ready, mutating
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`

	Search string    `json:"search"`
	Rows   []ViewRow `json:"rows"`
	Total  int       `json:"total"` // filas en caché, sin filtrar

	// CanMutate false oculta crear/editar/eliminar (rol no admin).
	CanMutate     bool                `json:"can_mutate"`
	Form          map[string]string   `json:"form"`
	EditingID     string              `json:"editing_id,omitempty"`
	PendingDelete string              `json:"pending_delete,omitempty"`
	Options       map[string][]Option `json:"options,omitempty"`
}

// SubmitRequest cuerpo de POST /api/pages/:entity/submit.
type SubmitRequest struct {
	Form map[string]string `json:"form"`
}

// PageErrorResponse error de una operación de página junto con la vista
// resultante, para que el Shell muestre el mensaje junto al formulario.
type PageErrorResponse struct {
	ErrorResponse
	View *PageView `json:"view,omitempty"`
}
