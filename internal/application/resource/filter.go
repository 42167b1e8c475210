package resource

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter devuelve los elementos cuyo texto buscable contiene term sin
// distinguir mayúsculas. term vacío devuelve todos. No modifica items.
func Filter[T any](items []T, term string, text func(T) []string) []T {
	out := make([]T, 0, len(items))
	if term == "" {
		return append(out, items...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, it := range items {
		for _, s := range text(it) {
			if strings.Contains(fold.String(s), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
