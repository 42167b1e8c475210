package resource

// Parcheo optimista de la lista en caché con la fila confirmada por el backend.
// No hay reconciliación con escritores concurrentes. Todas las funciones
// devuelven una lista nueva y no modifican la recibida.

// ApplyInsert agrega item según la colocación. Si ya existía una fila con el
// mismo id se descarta, de modo que el id queda una sola vez.
func ApplyInsert[T any](list []T, item T, id func(T) string, p Placement[T]) []T {
	key := id(item)
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	for _, v := range list {
		if id(v) != key {
			out = append(out, v)
		}
	}
	if p.resort != nil {
		p.resort(out)
	}
	return out
}

// ApplyUpdate reemplaza en su lugar la fila con el mismo id.
func ApplyUpdate[T any](list []T, item T, id func(T) string) []T {
	key := id(item)
	out := make([]T, len(list))
	for i, v := range list {
		if id(v) == key {
			out[i] = item
			continue
		}
		out[i] = v
	}
	return out
}

// ApplyDelete quita la fila con ese id.
func ApplyDelete[T any](list []T, key string, id func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if id(v) != key {
			out = append(out, v)
		}
	}
	return out
}
