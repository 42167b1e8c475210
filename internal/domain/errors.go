package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUnknownEntity      = errors.New("entidad desconocida")
	ErrForbidden          = errors.New("acceso denegado: se requiere rol admin")
	ErrNotMounted         = errors.New("la página no está montada")
	ErrBusy               = errors.New("hay otra operación en curso")
	ErrNoSession          = errors.New("no hay sesión activa")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDashboardFetch     = errors.New("Gagal mengambil sebagian atau seluruh data dashboard.")
	ErrReportFetch        = errors.New("Gagal memuat data laporan.")
)

// AuthError fallo de autenticación (credenciales inválidas, cuenta sin verificar,
// password débil). El mensaje se muestra tal cual al usuario.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError construye un AuthError con el mensaje del backend.
func NewAuthError(msg string) *AuthError {
	return &AuthError{Message: msg}
}

// GatewayErrorKind clasifica los fallos del Resource Gateway.
type GatewayErrorKind string

const (
	KindNetwork    GatewayErrorKind = "network"
	KindConstraint GatewayErrorKind = "constraint"
	KindValidation GatewayErrorKind = "validation"
	KindNotFound   GatewayErrorKind = "not_found"
	KindUnknown    GatewayErrorKind = "unknown"
)

// GatewayError fallo de una operación contra el backend. Error() devuelve el
// mensaje del backend sin alterar, que es lo que ve el usuario.
type GatewayError struct {
	Kind    GatewayErrorKind
	Entity  string
	Op      string // list, insert, update, delete, count
	Code    string // código del backend (ej. 23503), si existe
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrNotFound) sobre errores not_found.
func (e *GatewayError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// ValidationError validación de formulario en cliente; bloquea el envío antes de la red.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError construye un ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsConstraint indica si err es una violación de constraint del backend (FK, unique).
func IsConstraint(err error) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == KindConstraint
}

// IsValidation indica si err es un ValidationError de cliente.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsAuth indica si err es un AuthError.
func IsAuth(err error) bool {
	var aErr *AuthError
	return errors.As(err, &aErr)
}

// ClassifyCode traduce un código de error del backend (SQLSTATE de PostgreSQL
// o código PGRST de la API REST) a la categoría del GatewayError.
func ClassifyCode(code string) GatewayErrorKind {
	switch code {
	case "23503", "23505":
		return KindConstraint
	case "22P02", "23502", "23514", "22003", "PGRST204", "PGRST102":
		return KindValidation
	case "PGRST116", "42P01", "PGRST205":
		return KindNotFound
	}
	return KindUnknown
}
