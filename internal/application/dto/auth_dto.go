package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest entrada para registro. Role: admin, user (o la etiqueta pengguna).
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// IdentityResponse identidad autenticada actual.
type IdentityResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	IsAdmin     bool   `json:"is_admin"`
}

// SessionResponse estado del Session Store. Mientras Loading sea true
// el Shell no debe mostrar contenido protegido.
type SessionResponse struct {
	Loading  bool              `json:"loading"`
	Identity *IdentityResponse `json:"identity"`
}
