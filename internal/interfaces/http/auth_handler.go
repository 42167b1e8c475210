package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/session"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// AuthHandler expone el Session Store: estado, login, registro y logout.
type AuthHandler struct {
	store *session.Store
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(store *session.Store) *AuthHandler {
	return &AuthHandler{store: store}
}

// Session godoc
// @Summary      Estado de la sesión
// @Description  loading=true mientras se restaura la sesión guardada; identity es null sin sesión.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(dto.SessionResponse{
		Loading:  h.store.Loading(),
		Identity: identityResponse(h.store.Current()),
	})
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea la cuenta pendiente de verificación por email; no inicia sesión.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, display_name, role"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	msg, err := h.store.SignUp(c.UserContext(), in.Email, in.Password, entity.Profile{
		DisplayName: strings.TrimSpace(in.DisplayName),
		Role:        in.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: msg})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.IdentityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	id, err := h.store.SignIn(c.UserContext(), strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(identityResponse(id))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Limpia la sesión local aunque el backend falle.
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.store.SignOut(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

func identityResponse(id *entity.Identity) *dto.IdentityResponse {
	if id == nil {
		return nil
	}
	return &dto.IdentityResponse{
		ID:          id.ID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Role:        id.Role,
		IsAdmin:     id.IsAdmin(),
	}
}
