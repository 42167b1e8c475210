package supabase

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
)

// restError cuerpo de error de PostgREST.
type restError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// authError cuerpo de error de GoTrue; según la versión trae msg, message o error_description.
type authError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
}

func (e authError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func networkError(entity, op string, err error) *domain.GatewayError {
	return &domain.GatewayError{Kind: domain.KindNetwork, Entity: entity, Op: op, Err: err}
}

// gatewayError convierte una respuesta no exitosa de PostgREST en GatewayError
// conservando el mensaje del backend.
func gatewayError(entity, op string, resp *resty.Response) *domain.GatewayError {
	var body restError
	_ = decodeJSON(resp.Body(), &body)

	kind := domain.ClassifyCode(body.Code)
	if kind == domain.KindUnknown && resp.StatusCode() == http.StatusNotFound {
		kind = domain.KindNotFound
	}
	msg := body.Message
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	if msg == "" {
		msg = resp.Status()
	}
	return &domain.GatewayError{Kind: kind, Entity: entity, Op: op, Code: body.Code, Message: msg}
}

// authFailure convierte una respuesta no exitosa de GoTrue en AuthError.
func authFailure(resp *resty.Response) *domain.AuthError {
	var body authError
	_ = decodeJSON(resp.Body(), &body)
	msg := body.text()
	if msg == "" {
		msg = resp.Status()
	}
	return domain.NewAuthError(msg)
}
