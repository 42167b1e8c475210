// Package session contiene el Session Store: la identidad autenticada actual,
// su rol y la notificación de cambios a los suscriptores.
//
// La autorización por rol que se deriva de aquí es solo del lado cliente;
// la aplicación real de permisos corresponde al backend.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

// SignUpMessage mensaje literal mostrado tras un registro exitoso; el usuario
// debe verificar su email antes del primer inicio de sesión.
const SignUpMessage = "Pendaftaran berhasil! Silakan cek email Anda untuk verifikasi."

// Store Session Store inyectable (sin estado global).
type Store struct {
	provider repository.AuthProvider
	tokens   TokenStore
	log      zerolog.Logger
	now      func() time.Time

	mu        sync.RWMutex
	session   *entity.Session
	epoch     uint64 // se incrementa en cada SignIn/SignOut
	listeners map[int]Listener
	nextID    int

	refreshMu sync.Mutex
	ready     chan struct{}
	startOnce sync.Once
}

// NewStore construye el store. tokens puede ser nil (sin persistencia).
func NewStore(provider repository.AuthProvider, tokens TokenStore, log zerolog.Logger) *Store {
	return &Store{
		provider:  provider,
		tokens:    tokens,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]Listener),
		ready:     make(chan struct{}),
	}
}

// Start lanza la restauración asíncrona de la sesión previa y retorna de inmediato.
// Hasta que termine, Loading() es true y los consumidores no deben mostrar contenido protegido.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go func() {
			defer close(s.ready)
			s.restore(ctx)
		}()
	})
}

// Loading indica si la restauración inicial sigue en curso.
func (s *Store) Loading() bool {
	select {
	case <-s.ready:
		return false
	default:
		return true
	}
}

// Ready se cierra cuando termina la restauración inicial.
func (s *Store) Ready() <-chan struct{} { return s.ready }

// WaitReady bloquea hasta que termine la restauración o se cancele ctx.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) restore(ctx context.Context) {
	if s.tokens == nil {
		return
	}
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	saved, err := s.tokens.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la sesión guardada")
		return
	}
	if saved == nil {
		return
	}

	sess := saved
	if sess.Expired(s.now()) {
		if sess.RefreshToken == "" {
			s.discardSaved()
			return
		}
		sess, err = s.provider.Refresh(ctx, saved.RefreshToken)
		if err != nil {
			s.log.Info().Err(err).Msg("sesión guardada expirada y no renovable")
			s.discardSaved()
			return
		}
	}

	identity, err := s.provider.User(ctx, sess.AccessToken)
	if err != nil {
		s.log.Info().Err(err).Msg("sesión guardada rechazada por el backend")
		s.discardSaved()
		return
	}
	sess.Identity = *identity

	// Un SignIn/SignOut durante la restauración gana: la respuesta tardía se descarta.
	if !s.apply(sess, epoch) {
		return
	}
	s.log.Info().Str("user_id", identity.ID).Msg("sesión restaurada")
}

func (s *Store) discardSaved() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo borrar la sesión guardada")
	}
}

// apply instala la sesión si epoch sigue vigente, la persiste y notifica.
func (s *Store) apply(sess *entity.Session, epoch uint64) bool {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return false
	}
	s.epoch++
	s.session = sess
	s.mu.Unlock()

	if s.tokens != nil {
		if err := s.tokens.Save(sess); err != nil {
			s.log.Warn().Err(err).Msg("no se pudo guardar la sesión")
		}
	}
	s.notify()
	return true
}

// SignIn valida credenciales contra el backend y actualiza la identidad actual.
// Un fallo se devuelve como *domain.AuthError con el mensaje del backend.
func (s *Store) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !s.apply(sess, epoch) {
		// Otro SignIn/SignOut terminó antes; la identidad vigente es la suya.
		return s.Current(), nil
	}
	s.log.Info().Str("user_id", sess.Identity.ID).Str("role", sess.Identity.Role).Msg("sesión iniciada")
	id := sess.Identity
	return &id, nil
}

// SignUp crea una cuenta pendiente de verificación. No inicia sesión.
func (s *Store) SignUp(ctx context.Context, email, password string, profile entity.Profile) (string, error) {
	profile.Role = entity.NormalizeRole(profile.Role)
	if err := s.provider.SignUp(ctx, email, password, profile); err != nil {
		return "", err
	}
	return SignUpMessage, nil
}

// SignOut limpia la identidad actual y notifica. La sesión local se borra aunque
// falle la llamada al backend (el fallo solo se registra).
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	prev := s.session
	s.session = nil
	s.epoch++
	s.mu.Unlock()

	if s.tokens != nil {
		s.discardSaved()
	}
	s.notify()

	if prev == nil {
		return
	}
	if err := s.provider.SignOut(ctx, prev.AccessToken); err != nil {
		s.log.Warn().Err(err).Msg("el backend rechazó el cierre de sesión")
	}
	s.log.Info().Str("user_id", prev.Identity.ID).Msg("sesión cerrada")
}

// Current devuelve una copia de la identidad actual o nil.
func (s *Store) Current() *entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	id := s.session.Identity
	return &id
}

// IsAdmin rol de la identidad actual == admin.
func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}

// AccessToken devuelve el token de acceso vigente, renovándolo si expiró.
// Si la renovación falla se devuelve el token anterior y el backend responderá
// con su propio error. "" si no hay sesión.
func (s *Store) AccessToken(ctx context.Context) string {
	s.mu.RLock()
	sess := s.session
	epoch := s.epoch
	s.mu.RUnlock()
	if sess == nil {
		return ""
	}
	if !sess.Expired(s.now()) || sess.RefreshToken == "" {
		return sess.AccessToken
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Otra goroutine pudo renovar mientras esperábamos.
	s.mu.RLock()
	if s.epoch != epoch && s.session != nil {
		tok := s.session.AccessToken
		s.mu.RUnlock()
		return tok
	}
	s.mu.RUnlock()

	fresh, err := s.provider.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo renovar el token de acceso")
		return sess.AccessToken
	}
	fresh.Identity = sess.Identity
	s.apply(fresh, epoch)
	return fresh.AccessToken
}

// Subscribe registra un listener; devuelve la función para darlo de baja.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// notify llama a los listeners fuera del lock, en orden de suscripción.
func (s *Store) notify() {
	s.mu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	fns := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	var current *entity.Identity
	if s.session != nil {
		id := s.session.Identity
		current = &id
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		if current == nil {
			fn(nil)
			continue
		}
		c := *current
		fn(&c)
	}
}
