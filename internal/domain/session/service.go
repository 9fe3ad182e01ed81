package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dog-match/internal/domain/notice"
	"dog-match/internal/platform/httpclient"
	"dog-match/internal/platform/logger"
	"dog-match/internal/ports/auth"
	"dog-match/internal/ports/catalog"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrLoginRejected = errors.New("login rejected")
	ErrLogoutFailed  = errors.New("logout failed")
	ErrNetwork       = errors.New("network error")
)

type State string

const (
	Unauthenticated State = "unauthenticated"
	Authenticated   State = "authenticated"
)

// ValidateCredentials recorta espacios y exige name/email no vacíos.
// Lo usa el llamador antes de Login.
func ValidateCredentials(name, email string) (auth.Credentials, error) {
	creds := auth.Credentials{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if creds.Name == "" || creds.Email == "" {
		return auth.Credentials{}, ErrInvalidInput
	}
	return creds, nil
}

// Coordinator lleva el estado autenticado/no autenticado de un usuario.
//
// Unauthenticated -> (login ok) -> Authenticated -> (logout ok) -> Unauthenticated.
// Un 401/403 en otra llamada NO cambia el estado: lo decide quien llama.
type Coordinator struct {
	mu       sync.Mutex
	state    State
	gateway  auth.SessionGateway
	breeds   catalog.BreedLister
	notifier notice.Notifier
	log      logger.Logger
	onLogout func()
}

type Option func(*Coordinator)

func WithNotifier(n notice.Notifier) Option {
	return func(c *Coordinator) {
		if n != nil {
			c.notifier = n
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithOnLogout se ejecuta después de un logout exitoso (p.ej. limpiar favoritos).
func WithOnLogout(fn func()) Option {
	return func(c *Coordinator) { c.onLogout = fn }
}

func NewCoordinator(gateway auth.SessionGateway, breeds catalog.BreedLister, opts ...Option) *Coordinator {
	c := &Coordinator{
		state:    Unauthenticated,
		gateway:  gateway,
		breeds:   breeds,
		notifier: notice.Discard{},
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) Authenticated() bool {
	return c.State() == Authenticated
}

func (c *Coordinator) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// CheckSession sondea el servicio (lista de razas) para saber si ya hay sesión.
// Un sondeo ok promueve a Authenticated. Un sondeo fallido devuelve false pero
// no cambia el estado: solo un logout exitoso pasa a Unauthenticated.
func (c *Coordinator) CheckSession(ctx context.Context) bool {
	if _, err := c.breeds.ListBreeds(ctx); err != nil {
		c.log.Debug("session check failed", map[string]any{"error": err, "status": httpclient.StatusOf(err)})
		return false
	}
	c.setState(Authenticated)
	return true
}

// Login asume credenciales ya validadas (ver ValidateCredentials).
func (c *Coordinator) Login(ctx context.Context, name, email string) error {
	err := c.gateway.Login(ctx, auth.Credentials{Name: name, Email: email})
	if err != nil {
		c.log.Warn("login failed", map[string]any{"error": err, "status": httpclient.StatusOf(err)})
		c.notifier.Notify(notice.LevelError, "Login Failed", "Please check your information and try again.")
		return err
	}

	c.setState(Authenticated)
	c.log.Info("login ok", nil)
	c.notifier.Notify(notice.LevelInfo, "Welcome!", "Successfully logged in. Let's find your perfect dog!")
	return nil
}

// Logout fallido deja la sesión como autenticada (se asume el riesgo de sesión vieja).
func (c *Coordinator) Logout(ctx context.Context) error {
	if err := c.gateway.Logout(ctx); err != nil {
		c.log.Warn("logout failed", map[string]any{"error": err, "status": httpclient.StatusOf(err)})
		c.notifier.Notify(notice.LevelError, "Error", "Logout failed. Please try again.")
		return err
	}

	c.setState(Unauthenticated)
	if c.onLogout != nil {
		c.onLogout()
	}
	c.log.Info("logout ok", nil)
	return nil
}
