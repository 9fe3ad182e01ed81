package workspace

import (
	"sync"
	"time"

	"dog-match/internal/domain/browse"
	"dog-match/internal/domain/notice"
	"dog-match/internal/domain/session"
	"dog-match/internal/platform/logger"
	"dog-match/internal/ports/auth"
	"dog-match/internal/ports/catalog"
)

// Workspace es la sesión de navegación de un visitante: su propia credencial
// remota (dentro del gateway/catalog que recibe), su coordinador de sesión,
// su controlador de navegación y sus avisos.
type Workspace struct {
	ID        string
	Session   *session.Coordinator
	Browse    *browse.Controller
	Notices   *notice.Board
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Touch marca actividad del visitante.
func (w *Workspace) Touch(at time.Time) {
	w.mu.Lock()
	w.lastSeen = at
	w.mu.Unlock()
}

// LastSeen es la última actividad; sin actividad, CreatedAt.
func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.lastSeen.IsZero() {
		return w.CreatedAt
	}
	return w.lastSeen
}

// Deps son los clientes remotos de un workspace. Deben compartir transporte.
type Deps struct {
	Gateway auth.SessionGateway
	Catalog catalog.Catalog
	Matcher catalog.Matcher
	Logger  logger.Logger
	Browse  browse.Options
}

// Assemble conecta coordinador, controlador y avisos.
// Un logout exitoso limpia el estado de navegación (favoritos incluidos).
func Assemble(d Deps) *Workspace {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}

	board := notice.NewBoard()
	ctrl := browse.NewController(d.Catalog, d.Matcher, board, log, d.Browse)
	coord := session.NewCoordinator(d.Gateway, d.Catalog,
		session.WithNotifier(board),
		session.WithLogger(log),
		session.WithOnLogout(ctrl.Reset),
	)

	return &Workspace{
		Session: coord,
		Browse:  ctrl,
		Notices: board,
	}
}
