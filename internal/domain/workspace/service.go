package workspace

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

// DefaultIdleTTL: un workspace sin actividad por más de esto se descarta.
const DefaultIdleTTL = 30 * time.Minute

// Factory arma un workspace nuevo con su propio transporte.
type Factory func(ctx context.Context) (*Workspace, error)

type Service struct {
	repo    Repository
	factory Factory
	now     func() time.Time
}

type Option func(*Service)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, factory Factory, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		factory: factory,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open crea y registra un workspace. No toca el servicio remoto.
func (s *Service) Open(ctx context.Context) (*Workspace, error) {
	w, err := s.factory(ctx)
	if err != nil {
		return nil, err
	}
	w.ID = uuid.NewString()
	w.CreatedAt = s.now()
	w.Touch(w.CreatedAt)

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Get devuelve el workspace y registra actividad.
func (s *Service) Get(ctx context.Context, id string) (*Workspace, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	w.Touch(s.now())
	return w, nil
}

func (s *Service) Close(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// Sweep cierra los workspaces sin actividad desde hace más de idle.
// Devuelve cuántos cerró.
func (s *Service) Sweep(ctx context.Context, idle time.Duration) (int, error) {
	if idle <= 0 {
		idle = DefaultIdleTTL
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-idle)
	closed := 0
	for _, w := range items {
		if !w.LastSeen().Before(cutoff) {
			continue
		}
		// Otro request pudo cerrarlo en el medio.
		if err := s.repo.Delete(ctx, w.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return closed, err
		}
		closed++
	}
	return closed, nil
}

// RunSweeper llama a Sweep cada interval hasta que ctx se cancela.
func (s *Service) RunSweeper(ctx context.Context, interval, idle time.Duration, onSweep func(closed int, err error)) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Sweep(ctx, idle)
			if onSweep != nil {
				onSweep(n, err)
			}
		}
	}
}
