package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"dog-match/internal/domain/workspace"
)

// workspaceRepo vive solo en memoria: reiniciar el proceso borra todo.
type workspaceRepo struct {
	mu   sync.RWMutex
	byID map[string]*workspace.Workspace
}

func NewWorkspaceRepo() workspace.Repository {
	return &workspaceRepo{
		byID: make(map[string]*workspace.Workspace),
	}
}

func (r *workspaceRepo) Create(ctx context.Context, w *workspace.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w == nil || strings.TrimSpace(w.ID) == "" {
		return errors.New("workspace id required")
	}
	if _, exists := r.byID[w.ID]; exists {
		return errors.New("workspace already exists")
	}
	r.byID[w.ID] = w
	return nil
}

func (r *workspaceRepo) GetByID(ctx context.Context, id string) (*workspace.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.byID[id]
	if !ok {
		return nil, workspace.ErrNotFound
	}
	return w, nil
}

func (r *workspaceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return workspace.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *workspaceRepo) List(ctx context.Context) ([]*workspace.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*workspace.Workspace, 0, len(r.byID))
	for _, w := range r.byID {
		out = append(out, w)
	}
	return out, nil
}
