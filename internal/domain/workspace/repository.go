package workspace

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("workspace not found")

type Repository interface {
	Create(ctx context.Context, w *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Workspace, error)
}
