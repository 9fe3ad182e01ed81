package fetchapi

import (
	"context"

	"dog-match/internal/domain/browse"
	"dog-match/internal/domain/workspace"
)

// NewWorkspaceFactory arma cada workspace con su propio transporte, así cada
// visitante tiene su propia credencial de sesión.
func NewWorkspaceFactory(cfg Config, opts browse.Options) workspace.Factory {
	return func(ctx context.Context) (*workspace.Workspace, error) {
		c, err := New(cfg)
		if err != nil {
			return nil, err
		}
		return workspace.Assemble(workspace.Deps{
			Gateway: c.Session,
			Catalog: c.Catalog,
			Matcher: c.Match,
			Logger:  cfg.Logger,
			Browse:  opts,
		}), nil
	}
}
