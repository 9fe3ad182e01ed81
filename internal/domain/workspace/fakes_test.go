package workspace_test

import (
	"context"

	"dog-match/internal/ports/auth"
)

type okGateway struct{}

func (okGateway) Login(ctx context.Context, creds auth.Credentials) error { return nil }
func (okGateway) Logout(ctx context.Context) error                        { return nil }
