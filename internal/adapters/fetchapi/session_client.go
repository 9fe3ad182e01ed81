package fetchapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"dog-match/internal/domain/session"
	"dog-match/internal/platform/httpclient"
	"dog-match/internal/ports/auth"
)

const (
	loginPath  = "/auth/login"
	logoutPath = "/auth/logout"
)

// SessionClient implementa auth.SessionGateway contra /auth/*.
type SessionClient struct {
	http *httpclient.Client
}

var _ auth.SessionGateway = (*SessionClient)(nil)

func NewSessionClient(c *httpclient.Client) *SessionClient {
	return &SessionClient{http: c}
}

// Login: status no-2xx => ErrLoginRejected, falla de transporte => ErrNetwork.
// Si sale bien, la cookie de sesión queda en el jar del transporte.
func (c *SessionClient) Login(ctx context.Context, creds auth.Credentials) error {
	err := c.http.DoJSON(ctx, http.MethodPost, loginPath, nil, creds, nil)
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return fmt.Errorf("%w: %w", session.ErrLoginRejected, err)
	}
	return fmt.Errorf("%w: %w", session.ErrNetwork, err)
}

// Logout invalida la sesión remota y suelta la credencial local.
func (c *SessionClient) Logout(ctx context.Context) error {
	if err := c.http.DoJSON(ctx, http.MethodPost, logoutPath, nil, nil, nil); err != nil {
		return fmt.Errorf("%w: %w", session.ErrLogoutFailed, err)
	}
	c.http.ResetSession()
	return nil
}
