package auth

import "context"

// Credentials con los que se abre sesión en el servicio remoto.
type Credentials struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionGateway abre y cierra la sesión remota.
// La credencial resultante la maneja el transporte, no el llamador.
type SessionGateway interface {
	Login(ctx context.Context, creds Credentials) error
	Logout(ctx context.Context) error
}
