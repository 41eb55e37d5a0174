package auth

import (
	"context"
	"errors"
)

// ErrUnauthorized: token ausente, malformado, con firma inválida o expirado.
var ErrUnauthorized = errors.New("unauthorized")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite el bearer token de un usuario ya autenticado.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}
