package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-vet-reviews/internal/platform/httpx"
	"pet-vet-reviews/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey   ctxKey = "claims"
	authErrKey  ctxKey = "auth_error"
	legacyToken        = "X-Auth-Token"
)

// AuthContext intenta verificar el token de cada request y, si es válido, deja
// los claims en el contexto. No corta la cadena: las rutas protegidas usan RequireAuth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				ctx := context.WithValue(r.Context(), authErrKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth responde 401 si AuthContext no dejó claims válidos.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		if r.Context().Value(authErrKey) != nil {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		httpx.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return auth.Claims{}, false
	}
	return c, true
}

// UserID es un atajo para handlers detrás de RequireAuth.
func UserID(ctx context.Context) string {
	c, _ := GetClaims(ctx)
	return c.UserID
}

// WithClaims permite a los tests inyectar un usuario sin token.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func tokenFromRequest(r *http.Request) string {
	if t := bearerToken(r.Header.Get("Authorization")); t != "" {
		return t
	}
	return strings.TrimSpace(r.Header.Get(legacyToken))
}

func bearerToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
