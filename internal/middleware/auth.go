package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/graciegould/snaglet/internal/auth"
	"github.com/graciegould/snaglet/internal/logger"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity attached by
// Authenticate.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok
}

// TokenVerifier is the slice of the identity provider the middleware
// needs.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, rawToken string) (*auth.Identity, error)
}

type AuthMiddleware struct {
	Verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{Verifier: verifier}
}

// Authenticate gates a handler behind bearer-token verification.
// A missing or malformed Authorization header is rejected before the
// verifier is ever called. On success the verified identity is
// attached to the request context for downstream gates and handlers.
func (a *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Extract the bearer credential
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusForbidden, "Unauthorized: missing Authorization header")
			return
		}

		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusForbidden, "Unauthorized: expected 'Bearer <token>'")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			writeError(w, http.StatusForbidden, "Unauthorized: empty token")
			return
		}

		// 2. Verify against the identity provider
		identity, err := a.Verifier.VerifyToken(r.Context(), token)
		if err != nil {
			// Same outcome for the caller either way; the two kinds
			// stay apart in the logs.
			if errors.Is(err, auth.ErrProviderUnavailable) {
				logger.Error("identity provider unreachable during verification", map[string]any{
					"path":  r.URL.Path,
					"error": err.Error(),
				})
			} else {
				logger.Warn("bearer token rejected", map[string]any{
					"path":  r.URL.Path,
					"error": err.Error(),
				})
			}
			writeError(w, http.StatusForbidden, "Unauthorized: invalid or expired token")
			return
		}

		// 3. Attach identity to context
		ctx := context.WithValue(r.Context(), identityKey, identity)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireClaim gates a handler behind a boolean-true claim on the
// authenticated identity. It must be chained strictly after
// Authenticate: finding no identity on the context is a wiring bug,
// not a runtime condition, and panics (the router's recovery layer
// turns that into a 500 without taking the process down).
func (a *AuthMiddleware) RequireClaim(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				panic("middleware: RequireClaim used without Authenticate")
			}

			if !identity.HasClaim(name) {
				logger.Warn("privileged request denied", map[string]any{
					"path":    r.URL.Path,
					"subject": identity.SubjectID,
					"claim":   name,
				})
				writeError(w, http.StatusForbidden, "Forbidden: Admin privileges required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
