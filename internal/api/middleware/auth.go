package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mvdk-dev/playmix/internal/auth"
)

const identityKey ctxKey = iota + 1

// Authenticate verifies the Authorization header and stores the caller's
// identity in the request context. Requests without a valid token are
// rejected with 401.
func Authenticate(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := verifier.Verify(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "A valid bearer token is required")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin rejects authenticated callers that do not carry the admin
// type. It must be used after Authenticate in the chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFrom(r.Context())
		if identity == nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "A valid bearer token is required")
			return
		}
		if !identity.Admin {
			writeAuthError(w, http.StatusForbidden, "forbidden", "Admin privileges are required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom retrieves the authenticated identity from context.
// Returns nil when the request did not pass through Authenticate.
func IdentityFrom(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

// writeAuthError mirrors the handler package's error envelope without
// importing it, keeping the middleware package dependency-free.
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}
