package middleware

import (
	"context"
	"net/http"

	"hestia-ledger-api/internal/model"
	"hestia-ledger-api/internal/service"
	"hestia-ledger-api/pkg/apierror"
)

// SignerKey is the key for storing the resolved signer identity in request context.
const SignerKey contextKey = "signer"

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	TokenService *service.TokenService
}

// NewAuthMiddleware creates an authentication middleware with injected
// dependencies. Every protected route requires an X-Token session token; the
// middleware resolves it to the signer identity the services authorize
// against.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Token")
			if token == "" {
				writeError(w, apierror.Unauthorized("Authentication required. Use the X-Token header."))
				return
			}
			if cfg.TokenService == nil {
				writeError(w, apierror.InternalError("token service unavailable"))
				return
			}

			tokenData, err := cfg.TokenService.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, apierror.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), SignerKey, tokenData.Signer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}

// GetSignerFromContext retrieves the authenticated signer from request context.
func GetSignerFromContext(ctx context.Context) (model.Identity, bool) {
	if signer, ok := ctx.Value(SignerKey).(model.Identity); ok {
		return signer, true
	}
	return "", false
}
