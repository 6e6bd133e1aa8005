package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-movie-tracker/internal/credentials"
	"github.com/sbilibin2017/gw-movie-tracker/internal/handlers"
	"github.com/sbilibin2017/gw-movie-tracker/internal/identity"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"go.uber.org/zap"
)

//go:generate mockgen -source=identity.go -destination=identity_mock.go -package=middlewares

// IdentityResolver resolves a bearer token into an identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) *models.Identity
}

// IdentityMiddleware resolves the bearer token of each request, if any, and
// stores the identity in the request context. Requests without a usable
// token pass through unauthenticated.
func IdentityMiddleware(resolver IdentityResolver, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := credentials.TokenFromRequest(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			id := resolver.Resolve(r.Context(), token)
			if id == nil {
				log.Debugw("bearer token did not resolve", "request_id", RequestID(r.Context()))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireIdentity rejects requests that carry no resolved identity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity.FromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(handlers.ErrorResponse{Error: handlers.MsgAuthMissing})
			return
		}
		next.ServeHTTP(w, r)
	})
}
