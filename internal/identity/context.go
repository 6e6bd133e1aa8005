// Package identity resolves bearer tokens into user identities and carries
// the resolved identity through a request context.
package identity

import (
	"context"

	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
)

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx, or nil.
func FromContext(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(contextKey{}).(*models.Identity)
	return id
}
