package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/credentials"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"go.uber.org/zap"
)

//go:generate mockgen -source=resolver.go -destination=resolver_mock.go -package=identity

const (
	msgInvalidToken   = "Invalid auth token."
	msgRevokeDisabled = "Logout is not available."
	msgRevokeFailed   = "Logout failed."
	msgLoggedOut      = "Logged out."
)

// TokenDecoder decodes bearer tokens into claims.
type TokenDecoder interface {
	Decode(ctx context.Context, token string) (*credentials.Claims, bool)
}

// UserFinder looks users up by id.
type UserFinder interface {
	FindByID(ctx context.Context, userID uuid.UUID) result.Result[*models.UserDB]
}

// Denylist tracks revoked token ids.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Resolver turns a bearer token into the identity of its owner.
type Resolver struct {
	decoder  TokenDecoder
	users    UserFinder
	denylist Denylist
	log      *zap.SugaredLogger
}

// NewResolver creates a Resolver. denylist may be nil, in which case tokens
// cannot be revoked.
func NewResolver(decoder TokenDecoder, users UserFinder, denylist Denylist, log *zap.SugaredLogger) *Resolver {
	return &Resolver{
		decoder:  decoder,
		users:    users,
		denylist: denylist,
		log:      log,
	}
}

// Resolve returns the identity bound to token, or nil when the token is
// empty, undecodable, revoked or points at a user that no longer exists.
func (r *Resolver) Resolve(ctx context.Context, token string) *models.Identity {
	if token == "" {
		return nil
	}

	claims, ok := r.decoder.Decode(ctx, token)
	if !ok {
		r.log.Debugw("token rejected")
		return nil
	}

	if r.denylist != nil && claims.TokenID != "" {
		revoked, err := r.denylist.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			r.log.Errorw("failed to check token denylist", "token_id", claims.TokenID, "error", err)
			return nil
		}
		if revoked {
			r.log.Infow("revoked token used", "token_id", claims.TokenID)
			return nil
		}
	}

	user := r.users.FindByID(ctx, claims.UserID)
	if !user.IsOk() {
		r.log.Infow("token owner not resolved", "userID", claims.UserID, "reason", user.Err().Message)
		return nil
	}

	u := user.Value()
	return &models.Identity{
		UserID:   u.UserID,
		Email:    u.Email,
		Username: u.Username,
	}
}

// Revoke puts the token on the denylist until it would have expired anyway.
// Tokens without an expiry stay revoked indefinitely.
func (r *Resolver) Revoke(ctx context.Context, token string) result.Result[models.Ack] {
	claims, ok := r.decoder.Decode(ctx, token)
	if !ok || claims.TokenID == "" {
		return result.Fail[models.Ack](result.Conflict(msgInvalidToken))
	}

	if r.denylist == nil {
		return result.Fail[models.Ack](result.Internal(msgRevokeDisabled))
	}

	var ttl time.Duration
	if !claims.ExpiresAt.IsZero() {
		ttl = time.Until(claims.ExpiresAt)
		if ttl <= 0 {
			return result.Ok(models.Ack{Message: msgLoggedOut})
		}
	}

	if err := r.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		r.log.Errorw("failed to revoke token", "token_id", claims.TokenID, "error", err)
		return result.Fail[models.Ack](result.Internal(msgRevokeFailed))
	}

	return result.Ok(models.Ack{Message: msgLoggedOut, Changed: true})
}
