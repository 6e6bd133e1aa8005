package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/credentials"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolver_Resolve(t *testing.T) {
	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Username: "alice", Email: "alice@example.com"}
	claims := &credentials.Claims{UserID: userID, TokenID: "jti-1"}

	tests := []struct {
		name         string
		token        string
		withDenylist bool
		setup        func(dec *MockTokenDecoder, users *MockUserFinder, deny *MockDenylist)
		want         *models.Identity
	}{
		{
			name:  "empty token",
			token: "",
			setup: func(*MockTokenDecoder, *MockUserFinder, *MockDenylist) {},
		},
		{
			name:  "undecodable token",
			token: "garbage",
			setup: func(dec *MockTokenDecoder, _ *MockUserFinder, _ *MockDenylist) {
				dec.EXPECT().Decode(gomock.Any(), "garbage").Return(nil, false)
			},
		},
		{
			name:  "valid token without denylist",
			token: "tok",
			setup: func(dec *MockTokenDecoder, users *MockUserFinder, _ *MockDenylist) {
				dec.EXPECT().Decode(gomock.Any(), "tok").Return(claims, true)
				users.EXPECT().FindByID(gomock.Any(), userID).Return(result.Ok(user))
			},
			want: &models.Identity{UserID: userID, Username: "alice", Email: "alice@example.com"},
		},
		{
			name:         "valid token not revoked",
			token:        "tok",
			withDenylist: true,
			setup: func(dec *MockTokenDecoder, users *MockUserFinder, deny *MockDenylist) {
				dec.EXPECT().Decode(gomock.Any(), "tok").Return(claims, true)
				deny.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(false, nil)
				users.EXPECT().FindByID(gomock.Any(), userID).Return(result.Ok(user))
			},
			want: &models.Identity{UserID: userID, Username: "alice", Email: "alice@example.com"},
		},
		{
			name:         "revoked token",
			token:        "tok",
			withDenylist: true,
			setup: func(dec *MockTokenDecoder, _ *MockUserFinder, deny *MockDenylist) {
				dec.EXPECT().Decode(gomock.Any(), "tok").Return(claims, true)
				deny.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(true, nil)
			},
		},
		{
			name:         "denylist unavailable",
			token:        "tok",
			withDenylist: true,
			setup: func(dec *MockTokenDecoder, _ *MockUserFinder, deny *MockDenylist) {
				dec.EXPECT().Decode(gomock.Any(), "tok").Return(claims, true)
				deny.EXPECT().IsRevoked(gomock.Any(), "jti-1").Return(false, errors.New("connection refused"))
			},
		},
		{
			name:  "user deleted",
			token: "tok",
			setup: func(dec *MockTokenDecoder, users *MockUserFinder, _ *MockDenylist) {
				dec.EXPECT().Decode(gomock.Any(), "tok").Return(claims, true)
				users.EXPECT().FindByID(gomock.Any(), userID).
					Return(result.Fail[*models.UserDB](result.NotFound("User not found.")))
			},
		},
		{
			name:  "user lookup fails",
			token: "tok",
			setup: func(dec *MockTokenDecoder, users *MockUserFinder, _ *MockDenylist) {
				dec.EXPECT().Decode(gomock.Any(), "tok").Return(claims, true)
				users.EXPECT().FindByID(gomock.Any(), userID).
					Return(result.Fail[*models.UserDB](result.Internal("Error fetching users.")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			dec := NewMockTokenDecoder(ctrl)
			users := NewMockUserFinder(ctrl)
			deny := NewMockDenylist(ctrl)
			tt.setup(dec, users, deny)

			var denylist Denylist
			if tt.withDenylist {
				denylist = deny
			}

			r := NewResolver(dec, users, denylist, zap.NewNop().Sugar())
			assert.Equal(t, tt.want, r.Resolve(context.Background(), tt.token))
		})
	}
}

func TestResolver_Revoke(t *testing.T) {
	userID := uuid.New()

	t.Run("invalid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dec := NewMockTokenDecoder(ctrl)
		dec.EXPECT().Decode(gomock.Any(), "bad").Return(nil, false)

		r := NewResolver(dec, NewMockUserFinder(ctrl), NewMockDenylist(ctrl), zap.NewNop().Sugar())
		res := r.Revoke(context.Background(), "bad")
		require.False(t, res.IsOk())
		assert.Equal(t, result.CodeConflict, res.Err().Code)
	})

	t.Run("no denylist configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dec := NewMockTokenDecoder(ctrl)
		dec.EXPECT().Decode(gomock.Any(), "tok").Return(&credentials.Claims{UserID: userID, TokenID: "jti"}, true)

		r := NewResolver(dec, NewMockUserFinder(ctrl), nil, zap.NewNop().Sugar())
		res := r.Revoke(context.Background(), "tok")
		require.False(t, res.IsOk())
		assert.Equal(t, result.CodeInternal, res.Err().Code)
	})

	t.Run("ttl follows expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dec := NewMockTokenDecoder(ctrl)
		deny := NewMockDenylist(ctrl)

		exp := time.Now().Add(time.Hour)
		dec.EXPECT().Decode(gomock.Any(), "tok").Return(&credentials.Claims{UserID: userID, TokenID: "jti", ExpiresAt: exp}, true)
		deny.EXPECT().Revoke(gomock.Any(), "jti", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
				assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
				return nil
			})

		r := NewResolver(dec, NewMockUserFinder(ctrl), deny, zap.NewNop().Sugar())
		res := r.Revoke(context.Background(), "tok")
		require.True(t, res.IsOk())
		assert.True(t, res.Value().Changed)
	})

	t.Run("token without expiry is revoked forever", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dec := NewMockTokenDecoder(ctrl)
		deny := NewMockDenylist(ctrl)

		dec.EXPECT().Decode(gomock.Any(), "tok").Return(&credentials.Claims{UserID: userID, TokenID: "jti"}, true)
		deny.EXPECT().Revoke(gomock.Any(), "jti", time.Duration(0)).Return(nil)

		r := NewResolver(dec, NewMockUserFinder(ctrl), deny, zap.NewNop().Sugar())
		assert.True(t, r.Revoke(context.Background(), "tok").IsOk())
	})

	t.Run("denylist write fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dec := NewMockTokenDecoder(ctrl)
		deny := NewMockDenylist(ctrl)

		dec.EXPECT().Decode(gomock.Any(), "tok").Return(&credentials.Claims{UserID: userID, TokenID: "jti"}, true)
		deny.EXPECT().Revoke(gomock.Any(), "jti", time.Duration(0)).Return(errors.New("connection refused"))

		r := NewResolver(dec, NewMockUserFinder(ctrl), deny, zap.NewNop().Sugar())
		res := r.Revoke(context.Background(), "tok")
		require.False(t, res.IsOk())
		assert.Equal(t, "Logout failed.", res.Err().Message)
	})
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	id := &models.Identity{UserID: uuid.New(), Username: "alice"}
	ctx := WithIdentity(context.Background(), id)
	assert.Same(t, id, FromContext(ctx))
}
