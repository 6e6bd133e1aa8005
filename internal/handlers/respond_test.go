package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/identity"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern, path string, h http.HandlerFunc, body any, id *models.Identity) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if id != nil {
		req = req.WithContext(identity.WithIdentity(req.Context(), id))
	}

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func testIdentity() *models.Identity {
	return &models.Identity{UserID: uuid.New(), Username: "alice", Email: "alice@example.com"}
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		err  *result.DomainError
		code int
	}{
		{result.NotFound("User not found."), http.StatusNotFound},
		{result.Conflict("Username or email already registered."), http.StatusBadRequest},
		{result.Internal("Error fetching users."), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		writeDomainError(rr, tt.err)

		assert.Equal(t, tt.code, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, ErrorResponse{Error: tt.err.Message}, decodeJSON[ErrorResponse](t, rr))
	}
}

func TestValidateRequest(t *testing.T) {
	rating := func(v float64) *float64 { return &v }

	tests := []struct {
		name        string
		req         any
		expectedErr string
	}{
		{name: "valid registration", req: RegisterRequest{Username: "abc", Password: "secret", Email: "alice@example.com"}},
		{name: "username counts runes", req: RegisterRequest{Username: "żółć", Password: "secret", Email: "alice@example.com"}},
		{name: "short username", req: RegisterRequest{Username: "ab", Password: "secret", Email: "alice@example.com"}, expectedErr: "Username must be between 3 and 30 characters."},
		{name: "long username", req: RegisterRequest{Username: strings.Repeat("a", 31), Password: "secret", Email: "alice@example.com"}, expectedErr: "Username must be between 3 and 30 characters."},
		{name: "short password", req: RegisterRequest{Username: "alice", Password: "ab", Email: "alice@example.com"}, expectedErr: "Password must be between 3 and 30 characters."},
		{name: "password over bcrypt limit", req: RegisterRequest{Username: "alice", Password: strings.Repeat("😀", 19), Email: "alice@example.com"}, expectedErr: "Password must be between 3 and 30 characters."},
		{name: "bare name is not an email", req: RegisterRequest{Username: "alice", Password: "secret", Email: "alice"}, expectedErr: msgInvalidEmail},
		{name: "display name is not an email", req: RegisterRequest{Username: "alice", Password: "secret", Email: "Alice <alice@example.com>"}, expectedErr: msgInvalidEmail},
		{name: "no rating", req: ReviewRequest{}},
		{name: "rating in range", req: ReviewRequest{Rating: rating(10)}},
		{name: "negative rating", req: ReviewRequest{Rating: rating(-1)}, expectedErr: msgInvalidRating},
		{name: "rating too high", req: ReviewRequest{Rating: rating(10.5)}, expectedErr: msgInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expectedErr)
		})
	}
}

func TestCurrentIdentity_Missing(t *testing.T) {
	rr := httptest.NewRecorder()
	id, ok := currentIdentity(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Nil(t, id)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, MsgAuthMissing, decodeJSON[ErrorResponse](t, rr).Error)
}
