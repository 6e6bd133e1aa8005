package handlers

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"github.com/stretchr/testify/assert"
)

func TestWatchlistHandlers(t *testing.T) {
	me := testIdentity()

	tests := []struct {
		name         string
		method       string
		pattern      string
		path         string
		id           *models.Identity
		build        func(m *MockWatchlistManager) http.HandlerFunc
		mockSetup    func(m *MockWatchlistManager)
		expectedCode int
		expectedBody string
	}{
		{
			name:    "list",
			method:  http.MethodGet,
			pattern: "/watchlist",
			path:    "/watchlist",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewListWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().ListWatchlist(gomock.Any(), me.UserID).Return(result.Ok([]int64{3, 1}))
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"movie_ids":[3,1]}`,
		},
		{
			name:    "list empty",
			method:  http.MethodGet,
			pattern: "/watchlist",
			path:    "/watchlist",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewListWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().ListWatchlist(gomock.Any(), me.UserID).Return(result.Ok([]int64{}))
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"movie_ids":[]}`,
		},
		{
			name:    "list failure",
			method:  http.MethodGet,
			pattern: "/watchlist",
			path:    "/watchlist",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewListWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().ListWatchlist(gomock.Any(), me.UserID).
					Return(result.Fail[[]int64](result.Internal("Error fetching watchlist. Try again later.")))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Error fetching watchlist. Try again later."}`,
		},
		{
			name:         "list unauthenticated",
			method:       http.MethodGet,
			pattern:      "/watchlist",
			path:         "/watchlist",
			build:        func(m *MockWatchlistManager) http.HandlerFunc { return NewListWatchlistHandler(m) },
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:    "probe",
			method:  http.MethodGet,
			pattern: "/watchlist/{movieID}",
			path:    "/watchlist/550",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewInWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().IsInWatchlist(gomock.Any(), me.UserID, int64(550)).Return(true)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"movie_id":550,"present":true}`,
		},
		{
			name:    "add",
			method:  http.MethodPut,
			pattern: "/watchlist/{movieID}",
			path:    "/watchlist/550",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewAddToWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().AddToWatchlist(gomock.Any(), me.UserID, int64(550)).
					Return(result.Ok(models.Ack{Message: "Movie added to watchlist.", Changed: true}))
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Movie added to watchlist."}`,
		},
		{
			name:    "add already present",
			method:  http.MethodPut,
			pattern: "/watchlist/{movieID}",
			path:    "/watchlist/550",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewAddToWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().AddToWatchlist(gomock.Any(), me.UserID, int64(550)).
					Return(result.Ok(models.Ack{Message: "Movie already in watchlist."}))
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Movie already in watchlist."}`,
		},
		{
			name:         "add bad movie id",
			method:       http.MethodPut,
			pattern:      "/watchlist/{movieID}",
			path:         "/watchlist/abc",
			id:           me,
			build:        func(m *MockWatchlistManager) http.HandlerFunc { return NewAddToWatchlistHandler(m) },
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Movie id must be a positive integer."}`,
		},
		{
			name:         "add non-positive movie id",
			method:       http.MethodPut,
			pattern:      "/watchlist/{movieID}",
			path:         "/watchlist/0",
			id:           me,
			build:        func(m *MockWatchlistManager) http.HandlerFunc { return NewAddToWatchlistHandler(m) },
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "remove",
			method:  http.MethodDelete,
			pattern: "/watchlist/{movieID}",
			path:    "/watchlist/550",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewRemoveFromWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().RemoveFromWatchlist(gomock.Any(), me.UserID, int64(550)).Return(true)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"Movie removed from watchlist."}`,
		},
		{
			name:    "remove failure",
			method:  http.MethodDelete,
			pattern: "/watchlist/{movieID}",
			path:    "/watchlist/550",
			id:      me,
			build:   func(m *MockWatchlistManager) http.HandlerFunc { return NewRemoveFromWatchlistHandler(m) },
			mockSetup: func(m *MockWatchlistManager) {
				m.EXPECT().RemoveFromWatchlist(gomock.Any(), me.UserID, int64(550)).Return(false)
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Error removing movie from watchlist."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockWatchlistManager(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := serve(t, tt.method, tt.pattern, tt.path, tt.build(mockSvc), nil, tt.id)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestLikesHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	me := testIdentity()
	mockSvc := NewMockLikesManager(ctrl)

	mockSvc.EXPECT().ListLikes(gomock.Any(), me.UserID).Return(result.Ok([]int64{7}))
	mockSvc.EXPECT().IsLiked(gomock.Any(), me.UserID, int64(7)).Return(false)
	mockSvc.EXPECT().AddToLikes(gomock.Any(), me.UserID, int64(7)).Return(result.Ok(models.Ack{Message: "Movie liked.", Changed: true}))
	mockSvc.EXPECT().RemoveFromLikes(gomock.Any(), me.UserID, int64(7)).Return(true)
	mockSvc.EXPECT().AddToLikes(gomock.Any(), me.UserID, int64(8)).Return(result.Fail[models.Ack](result.Internal("Error liking movie.")))

	rr := serve(t, http.MethodGet, "/likes", "/likes", NewListLikesHandler(mockSvc), nil, me)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"movie_ids":[7]}`, rr.Body.String())

	rr = serve(t, http.MethodGet, "/likes/{movieID}", "/likes/7", NewIsLikedHandler(mockSvc), nil, me)
	assert.JSONEq(t, `{"movie_id":7,"present":false}`, rr.Body.String())

	rr = serve(t, http.MethodPut, "/likes/{movieID}", "/likes/7", NewAddToLikesHandler(mockSvc), nil, me)
	assert.JSONEq(t, `{"message":"Movie liked."}`, rr.Body.String())

	rr = serve(t, http.MethodDelete, "/likes/{movieID}", "/likes/7", NewRemoveFromLikesHandler(mockSvc), nil, me)
	assert.JSONEq(t, `{"message":"Movie unliked."}`, rr.Body.String())

	rr = serve(t, http.MethodPut, "/likes/{movieID}", "/likes/8", NewAddToLikesHandler(mockSvc), nil, me)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Error liking movie."}`, rr.Body.String())

	rr = serve(t, http.MethodPut, "/likes/{movieID}", "/likes/8", NewAddToLikesHandler(mockSvc), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
