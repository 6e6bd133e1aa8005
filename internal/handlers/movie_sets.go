package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
)

//go:generate mockgen -source=movie_sets.go -destination=movie_sets_mock.go -package=handlers

// WatchlistManager manages the caller's watchlist.
type WatchlistManager interface {
	IsInWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) bool
	AddToWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) result.Result[models.Ack]
	RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, movieID int64) bool
	ListWatchlist(ctx context.Context, userID uuid.UUID) result.Result[[]int64]
}

// LikesManager manages the caller's liked movies.
type LikesManager interface {
	IsLiked(ctx context.Context, userID uuid.UUID, movieID int64) bool
	AddToLikes(ctx context.Context, userID uuid.UUID, movieID int64) result.Result[models.Ack]
	RemoveFromLikes(ctx context.Context, userID uuid.UUID, movieID int64) bool
	ListLikes(ctx context.Context, userID uuid.UUID) result.Result[[]int64]
}

// MovieIDsResponse lists movie ids in insertion order
// swagger:model MovieIDsResponse
type MovieIDsResponse struct {
	MovieIDs []int64 `json:"movie_ids"`
}

// MembershipResponse tells whether a movie is in a collection
// swagger:model MembershipResponse
type MembershipResponse struct {
	MovieID int64 `json:"movie_id"`
	Present bool  `json:"present"`
}

type (
	probeFunc  func(ctx context.Context, userID uuid.UUID, movieID int64) bool
	addFunc    func(ctx context.Context, userID uuid.UUID, movieID int64) result.Result[models.Ack]
	removeFunc func(ctx context.Context, userID uuid.UUID, movieID int64) bool
	listFunc   func(ctx context.Context, userID uuid.UUID) result.Result[[]int64]
)

// NewListWatchlistHandler returns an HTTP handler listing the caller's watchlist.
// @Summary List watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MovieIDsResponse
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error fetching watchlist"
// @Router /watchlist [get]
func NewListWatchlistHandler(svc WatchlistManager) http.HandlerFunc {
	return listHandler(svc.ListWatchlist)
}

// NewInWatchlistHandler returns an HTTP handler telling whether a movie is on the caller's watchlist.
// @Summary Check watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Success 200 {object} handlers.MembershipResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Router /watchlist/{movieID} [get]
func NewInWatchlistHandler(svc WatchlistManager) http.HandlerFunc {
	return probeHandler(svc.IsInWatchlist)
}

// NewAddToWatchlistHandler returns an HTTP handler adding a movie to the caller's watchlist.
// @Summary Add to watchlist
// @Description Adding a movie that is already on the watchlist succeeds with an informational message
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error adding movie to watchlist"
// @Router /watchlist/{movieID} [put]
func NewAddToWatchlistHandler(svc WatchlistManager) http.HandlerFunc {
	return addHandler(svc.AddToWatchlist)
}

// NewRemoveFromWatchlistHandler returns an HTTP handler removing a movie from the caller's watchlist.
// @Summary Remove from watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error removing movie from watchlist"
// @Router /watchlist/{movieID} [delete]
func NewRemoveFromWatchlistHandler(svc WatchlistManager) http.HandlerFunc {
	return removeHandler(svc.RemoveFromWatchlist, "Movie removed from watchlist.", "Error removing movie from watchlist.")
}

// NewListLikesHandler returns an HTTP handler listing the caller's liked movies.
// @Summary List likes
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MovieIDsResponse
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error fetching liked movies"
// @Router /likes [get]
func NewListLikesHandler(svc LikesManager) http.HandlerFunc {
	return listHandler(svc.ListLikes)
}

// NewIsLikedHandler returns an HTTP handler telling whether the caller liked a movie.
// @Summary Check like
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Success 200 {object} handlers.MembershipResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Router /likes/{movieID} [get]
func NewIsLikedHandler(svc LikesManager) http.HandlerFunc {
	return probeHandler(svc.IsLiked)
}

// NewAddToLikesHandler returns an HTTP handler liking a movie.
// @Summary Like movie
// @Description Liking a movie twice succeeds with an informational message
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error liking movie"
// @Router /likes/{movieID} [put]
func NewAddToLikesHandler(svc LikesManager) http.HandlerFunc {
	return addHandler(svc.AddToLikes)
}

// NewRemoveFromLikesHandler returns an HTTP handler unliking a movie.
// @Summary Unlike movie
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error removing like"
// @Router /likes/{movieID} [delete]
func NewRemoveFromLikesHandler(svc LikesManager) http.HandlerFunc {
	return removeHandler(svc.RemoveFromLikes, "Movie unliked.", "Error removing like.")
}

func listHandler(list listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := currentIdentity(w, r)
		if !ok {
			return
		}

		res := list(r.Context(), id.UserID)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, MovieIDsResponse{MovieIDs: res.Value()})
	}
}

func probeHandler(probe probeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := currentIdentity(w, r)
		if !ok {
			return
		}
		movieID, err := movieIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MembershipResponse{
			MovieID: movieID,
			Present: probe(r.Context(), id.UserID, movieID),
		})
	}
}

func addHandler(add addFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := currentIdentity(w, r)
		if !ok {
			return
		}
		movieID, err := movieIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res := add(r.Context(), id.UserID, movieID)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: res.Value().Message})
	}
}

func removeHandler(remove removeFunc, okMsg, failMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := currentIdentity(w, r)
		if !ok {
			return
		}
		movieID, err := movieIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if !remove(r.Context(), id.UserID, movieID) {
			writeError(w, http.StatusInternalServerError, failMsg)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: okMsg})
	}
}
