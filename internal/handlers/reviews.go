package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
)

//go:generate mockgen -source=reviews.go -destination=reviews_mock.go -package=handlers

const (
	msgReviewSaved      = "Review saved."
	msgReviewSaveFailed = "Error saving review."
	msgInvalidRating    = "Rating must be between 0 and 10."
)

// ReviewManager manages reviews and per-movie reports.
type ReviewManager interface {
	UpsertReview(ctx context.Context, in models.ReviewInput, userID uuid.UUID) bool
	ListReviewsByUser(ctx context.Context, userID uuid.UUID) result.Result[[]models.ReviewView]
	ListReviewsByMovie(ctx context.Context, movieID int64) result.Result[[]models.ReviewView]
	MovieReport(ctx context.Context, userID uuid.UUID, movieID int64) result.Result[models.MovieReport]
}

// ReviewRequest carries a review of one movie
// swagger:model ReviewRequest
type ReviewRequest struct {
	// Rating from 0 to 10
	// required: false
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`

	// Free text
	// required: false
	Review *string `json:"review,omitempty"`

	// Date the review was written, defaults to now
	// required: false
	AddedDate *time.Time `json:"added_date,omitempty"`
}

// NewUpsertReviewHandler returns an HTTP handler creating or replacing the caller's review of a movie.
// @Summary Review movie
// @Description Creates the caller's review of the movie or replaces rating, text and date of the existing one
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Param reviewRequest body handlers.ReviewRequest true "Review"
// @Success 200 {object} handlers.MessageResponse "Review saved"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error saving review"
// @Router /movies/{movieID}/review [put]
func NewUpsertReviewHandler(svc ReviewManager) http.HandlerFunc {
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

		var req ReviewRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeBodyError(w, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		in := models.ReviewInput{
			MovieID: movieID,
			Rating:  req.Rating,
			Review:  req.Review,
		}
		if req.AddedDate != nil {
			in.AddedDate = req.AddedDate.UTC()
		}

		if !svc.UpsertReview(r.Context(), in, id.UserID) {
			writeError(w, http.StatusInternalServerError, msgReviewSaveFailed)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: msgReviewSaved})
	}
}

// NewListMyReviewsHandler returns an HTTP handler listing the caller's reviews.
// @Summary List own reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ReviewView
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Error fetching reviews"
// @Router /reviews [get]
func NewListMyReviewsHandler(svc ReviewManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := currentIdentity(w, r)
		if !ok {
			return
		}

		res := svc.ListReviewsByUser(r.Context(), id.UserID)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, res.Value())
	}
}

// NewListMovieReviewsHandler returns an HTTP handler listing every review of a movie.
// @Summary List movie reviews
// @Tags reviews
// @Produce json
// @Param movieID path int true "Movie id"
// @Success 200 {array} models.ReviewView
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 500 {object} handlers.ErrorResponse "Error fetching reviews"
// @Router /movies/{movieID}/reviews [get]
func NewListMovieReviewsHandler(svc ReviewManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := movieIDParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res := svc.ListReviewsByMovie(r.Context(), movieID)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, res.Value())
	}
}

// NewMovieReportHandler returns an HTTP handler reporting the caller's engagement with a movie.
// @Summary Movie report
// @Description Liked and watchlist flags plus the caller's review, if any
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param movieID path int true "Movie id"
// @Success 200 {object} models.MovieReport
// @Failure 400 {object} handlers.ErrorResponse "Invalid movie id"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Couldn't fetch movie review data"
// @Router /movies/{movieID}/report [get]
func NewMovieReportHandler(svc ReviewManager) http.HandlerFunc {
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

		res := svc.MovieReport(r.Context(), id.UserID, movieID)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, res.Value())
	}
}
