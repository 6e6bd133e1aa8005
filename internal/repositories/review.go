package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"go.uber.org/zap"
)

const reviewViewSelect = `
	SELECT r.id, r.user_id, r.movie_id, r.rating, r.review, r.added_date, u.username, u.avatar
	FROM movie_reviews r
	JOIN users u ON u.id = r.user_id
`

// ReviewRepository handles movie_reviews rows.
type ReviewRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewReviewRepository(db *sqlx.DB, log *zap.SugaredLogger) *ReviewRepository {
	return &ReviewRepository{db: db, log: log}
}

// Exists reports whether the user has reviewed the movie.
func (r *ReviewRepository) Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM movie_reviews WHERE user_id = $1 AND movie_id = $2)
	`
	args := []any{userID, movieID}

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, args...)

	logQuery(r.log, query, args, exists, err)

	return exists, err
}

// Upsert inserts the review or, when the user already reviewed the movie,
// replaces its rating, text and date in one statement.
func (r *ReviewRepository) Upsert(ctx context.Context, review models.ReviewDB) error {
	const query = `
		INSERT INTO movie_reviews (id, user_id, movie_id, rating, review, added_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review, added_date = EXCLUDED.added_date
	`
	args := []any{review.ReviewID, review.UserID, review.MovieID, review.Rating, review.Review, review.AddedDate}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(r.log, query, args, rowsAffected, err)

	return err
}

// GetWithAuthor returns the user's review of the movie joined with the
// author's display fields, or nil when there is none.
func (r *ReviewRepository) GetWithAuthor(ctx context.Context, userID uuid.UUID, movieID int64) (*models.ReviewView, error) {
	const query = reviewViewSelect + `
		WHERE r.user_id = $1 AND r.movie_id = $2
	`
	args := []any{userID, movieID}

	var review models.ReviewView
	err := r.db.GetContext(ctx, &review, query, args...)

	logQuery(r.log, query, args, review.ReviewID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByUser returns the user's reviews, newest first.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ReviewView, error) {
	const query = reviewViewSelect + `
		WHERE r.user_id = $1
		ORDER BY r.added_date DESC
	`
	return r.list(ctx, query, userID)
}

// ListByMovie returns every review of the movie, newest first.
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID int64) ([]models.ReviewView, error) {
	const query = reviewViewSelect + `
		WHERE r.movie_id = $1
		ORDER BY r.added_date DESC
	`
	return r.list(ctx, query, movieID)
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]models.ReviewView, error) {
	reviews := []models.ReviewView{}
	err := r.db.SelectContext(ctx, &reviews, query, args...)

	logQuery(r.log, query, args, len(reviews), err)

	if err != nil {
		return nil, err
	}
	return reviews, nil
}
