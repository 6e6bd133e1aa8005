package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	watchlistTable = "watchlists"
	likesTable     = "liked_movies"
)

// MovieSetRepository stores a per-user set of movie ids in one table with
// (user_id, movie_id) uniqueness. Watchlists and likes share it.
type MovieSetRepository struct {
	db    *sqlx.DB
	log   *zap.SugaredLogger
	table string
}

// NewWatchlistRepository returns the repository backing watchlists.
func NewWatchlistRepository(db *sqlx.DB, log *zap.SugaredLogger) *MovieSetRepository {
	return &MovieSetRepository{db: db, log: log, table: watchlistTable}
}

// NewLikesRepository returns the repository backing liked movies.
func NewLikesRepository(db *sqlx.DB, log *zap.SugaredLogger) *MovieSetRepository {
	return &MovieSetRepository{db: db, log: log, table: likesTable}
}

// Exists reports whether the pair is in the set.
func (r *MovieSetRepository) Exists(ctx context.Context, userID uuid.UUID, movieID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND movie_id = $2)
	`, r.table)
	args := []any{userID, movieID}

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, args...)

	logQuery(r.log, query, args, exists, err)

	return exists, err
}

// Add inserts the pair. Inserting an existing pair is a no-op.
func (r *MovieSetRepository) Add(ctx context.Context, userID uuid.UUID, movieID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, movie_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`, r.table)
	_, err := r.exec(ctx, query, userID, movieID)
	return err
}

// Remove deletes the pair if present and returns the number of rows deleted.
func (r *MovieSetRepository) Remove(ctx context.Context, userID uuid.UUID, movieID int64) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND movie_id = $2
	`, r.table)
	return r.exec(ctx, query, userID, movieID)
}

// ListMovieIDs returns the user's movie ids in insertion order.
func (r *MovieSetRepository) ListMovieIDs(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT movie_id
		FROM %s
		WHERE user_id = $1
		ORDER BY id
	`, r.table)
	args := []any{userID}

	movieIDs := []int64{}
	err := r.db.SelectContext(ctx, &movieIDs, query, args...)

	logQuery(r.log, query, args, movieIDs, err)

	if err != nil {
		return nil, err
	}
	return movieIDs, nil
}

func (r *MovieSetRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(r.log, query, args, rowsAffected, err)

	return rowsAffected, err
}
