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

const userColumns = `id, username, email, password_hash, avatar, created_at`

// UserReadRepository handles user lookups. Absent rows are reported as a nil
// user with a nil error.
type UserReadRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewUserReadRepository(db *sqlx.DB, log *zap.SugaredLogger) *UserReadRepository {
	return &UserReadRepository{db: db, log: log}
}

// GetByUsernameOrEmail returns the first user whose username or email matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $2
		LIMIT 1
	`
	return r.getOne(ctx, query, username, email)
}

// GetByID returns the user with the given id.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, userID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logQuery(r.log, query, args, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository handles user inserts and updates.
type UserWriteRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewUserWriteRepository(db *sqlx.DB, log *zap.SugaredLogger) *UserWriteRepository {
	return &UserWriteRepository{db: db, log: log}
}

// Save inserts a new user and returns the persisted row.
func (r *UserWriteRepository) Save(ctx context.Context, user models.UserDB) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (id, username, email, password_hash, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING ` + userColumns + `
	`
	args := []any{user.UserID, user.Username, user.Email, user.PasswordHash, user.Avatar}

	var saved models.UserDB
	err := r.db.GetContext(ctx, &saved, query, args...)

	// the hash stays out of the log
	logQuery(r.log, query, []any{user.UserID, user.Username, user.Email}, saved.UserID, err)

	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// SetAvatar updates the avatar reference of a user. Updating a missing user
// affects no rows and is not an error.
func (r *UserWriteRepository) SetAvatar(ctx context.Context, userID uuid.UUID, avatar string) error {
	const query = `
		UPDATE users
		SET avatar = $2
		WHERE id = $1
	`
	args := []any{userID, avatar}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(r.log, query, args, rowsAffected, err)

	return err
}
