package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/testpg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

var userRowColumns = []string{"id", "username", "email", "password_hash", "avatar", "created_at"}

func TestUserReadRepository_GetByUsernameOrEmail_Mock(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, zap.NewNop().Sugar())

		mock.ExpectQuery("FROM users").
			WithArgs("alice", "alice@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(userID.String(), "alice", "alice@example.com", "hash", nil, time.Now()))

		user, err := repo.GetByUsernameOrEmail(ctx, "alice", "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "alice", user.Username)
		assert.Nil(t, user.Avatar)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, zap.NewNop().Sugar())

		mock.ExpectQuery("FROM users").
			WithArgs("bob", "bob@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repo.GetByUsernameOrEmail(ctx, "bob", "bob@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db, zap.NewNop().Sugar())

		mock.ExpectQuery("FROM users").WillReturnError(errors.New("connection refused"))

		user, err := repo.GetByUsernameOrEmail(ctx, "bob", "bob@example.com")
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByID_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, zap.NewNop().Sugar())
	userID := uuid.New()

	mock.ExpectQuery("WHERE id =").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(userID.String(), "carol", "carol@example.com", "hash", "carol.png", time.Now()))

	user, err := repo.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, "carol.png", *user.Avatar)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, zap.NewNop().Sugar())
	userID := uuid.New()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(userID, "dave", "dave@example.com", "hash", nil).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(userID.String(), "dave", "dave@example.com", "hash", nil, time.Now()))

	saved, err := repo.Save(context.Background(), models.UserDB{
		UserID:       userID,
		Username:     "dave",
		Email:        "dave@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, saved.UserID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_SetAvatar_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, zap.NewNop().Sugar())
	userID := uuid.New()

	// zero affected rows is still a success
	mock.ExpectExec("UPDATE users").
		WithArgs(userID, "x.png").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetAvatar(context.Background(), userID, "x.png")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositories_Postgres(t *testing.T) {
	db := testpg.Postgres(t)
	log := zap.NewNop().Sugar()
	ctx := context.Background()

	writeRepo := NewUserWriteRepository(db, log)
	readRepo := NewUserReadRepository(db, log)

	charlie, err := writeRepo.Save(ctx, models.UserDB{
		UserID: uuid.New(), Username: "charlie", Email: "charlie@example.com", PasswordHash: "secret",
	})
	require.NoError(t, err)
	_, err = writeRepo.Save(ctx, models.UserDB{
		UserID: uuid.New(), Username: "dave", Email: "dave@example.com", PasswordHash: "secret2",
	})
	require.NoError(t, err)

	t.Run("ByUsername", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "charlie", "nobody@example.com")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("ByEmail", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "nobody", "dave@example.com")
		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "dave", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := readRepo.GetByUsernameOrEmail(ctx, "nonexistent", "nonexistent@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := writeRepo.Save(ctx, models.UserDB{
			UserID: uuid.New(), Username: "charlie", Email: "other@example.com", PasswordHash: "x",
		})
		assert.Error(t, err)
	})

	t.Run("SetAvatar", func(t *testing.T) {
		require.NoError(t, writeRepo.SetAvatar(ctx, charlie.UserID, "charlie.png"))

		user, err := readRepo.GetByID(ctx, charlie.UserID)
		require.NoError(t, err)
		require.NotNil(t, user.Avatar)
		assert.Equal(t, "charlie.png", *user.Avatar)

		assert.NoError(t, writeRepo.SetAvatar(ctx, uuid.New(), "ghost.png"))
	})
}
