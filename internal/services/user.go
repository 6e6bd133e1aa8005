package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user.go -destination=user_mock.go -package=services

// Messages surfaced to callers. Storage details are only logged.
const (
	msgAlreadyRegistered = "Username or email already registered."
	msgRegisterFailed    = "Error registering user."
	msgUserNotFound      = "User not found."
	msgFetchUsersFailed  = "Error fetching users."
	msgBadCredentials    = "Incorrect username or password."
	msgLoginFailed       = "Login failed."
	msgAvatarUpdated     = "Avatar updated."
	msgAvatarFailed      = "Error updating avatar."
)

// UserReader defines read-only operations for users. Absent users are
// reported as (nil, nil).
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.UserDB) (*models.UserDB, error)
	SetAvatar(ctx context.Context, userID uuid.UUID, avatar string) error
}

// CredentialManager hashes passwords and issues tokens.
type CredentialManager interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
}

// UserService owns the users table: registration, lookups, login and
// avatar updates.
type UserService struct {
	reader UserReader
	writer UserWriter
	creds  CredentialManager
	log    *zap.SugaredLogger
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, creds CredentialManager, log *zap.SugaredLogger) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		creds:  creds,
		log:    log,
	}
}

// Register creates a user after checking that neither the username nor the
// email is taken. The check and the insert are separate round trips; the
// UNIQUE constraints turn a lost race into an INTERNAL failure.
func (svc *UserService) Register(ctx context.Context, in models.RegisterInput) result.Result[*models.UserDB] {
	existing := svc.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if existing.IsOk() {
		svc.log.Infow("user already exists", "username", in.Username, "email", in.Email)
		return result.Fail[*models.UserDB](result.Conflict(msgAlreadyRegistered))
	}
	if existing.Err().Code != result.CodeNotFound {
		return result.Fail[*models.UserDB](existing.Err())
	}

	hashed, err := svc.creds.Hash(in.Password)
	if err != nil {
		svc.log.Errorw("failed to hash password", "err", err)
		return result.Fail[*models.UserDB](result.Internal(msgRegisterFailed))
	}

	user, err := svc.writer.Save(ctx, models.UserDB{
		UserID:       uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		Avatar:       in.Avatar,
	})
	if err != nil {
		svc.log.Errorw("failed to save user", "username", in.Username, "err", err)
		return result.Fail[*models.UserDB](result.Internal(msgRegisterFailed))
	}

	return result.Ok(user)
}

// FindByUsernameOrEmail returns the user matching either field.
func (svc *UserService) FindByUsernameOrEmail(ctx context.Context, username, email string) result.Result[*models.UserDB] {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		svc.log.Errorw("failed to get user", "username", username, "email", email, "err", err)
		return result.Fail[*models.UserDB](result.Internal(msgFetchUsersFailed))
	}
	if user == nil {
		return result.Fail[*models.UserDB](result.NotFound(msgUserNotFound))
	}
	return result.Ok(user)
}

// FindByID returns the user with the given id.
func (svc *UserService) FindByID(ctx context.Context, userID uuid.UUID) result.Result[*models.UserDB] {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		svc.log.Errorw("failed to get user", "userID", userID, "err", err)
		return result.Fail[*models.UserDB](result.Internal(msgFetchUsersFailed))
	}
	if user == nil {
		return result.Fail[*models.UserDB](result.NotFound(msgUserNotFound))
	}
	return result.Ok(user)
}

// Authenticate checks a username-or-email and password pair and returns a
// bearer token. An unknown identifier is NOT_FOUND and a wrong password is
// CONFLICT; both carry the same message. Storage faults become a generic
// INTERNAL "Login failed.".
func (svc *UserService) Authenticate(ctx context.Context, identifier, password string) result.Result[string] {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		svc.log.Errorw("failed to get user", "identifier", identifier, "err", err)
		return result.Fail[string](result.Internal(msgLoginFailed))
	}
	if user == nil {
		svc.log.Infow("user does not exist", "identifier", identifier)
		return result.Fail[string](result.NotFound(msgBadCredentials))
	}

	if !svc.creds.Verify(password, user.PasswordHash) {
		svc.log.Infow("invalid credentials", "identifier", identifier)
		return result.Fail[string](result.Conflict(msgBadCredentials))
	}

	token, err := svc.creds.Issue(ctx, user.UserID)
	if err != nil {
		svc.log.Errorw("failed to issue token", "userID", user.UserID, "err", err)
		return result.Fail[string](result.Internal(msgLoginFailed))
	}

	return result.Ok(token)
}

// SetAvatar stores the avatar reference on the user row without checking
// that the user exists.
func (svc *UserService) SetAvatar(ctx context.Context, userID uuid.UUID, path string) result.Result[models.Ack] {
	if err := svc.writer.SetAvatar(ctx, userID, path); err != nil {
		svc.log.Errorw("failed to set avatar", "userID", userID, "err", err)
		return result.Fail[models.Ack](result.Internal(msgAvatarFailed))
	}
	return result.Ok(models.Ack{Message: msgAvatarUpdated, Changed: true})
}
