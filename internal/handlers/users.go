package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/avatars"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

const (
	msgAvatarNotSet   = "Avatar not set."
	msgAvatarNotFound = "Avatar not found."
	msgInvalidUserID  = "Invalid user id."
)

// UserFinder looks users up.
type UserFinder interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) result.Result[*models.UserDB]
	FindByID(ctx context.Context, userID uuid.UUID) result.Result[*models.UserDB]
}

// AvatarUpdater stores the avatar reference on a user.
type AvatarUpdater interface {
	SetAvatar(ctx context.Context, userID uuid.UUID, path string) result.Result[models.Ack]
}

// AvatarStore keeps avatar files.
type AvatarStore interface {
	Check(data string) error
	SaveFromBase64(userID uuid.UUID, data string) (string, error)
	Open(name string) (afero.File, string, error)
}

// UserResponse is the public view of a user
// swagger:model UserResponse
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *models.UserDB) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// AvatarRequest carries a new avatar
// swagger:model AvatarRequest
type AvatarRequest struct {
	// Base64 encoded png, jpeg, gif or webp image, optionally as a data URL
	// required: true
	Avatar string `json:"avatar"`
}

// NewGetUserHandler returns an HTTP handler that looks a user up by username or email.
// @Summary Get user
// @Description Find a user by username or email
// @Tags users
// @Produce json
// @Param user path string true "Username or email"
// @Success 200 {object} handlers.UserResponse
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Error fetching users"
// @Router /users/{user} [get]
func NewGetUserHandler(svc UserFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "user")

		res := svc.FindByUsernameOrEmail(r.Context(), key, key)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(res.Value()))
	}
}

// NewGetMyAvatarHandler returns an HTTP handler serving the caller's avatar.
// @Summary Get own avatar
// @Tags users
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 404 {object} handlers.ErrorResponse "Avatar not set"
// @Router /user/avatar [get]
func NewGetMyAvatarHandler(svc UserFinder, store AvatarStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := currentIdentity(w, r)
		if !ok {
			return
		}
		serveAvatar(w, r, svc, store, log, id.UserID)
	}
}

// NewGetUserAvatarHandler returns an HTTP handler serving any user's avatar.
// @Summary Get user avatar
// @Tags users
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param userID path string true "User id"
// @Success 200 {file} binary
// @Failure 400 {object} handlers.ErrorResponse "Invalid user id"
// @Failure 404 {object} handlers.ErrorResponse "User or avatar not found"
// @Router /user/{userID}/avatar [get]
func NewGetUserAvatarHandler(svc UserFinder, store AvatarStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidUserID)
			return
		}
		serveAvatar(w, r, svc, store, log, userID)
	}
}

// NewPutAvatarHandler returns an HTTP handler replacing the caller's avatar.
// @Summary Update own avatar
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param avatarRequest body handlers.AvatarRequest true "New avatar"
// @Success 200 {object} handlers.MessageResponse "Avatar updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid avatar"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 413 {object} handlers.ErrorResponse "Request body too large"
// @Failure 500 {object} handlers.ErrorResponse "Error updating avatar"
// @Router /user/avatar [put]
func NewPutAvatarHandler(svc AvatarUpdater, store AvatarStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := currentIdentity(w, r)
		if !ok {
			return
		}

		var req AvatarRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeBodyError(w, err)
			return
		}

		name, err := store.SaveFromBase64(id.UserID, req.Avatar)
		if err != nil {
			if msg := avatarErrorMessage(err); msg != "" {
				writeError(w, http.StatusBadRequest, msg)
				return
			}
			log.Errorw("failed to store avatar", "userID", id.UserID, "error", err)
			writeError(w, http.StatusInternalServerError, "Error updating avatar.")
			return
		}

		res := svc.SetAvatar(r.Context(), id.UserID, name)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: res.Value().Message})
	}
}

func serveAvatar(w http.ResponseWriter, r *http.Request, svc UserFinder, store AvatarStore, log *zap.SugaredLogger, userID uuid.UUID) {
	res := svc.FindByID(r.Context(), userID)
	if !res.IsOk() {
		writeDomainError(w, res.Err())
		return
	}

	user := res.Value()
	if user.Avatar == nil || *user.Avatar == "" {
		writeError(w, http.StatusNotFound, msgAvatarNotSet)
		return
	}

	f, contentType, err := store.Open(*user.Avatar)
	if err != nil {
		log.Warnw("avatar file missing", "userID", userID, "avatar", *user.Avatar, "error", err)
		writeError(w, http.StatusNotFound, msgAvatarNotFound)
		return
	}
	defer f.Close()

	var modTime time.Time
	if info, err := f.Stat(); err == nil {
		modTime = info.ModTime()
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, f.Name(), modTime, f)
}

// avatarErrorMessage returns the client-facing message for a rejected
// avatar, or "" when the failure is not the client's fault.
func avatarErrorMessage(err error) string {
	switch {
	case errors.Is(err, avatars.ErrEmpty):
		return "Avatar is empty."
	case errors.Is(err, avatars.ErrInvalidData):
		return "Avatar must be base64 encoded."
	case errors.Is(err, avatars.ErrUnsupported):
		return "Avatar must be a png, jpeg, gif or webp image."
	case errors.Is(err, avatars.ErrTooLarge):
		return "Avatar is too large."
	default:
		return ""
	}
}
