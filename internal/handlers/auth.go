package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-movie-tracker/internal/credentials"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=handlers

// Registerer creates users.
type Registerer interface {
	Register(ctx context.Context, in models.RegisterInput) result.Result[*models.UserDB]
	SetAvatar(ctx context.Context, userID uuid.UUID, path string) result.Result[models.Ack]
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, password string) result.Result[string]
}

// TokenRevoker invalidates a token before it expires.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) result.Result[models.Ack]
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username, 3 to 30 characters
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"min=3,max=30"`

	// Password, 3 to 30 characters and at most 72 bytes
	// required: true
	// default: secret123
	Password string `json:"password" validate:"min=3,max=30,bcrypt"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Base64 encoded png, jpeg, gif or webp image, optionally as a data URL
	// required: false
	Avatar string `json:"avatar,omitempty"`
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username or email
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT token
	// default: JWT_TOKEN
	Token string `json:"token"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. Username and email must be unused. An optional avatar is stored after the account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.UserResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Username or email already registered / invalid request"
// @Failure 413 {object} handlers.ErrorResponse "Request body too large"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer, avatars AvatarStore, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeBodyError(w, err)
			return
		}
		if err := validateRequest(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Avatar != "" {
			if err := avatars.Check(req.Avatar); err != nil {
				writeError(w, http.StatusBadRequest, avatarErrorMessage(err))
				return
			}
		}

		res := svc.Register(r.Context(), models.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}
		user := res.Value()

		if req.Avatar != "" {
			name, err := avatars.SaveFromBase64(user.UserID, req.Avatar)
			if err != nil {
				log.Errorw("failed to store avatar at registration", "userID", user.UserID, "error", err)
			} else if set := svc.SetAvatar(r.Context(), user.UserID, name); set.IsOk() {
				user.Avatar = &name
			}
		}

		writeJSON(w, http.StatusCreated, newUserResponse(user))
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by username or email and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "JWT token returned"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Incorrect username or password"
// @Failure 500 {object} handlers.ErrorResponse "Login failed"
// @Router /login [post]
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeBodyError(w, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		res := svc.Authenticate(r.Context(), req.Username, req.Password)
		if !res.IsOk() {
			switch res.Err().Code {
			case result.CodeNotFound, result.CodeConflict:
				writeError(w, http.StatusUnauthorized, res.Err().Message)
			default:
				writeDomainError(w, res.Err())
			}
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: res.Value()})
	}
}

// NewLogoutHandler returns an HTTP handler that revokes the caller's token.
// @Summary User logout
// @Description Revoke the bearer token used for this request
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Failure 400 {object} handlers.ErrorResponse "Invalid auth token"
// @Failure 401 {object} handlers.ErrorResponse "Auth token missing"
// @Failure 500 {object} handlers.ErrorResponse "Logout failed"
// @Router /logout [post]
func NewLogoutHandler(svc TokenRevoker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := credentials.TokenFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, MsgAuthMissing)
			return
		}

		res := svc.Revoke(r.Context(), token)
		if !res.IsOk() {
			writeDomainError(w, res.Err())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: res.Value().Message})
	}
}
