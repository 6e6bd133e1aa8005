package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-movie-tracker/internal/avatars"
	"github.com/sbilibin2017/gw-movie-tracker/internal/identity"
	"github.com/sbilibin2017/gw-movie-tracker/internal/models"
	"github.com/sbilibin2017/gw-movie-tracker/internal/result"
)

// MsgAuthMissing is the error of every request that needs a caller but has none.
const MsgAuthMissing = "Auth token missing. Cannot complete the requested operation."

const (
	msgInvalidBody    = "Invalid request body."
	msgBodyTooLarge   = "Request body too large."
	msgInvalidMovieID = "Movie id must be a positive integer."
	msgInvalidEmail   = "Email must be a valid address."
)

// maxBodySize fits a base64 avatar of avatars.MaxSize plus the other fields.
var maxBodySize = int64(base64.StdEncoding.EncodedLen(avatars.MaxSize)) + 64<<10

// bcrypt ignores everything past 72 bytes and refuses to hash such input.
const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("bcrypt", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

// fieldMessages holds the client message for a field that failed validation.
var fieldMessages = map[string]string{
	"Username": "Username must be between 3 and 30 characters.",
	"Password": "Password must be between 3 and 30 characters.",
	"Email":    msgInvalidEmail,
	"Rating":   msgInvalidRating,
}

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: User not found.
	Error string `json:"error"`
}

// MessageResponse is the body of operations that only acknowledge
// swagger:model MessageResponse
type MessageResponse struct {
	// Outcome message
	// default: Movie added to watchlist.
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeDomainError maps a DomainError code straight onto the HTTP status.
func writeDomainError(w http.ResponseWriter, err *result.DomainError) {
	writeError(w, int(err.Code), err.Message)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeBodyError answers a request whose body could not be decoded.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	writeError(w, http.StatusBadRequest, msgInvalidBody)
}

// validateRequest checks the validate tags of req and returns the message of
// the first failing field.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if msg, ok := fieldMessages[fieldErrs[0].Field()]; ok {
			return errors.New(msg)
		}
	}
	return errors.New(msgInvalidBody)
}

// currentIdentity returns the caller's identity or writes a 401.
func currentIdentity(w http.ResponseWriter, r *http.Request) (*models.Identity, bool) {
	id := identity.FromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, MsgAuthMissing)
		return nil, false
	}
	return id, true
}

func movieIDParam(r *http.Request) (int64, error) {
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil || movieID <= 0 {
		return 0, errors.New(msgInvalidMovieID)
	}
	return movieID, nil
}
