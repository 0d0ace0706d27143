package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/service"
	"github.com/social-memo/social-memo/internal/utils"
	"github.com/social-memo/social-memo/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Login(ctx, request.Username, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Str("username", request.Username).Msg("login rejected")
			h.writeError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("username", request.Username).Msg("user successfully logged in")

	h.writeJSON(w, models.LoginResponse{Success: true, Token: token}, http.StatusOK)
}

// check is public: a missing or invalid token is not an error, just an
// unauthenticated answer.
func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
	if err != nil {
		h.writeJSON(w, models.AuthCheckResponse{Authenticated: false}, http.StatusOK)
		return
	}

	username, ok := h.services.SessionService.Verify(tokenString)
	if !ok {
		h.writeJSON(w, models.AuthCheckResponse{Authenticated: false}, http.StatusOK)
		return
	}

	h.writeJSON(w, models.AuthCheckResponse{Authenticated: true, Username: username}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	// The auth middleware already validated the header, so the token is
	// present; Revoke is idempotent either way.
	tokenString, _ := getTokenFromAuthHeader(r.Header.Get("Authorization"))
	if revoked := h.services.SessionService.Revoke(tokenString); revoked {
		log.Debug().Msg("session revoked")
	}

	h.writeJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		log.Error().Msg("no username in request context")
		h.writeError(w, ErrNotLoggedIn.Error(), http.StatusUnauthorized)
		return
	}

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	err := h.services.AuthService.ChangePassword(ctx, username, request.OldPassword, request.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			log.Err(err).Msg("new password is too short")
			h.writeError(w, service.ErrPasswordTooShort.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Err(err).Msg("old password verification failed")
			h.writeError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during password change")
			h.writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Info().Str("username", username).Msg("password changed, all sessions revoked")

	h.writeJSON(w, models.SuccessResponse{
		Success: true,
		Message: "password changed, please log in again",
	}, http.StatusOK)
}

// writeJSON sends a success payload, logging a failed write instead of
// surfacing it to the client (headers are already gone by then).
func (h *Handler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	if _, err := utils.WriteJSON(w, data, statusCode); err != nil {
		h.logger.Err(err).Msg("error writing json response")
	}
}
