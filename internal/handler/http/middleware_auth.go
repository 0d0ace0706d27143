package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/social-memo/social-memo/internal/logger"
	"github.com/social-memo/social-memo/internal/utils"
	"github.com/social-memo/social-memo/models"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// looks it up via [service.SessionService.Verify], and — on success — stores
// the session owner's username in the request context under
// [utils.UsernameCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized and a JSON error
// body in the following cases:
//   - The "Authorization" header is absent or malformed ([ErrNotLoggedIn]).
//   - The token is unknown or past its expiry ([ErrSessionExpired]).
//
// Rejected requests never reach the service layer. All rejection events are
// logged using the context-scoped logger obtained via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrNotLoggedIn).Msg("missing `Authorization` header")
			h.writeError(w, ErrNotLoggedIn.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Msg("malformed `Authorization` header")
			h.writeError(w, ErrNotLoggedIn.Error(), http.StatusUnauthorized)
			return
		}

		username, ok := h.services.SessionService.Verify(tokenString)
		if !ok {
			log.Err(ErrSessionExpired).Msg("unknown or expired session token")
			h.writeError(w, ErrSessionExpired.Error(), http.StatusUnauthorized)
			return
		}

		// Store the session owner's username in the context so that
		// downstream handlers can retrieve it without re-checking the token.
		ctx := context.WithValue(r.Context(), utils.UsernameCtxKey, username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// For example:
//
//	Authorization: Bearer 3f7a9c...
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

// writeError sends the uniform JSON error body used by every rejection.
func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Error: message}, statusCode); err != nil {
		h.logger.Err(err).Msg("error writing json error response")
	}
}
