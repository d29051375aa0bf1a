package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/model"
)

// contextKey is unexported so no other package can read or overwrite the
// values this package stores in a request context.
type contextKey string

const userKey contextKey = "user"

// MessagePleaseLogIn is the 401 body for a missing or unknown token.
const MessagePleaseLogIn = "Please log in"

// Authenticator resolves an access token to its account.
// It returns an error wrapping apperror.ErrUnauthorized when no account
// holds the token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// RequireToken guards protected routes.
//
// The token comes from the Authorization header (see TokenFromHeader).
// Outcomes:
//   - token matches an account → the account is put in the context and the
//     request continues
//   - no token, or no matching account → 401 "Please log in"
//   - the lookup itself fails → 400 with the error message
func RequireToken(authn Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromHeader(r.Header.Get("Authorization"))

			user, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, apperror.ErrUnauthorized) {
					writeFailure(w, http.StatusUnauthorized, MessagePleaseLogIn)
					return
				}
				logger.Error("token check failed",
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				writeFailure(w, http.StatusBadRequest, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the account RequireToken attached to the request.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// writeFailure writes the same {success:false, response:...} envelope the
// handlers use.
func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}{Success: false, Response: message})
}
