package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/talk-catalog/internal/model"
)

// AccountService is the part of service.AuthService the handlers use.
// Tests swap in a fake.
type AccountService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

// credentials is the request body of /register and /login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// accountResponse is what a client gets back after register or login.
// It is the only place the access token leaves the server.
type accountResponse struct {
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
	ID          string `json:"id"`
}

func newAccountResponse(u *model.User) accountResponse {
	return accountResponse{
		Username:    u.Username,
		AccessToken: u.AccessToken,
		ID:          u.ID,
	}
}

// AuthHandler serves account creation and login.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → create an account, answer with its token
//   - HandleLogin    → check credentials, answer with the existing token
type AuthHandler struct {
	accounts AccountService
	logger   *slog.Logger
}

func NewAuthHandler(accounts AccountService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// HandleRegister creates an account.
//
// HTTP: POST /register
// REQUEST BODY: {"username": "ada", "password": "at-least-8"}
//
// RESPONSES:
//
//	201 {"success":true,"response":{"username","accessToken","id"}}
//	400 {"success":false,"response":"<reason>"} short password, empty
//	    username, bad JSON, or the store refused the insert
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid register body", slog.String("error", err.Error()))
		writeFailure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, Envelope{
		Success:  true,
		Response: newAccountResponse(user),
	})
}

// HandleLogin exchanges credentials for the account's access token.
//
// HTTP: POST /login
// REQUEST BODY: {"username": "ada", "password": "..."}
//
// RESPONSES:
//
//	200 {"success":true,"response":{"username","id","accessToken"}}
//	400 {"success":false,"response":"Credentials didn't match"}
//	500 {"success":false,"response":"<error>"} the lookup itself failed
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid login body", slog.String("error", err.Error()))
		writeFailure(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, Envelope{
		Success:  true,
		Response: newAccountResponse(user),
	})
}
