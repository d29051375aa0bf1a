package handler

// RESPONSE HELPERS:
// Every JSON endpoint answers with the same envelope:
//
//	{"success": true,  "response": {...}}   auth endpoints
//	{"success": true,  "body": [...]}       talk endpoints
//	{"success": false, "response": "message"} any failure
//
// Clients check "success" first and only then look at the payload.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/talk-catalog/internal/apperror"
)

// maxBodyBytes caps the JSON request bodies the auth endpoints accept.
const maxBodyBytes = 1 << 20

// Envelope is the response shape shared by all API endpoints.
type Envelope struct {
	Success  bool        `json:"success"`
	Response interface{} `json:"response,omitempty"`
	Body     interface{} `json:"body,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status go out before the body; once Encode writes, they are fixed.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeFailure sends {"success": false, "response": message}.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Response: message})
}

// writeError maps a domain error to a failure response.
//
// ERROR MAPPING:
//
//	apperror.ErrNotFound     → 404
//	apperror.ErrUnauthorized → 400 (bad credentials on /login)
//	apperror.ErrValidation   → 400
//	apperror.ErrConflict     → 400 (the store rejected a duplicate)
//	anything else            → fallback
//
// fallback differs per endpoint: /login answers unexpected errors with 500,
// the talk endpoints with 400. The message is always the error's own text.
func writeError(w http.ResponseWriter, err error, fallback int) {
	status := fallback
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrUnauthorized),
		errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrConflict):
		status = http.StatusBadRequest
	}

	message := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	writeFailure(w, status, message)
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
