package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/model"
)

// CatalogService is the part of service.TalkService the handlers use.
type CatalogService interface {
	TopByViews(ctx context.Context) ([]model.Talk, error)
	GetByID(ctx context.Context, rawID string) (*model.Talk, error)
}

// TalkHandler serves the read-only talk catalog. Both routes sit behind
// auth.RequireToken.
type TalkHandler struct {
	talks  CatalogService
	logger *slog.Logger
}

func NewTalkHandler(talks CatalogService, logger *slog.Logger) *TalkHandler {
	return &TalkHandler{
		talks:  talks,
		logger: logger,
	}
}

// HandleTop10 returns the ten most viewed talks.
//
// HTTP: GET /top10Views
// RESPONSE: 200 {"success":true,"body":[talk, ...]}, 400 on a store error.
func (h *TalkHandler) HandleTop10(w http.ResponseWriter, r *http.Request) {
	talks, err := h.talks.TopByViews(r.Context())
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, Envelope{Success: true, Body: talks})
}

// HandleGetByID returns one talk.
//
// HTTP: GET /speaker/{id}
//
// URL PARAMETERS:
// chi.URLParam(r, "id") reads the {id} segment of the matched route.
//
// RESPONSES:
//
//	200 {"success":true,"body":talk}
//	400 id is not a number, or the store failed
//	404 no talk with that id
func (h *TalkHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	talk, err := h.talks.GetByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) && !errors.Is(err, apperror.ErrValidation) {
			h.logger.Error("talk lookup failed",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
		}
		writeError(w, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, Envelope{Success: true, Body: talk})
}
