package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/model"
	"github.com/sakif/talk-catalog/internal/repository"
)

// TalkService serves the read-only talk catalog and its reset operation.
type TalkService struct {
	repo   repository.TalkRepository
	logger *slog.Logger
}

func NewTalkService(repo repository.TalkRepository, logger *slog.Logger) *TalkService {
	return &TalkService{
		repo:   repo,
		logger: logger,
	}
}

// TopByViews returns the ten most viewed talks, highest first.
func (s *TalkService) TopByViews(ctx context.Context) ([]model.Talk, error) {
	talks, err := s.repo.TopTalksByViews(ctx, repository.TopTalksLimit)
	if err != nil {
		s.logger.Error("failed to list top talks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service/talks: listing top talks: %w", err)
	}
	return talks, nil
}

// GetByID looks up a talk by the id taken from the URL.
//
// Returns apperror.ErrValidation if rawID is not an integer, and
// apperror.ErrNotFound if no such talk exists.
func (s *TalkService) GetByID(ctx context.Context, rawID string) (*model.Talk, error) {
	rawID = strings.TrimSpace(rawID)
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, apperror.ValidationFailed("id", fmt.Sprintf("talk id must be a number, got %q", rawID))
	}

	talk, err := s.repo.GetTalkByID(ctx, id)
	if err != nil {
		// NotFound passes through untouched; it is not worth an error log.
		return nil, err
	}
	return talk, nil
}

// Reset replaces the whole catalog with talks.
// Destructive: every talk not in the new set is gone afterwards.
func (s *TalkService) Reset(ctx context.Context, talks []model.Talk) error {
	if err := s.repo.ReplaceTalks(ctx, talks); err != nil {
		s.logger.Error("failed to reset talk catalog", slog.String("error", err.Error()))
		return fmt.Errorf("service/talks: resetting catalog: %w", err)
	}

	s.logger.Info("talk catalog reset", slog.Int("talks", len(talks)))
	return nil
}
