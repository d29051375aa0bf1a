package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/model"
	"github.com/sakif/talk-catalog/internal/repository"
)

const talkColumns = `talk_id, title, speaker, recorded_date, published_date, event, duration, views, likes`

// TopTalksByViews returns the most viewed talks, highest first.
// Equal view counts fall back to talk_id so the order is stable.
func (db *DB) TopTalksByViews(ctx context.Context, limit int) ([]model.Talk, error) {
	if limit <= 0 {
		limit = repository.TopTalksLimit
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+talkColumns+`
		 FROM talks
		 ORDER BY views DESC, talk_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing top talks: %w", err)
	}
	defer rows.Close()

	talks := make([]model.Talk, 0, limit)
	for rows.Next() {
		var t model.Talk
		if err := rows.Scan(
			&t.TalkID, &t.Title, &t.Speaker, &t.RecordedDate, &t.PublishedDate,
			&t.Event, &t.Duration, &t.Views, &t.Likes,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning talk row: %w", err)
		}
		talks = append(talks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating talks: %w", err)
	}

	return talks, nil
}

// GetTalkByID returns apperror.ErrNotFound if the catalog has no such talk.
func (db *DB) GetTalkByID(ctx context.Context, talkID int64) (*model.Talk, error) {
	var t model.Talk
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+talkColumns+` FROM talks WHERE talk_id = ?`,
		talkID,
	).Scan(
		&t.TalkID, &t.Title, &t.Speaker, &t.RecordedDate, &t.PublishedDate,
		&t.Event, &t.Duration, &t.Views, &t.Likes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("talk", strconv.FormatInt(talkID, 10))
		}
		return nil, fmt.Errorf("sqlite: getting talk %d: %w", talkID, err)
	}
	return &t, nil
}

// ReplaceTalks swaps the whole catalog inside one transaction, so readers
// see either the old catalog or the new one, never a half-loaded table.
func (db *DB) ReplaceTalks(ctx context.Context, talks []model.Talk) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	// Rollback after Commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM talks`); err != nil {
		return fmt.Errorf("sqlite: clearing talks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO talks (`+talkColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: preparing talk insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range talks {
		if _, err := stmt.ExecContext(ctx,
			t.TalkID, t.Title, t.Speaker, t.RecordedDate, t.PublishedDate,
			t.Event, t.Duration, t.Views, t.Likes,
		); err != nil {
			if isUniqueViolation(err) {
				return apperror.Duplicate("talk_id", err)
			}
			return fmt.Errorf("sqlite: inserting talk %d: %w", t.TalkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing talks: %w", err)
	}
	return nil
}
