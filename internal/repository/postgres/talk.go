package postgres

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

func (db *DB) TopTalksByViews(ctx context.Context, limit int) ([]model.Talk, error) {
	if limit <= 0 {
		limit = repository.TopTalksLimit
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+talkColumns+`
		 FROM talks
		 ORDER BY views DESC, talk_id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing top talks: %w", err)
	}
	defer rows.Close()

	talks := make([]model.Talk, 0, limit)
	for rows.Next() {
		var t model.Talk
		if err := rows.Scan(
			&t.TalkID, &t.Title, &t.Speaker, &t.RecordedDate, &t.PublishedDate,
			&t.Event, &t.Duration, &t.Views, &t.Likes,
		); err != nil {
			return nil, fmt.Errorf("postgres: scanning talk row: %w", err)
		}
		talks = append(talks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating talks: %w", err)
	}
	return talks, nil
}

func (db *DB) GetTalkByID(ctx context.Context, talkID int64) (*model.Talk, error) {
	var t model.Talk
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+talkColumns+` FROM talks WHERE talk_id = $1`,
		talkID,
	).Scan(
		&t.TalkID, &t.Title, &t.Speaker, &t.RecordedDate, &t.PublishedDate,
		&t.Event, &t.Duration, &t.Views, &t.Likes,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("talk", strconv.FormatInt(talkID, 10))
		}
		return nil, fmt.Errorf("postgres: getting talk %d: %w", talkID, err)
	}
	return &t, nil
}

func (db *DB) ReplaceTalks(ctx context.Context, talks []model.Talk) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM talks`); err != nil {
		return fmt.Errorf("postgres: clearing talks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO talks (`+talkColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("postgres: preparing talk insert: %w", err)
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
			return fmt.Errorf("postgres: inserting talk %d: %w", t.TalkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: committing talks: %w", err)
	}
	return nil
}
