package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/model"
)

func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, access_token, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.PasswordHash, user.AccessToken, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Duplicate("username", err)
		}
		return fmt.Errorf("postgres: inserting user %q: %w", user.Username, err)
	}
	return nil
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := db.getUser(ctx, `WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting user %q: %w", username, err)
	}
	return u, nil
}

func (db *DB) GetUserByAccessToken(ctx context.Context, token string) (*model.User, error) {
	u, err := db.getUser(ctx, `WHERE access_token = $1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user", "for access token")
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting user by access token: %w", err)
	}
	return u, nil
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, access_token, created_at
		 FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.AccessToken, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
