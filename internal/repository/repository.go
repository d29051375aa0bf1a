// Package repository declares the store interfaces the services depend on.
//
// The concrete stores (sqlite, postgres) implement all of them on a single
// type; services only see the narrow interface they need.
package repository

import (
	"context"

	"github.com/sakif/talk-catalog/internal/model"
)

// TopTalksLimit is the size of the "most viewed" listing.
const TopTalksLimit = 10

// UserRepository stores accounts.
type UserRepository interface {
	// CreateUser inserts a new account. ID and CreatedAt are filled in.
	// Returns apperror.ErrConflict if the username is taken.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByAccessToken(ctx context.Context, token string) (*model.User, error)
}

// TalkRepository stores the talk catalog.
type TalkRepository interface {
	// TopTalksByViews returns at most limit talks, most viewed first.
	TopTalksByViews(ctx context.Context, limit int) ([]model.Talk, error)
	GetTalkByID(ctx context.Context, talkID int64) (*model.Talk, error)
	// ReplaceTalks deletes every talk and inserts the given ones atomically.
	ReplaceTalks(ctx context.Context, talks []model.Talk) error
}

// Store is a full storage backend as owned by the server.
type Store interface {
	UserRepository
	TalkRepository

	// Ping reports whether the backend is reachable right now.
	Ping(ctx context.Context) error
	Close() error
}
