package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/model"
)

// =========================================================================
// FAKES
// =========================================================================
//
// In-memory stand-ins for the repositories. Each has an err field that,
// when set, makes every call fail, to simulate the store being down.

type fakeUserRepo struct {
	mu      sync.Mutex
	byName  map[string]*model.User
	byToken map[string]*model.User
	nextID  int
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byName:  make(map[string]*model.User),
		byToken: make(map[string]*model.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, taken := f.byName[user.Username]; taken {
		return apperror.Duplicate("username", errors.New("UNIQUE constraint failed: users.username"))
	}
	user.ID = "user-" + strconv.Itoa(f.nextID)
	f.nextID++

	copied := *user
	f.byName[user.Username] = &copied
	f.byToken[user.AccessToken] = &copied
	return nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByAccessToken(_ context.Context, token string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byToken[token]
	if !ok {
		return nil, apperror.NotFound("user", "for access token")
	}
	copied := *u
	return &copied, nil
}

type fakeTalkRepo struct {
	talks []model.Talk
	err   error
}

func (f *fakeTalkRepo) TopTalksByViews(_ context.Context, limit int) ([]model.Talk, error) {
	if f.err != nil {
		return nil, f.err
	}
	sorted := append([]model.Talk(nil), f.talks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakeTalkRepo) GetTalkByID(_ context.Context, talkID int64) (*model.Talk, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.talks {
		if t.TalkID == talkID {
			found := t
			return &found, nil
		}
	}
	return nil, apperror.NotFound("talk", strconv.FormatInt(talkID, 10))
}

func (f *fakeTalkRepo) ReplaceTalks(_ context.Context, talks []model.Talk) error {
	if f.err != nil {
		return f.err
	}
	f.talks = append([]model.Talk(nil), talks...)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
