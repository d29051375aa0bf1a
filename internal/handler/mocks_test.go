package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/sakif/talk-catalog/internal/model"
)

// MockAccounts records what the handler passed and returns canned values.
type MockAccounts struct {
	CapturedUsername string
	CapturedPassword string
	ReturnUser       *model.User
	ReturnErr        error
}

func (m *MockAccounts) Register(_ context.Context, username, password string) (*model.User, error) {
	m.CapturedUsername, m.CapturedPassword = username, password
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnUser, nil
}

func (m *MockAccounts) Login(_ context.Context, username, password string) (*model.User, error) {
	m.CapturedUsername, m.CapturedPassword = username, password
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnUser, nil
}

// MockCatalog returns canned talks.
type MockCatalog struct {
	CapturedID string
	ReturnTop  []model.Talk
	ReturnTalk *model.Talk
	ReturnErr  error
}

func (m *MockCatalog) TopByViews(_ context.Context) ([]model.Talk, error) {
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnTop, nil
}

func (m *MockCatalog) GetByID(_ context.Context, rawID string) (*model.Talk, error) {
	m.CapturedID = rawID
	if m.ReturnErr != nil {
		return nil, m.ReturnErr
	}
	return m.ReturnTalk, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// envelope mirrors handler.Envelope with raw payloads, so each test can
// decode the part it cares about.
type envelope struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
	Body     json.RawMessage `json:"body"`
}
