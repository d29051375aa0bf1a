package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/talk-catalog/internal/apperror"
	"github.com/sakif/talk-catalog/internal/model"
)

// These run everywhere: the driver is replaced by sqlmock, so they check
// the SQL sent and how driver errors are translated, not PostgreSQL itself.

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})
	return &DB{conn: conn}, mock
}

var (
	insertUserQuery  = regexp.QuoteMeta(`INSERT INTO users (id, username, password_hash, access_token, created_at)`)
	selectUserQuery  = `(?s)SELECT id, username, password_hash, access_token, created_at\s+FROM users`
	selectTopQuery   = `(?s)SELECT .+ FROM talks\s+ORDER BY views DESC, talk_id ASC\s+LIMIT \$1`
	selectTalkQuery  = regexp.QuoteMeta(`FROM talks WHERE talk_id = $1`)
	insertTalkQuery  = regexp.QuoteMeta(`INSERT INTO talks (`)
	talkColumnsSlice = []string{"talk_id", "title", "speaker", "recorded_date", "published_date", "event", "duration", "views", "likes"}
)

var sqlmockTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func duplicateKeyError(constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           uniqueViolation,
		Message:        `duplicate key value violates unique constraint "` + constraint + `"`,
		ConstraintName: constraint,
	}
}

func TestMockCreateUser(t *testing.T) {
	t.Run("success sets id and created_at", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insertUserQuery).
			WithArgs(sqlmock.AnyArg(), "ada", "hash", "tok", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user := &model.User{Username: "ada", PasswordHash: "hash", AccessToken: "tok"}
		require.NoError(t, db.CreateUser(context.Background(), user))

		assert.NotEmpty(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation is a conflict with the server message", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insertUserQuery).WillReturnError(duplicateKeyError("users_username_key"))

		err := db.CreateUser(context.Background(), &model.User{Username: "ada"})

		assert.True(t, errors.Is(err, apperror.ErrConflict), "error = %v", err)
		assert.Contains(t, err.Error(), "duplicate key value")
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(insertUserQuery).WillReturnError(errors.New("connection reset"))

		err := db.CreateUser(context.Background(), &model.User{Username: "ada"})

		require.Error(t, err)
		assert.False(t, errors.Is(err, apperror.ErrConflict))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestMockGetUser(t *testing.T) {
	t.Run("by access token", func(t *testing.T) {
		db, mock := newMockDB(t)
		rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "access_token", "created_at"}).
			AddRow("c1", "ada", "hash", "tok", sqlmockTime)
		mock.ExpectQuery(selectUserQuery + `\s+WHERE access_token = \$1`).
			WithArgs("tok").
			WillReturnRows(rows)

		user, err := db.GetUserByAccessToken(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, "c1", user.ID)
		assert.Equal(t, "ada", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectUserQuery + `\s+WHERE username = \$1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := db.GetUserByUsername(context.Background(), "ghost")

		assert.True(t, errors.Is(err, apperror.ErrNotFound), "error = %v", err)
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectUserQuery).WillReturnError(errors.New("db down"))

		_, err := db.GetUserByUsername(context.Background(), "ada")

		require.Error(t, err)
		assert.False(t, errors.Is(err, apperror.ErrNotFound))
	})
}

func TestMockTopTalksByViews(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows(talkColumnsSlice).
		AddRow(int64(66), "Do schools kill creativity?", "Sir Ken Robinson", "2006-02-25", "2006-06-27", "TED2006", int64(1164), int64(72166703), int64(2100000)).
		AddRow(int64(1), "Averting the climate crisis", "Al Gore", "2006-02-25", "2006-06-27", "TED2006", int64(957), int64(3523392), int64(105000))
	mock.ExpectQuery(selectTopQuery).WithArgs(10).WillReturnRows(rows)

	talks, err := db.TopTalksByViews(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, talks, 2)
	assert.Equal(t, int64(66), talks[0].TalkID)
	assert.Equal(t, int64(72166703), talks[0].Views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMockGetTalkByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(selectTalkQuery).WithArgs(int64(404)).WillReturnError(sql.ErrNoRows)

	_, err := db.GetTalkByID(context.Background(), 404)

	assert.True(t, errors.Is(err, apperror.ErrNotFound), "error = %v", err)
	assert.Equal(t, "talk not found with id 404", err.Error())
}

func TestMockReplaceTalks(t *testing.T) {
	talks := []model.Talk{
		{TalkID: 1, Title: "a", Views: 10},
		{TalkID: 2, Title: "b", Views: 20},
	}

	t.Run("deletes then inserts in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM talks`).WillReturnResult(sqlmock.NewResult(0, 5))
		prep := mock.ExpectPrepare(insertTalkQuery)
		for _, tk := range talks {
			prep.ExpectExec().
				WithArgs(tk.TalkID, tk.Title, "", "", "", "", int64(0), tk.Views, int64(0)).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		require.NoError(t, db.ReplaceTalks(context.Background(), talks))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM talks`).WillReturnResult(sqlmock.NewResult(0, 0))
		prep := mock.ExpectPrepare(insertTalkQuery)
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WillReturnError(duplicateKeyError("talks_pkey"))
		mock.ExpectRollback()

		err := db.ReplaceTalks(context.Background(), talks)

		assert.True(t, errors.Is(err, apperror.ErrConflict), "error = %v", err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete failure rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM talks`).WillReturnError(errors.New("permission denied for table talks"))
		mock.ExpectRollback()

		err := db.ReplaceTalks(context.Background(), talks)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "clearing talks")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
