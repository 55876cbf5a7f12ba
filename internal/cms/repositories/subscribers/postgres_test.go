package subscribers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestSubscribe(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	email := gofakeit.Email()

	q := `(?s)INSERT\s+INTO\s+feed_subscribers.*ON\s+CONFLICT\s+\(email\)\s+DO\s+UPDATE\s+SET\s+unsubscribed_at\s*=\s*NULL`
	mock.ExpectQuery(q).WithArgs(email, "newtoken").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "unsubscribe_token", "created_at"}).
			AddRow("s1", email, "oldtoken", time.Now()))

	s, err := repo.Subscribe(context.Background(), email, "newtoken")
	require.NoError(t, err)
	assert.Equal(t, "oldtoken", s.UnsubscribeToken)
}

func TestUnsubscribe(t *testing.T) {
	q := `(?s)UPDATE\s+feed_subscribers\s+SET\s+unsubscribed_at.*WHERE\s+unsubscribe_token\s*=\s*\$1`

	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(q).WithArgs("tok").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("unknown").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs("tok").WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Unsubscribe(context.Background(), "tok"))
	require.ErrorIs(t, repo.Unsubscribe(context.Background(), "unknown"), common.ErrorNotFound)
	require.Error(t, repo.Unsubscribe(context.Background(), "tok"))
}

func TestListActive(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "email", "unsubscribe_token", "created_at", "unsubscribed_at"})
	for i := 0; i < 3; i++ {
		rows.AddRow(gofakeit.UUID(), gofakeit.Email(), gofakeit.LetterN(16), time.Now(), nil)
	}
	mock.ExpectQuery(`(?s)FROM\s+feed_subscribers\s+WHERE\s+unsubscribed_at\s+IS\s+NULL`).WillReturnRows(rows)

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, s := range got {
		assert.Nil(t, s.UnsubscribedAt)
	}
}
