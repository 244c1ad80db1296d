package repo

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/quillhub/service-articles-go/internal/article/entity"
)

func newRepoWithMock(t *testing.T) (*ArticleRepo, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "postgres")
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO articles`).
		WithArgs("a-1", "Hi", "1234", "u-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := &entity.Article{ID: "a-1", Title: "Hi", Content: "1234", Creator: "u-1", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "creator", "created_at"}).
		AddRow("a-1", "Hi", "1234", "u-1", time.Now())
	mock.ExpectQuery(`SELECT id, title, content, creator, created_at FROM articles WHERE id = \$1`).
		WithArgs("a-1").
		WillReturnRows(rows)

	a, err := repo.GetByID(context.Background(), "a-1")
	require.NoError(t, err)
	require.Equal(t, "u-1", a.Creator)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT id, title, content, creator, created_at FROM articles WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByCreator_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "creator", "created_at"})
	mock.ExpectQuery(`SELECT id, title, content, creator, created_at FROM articles\s+WHERE creator = \$1`).
		WithArgs("u-1").
		WillReturnRows(rows)

	articles, err := repo.ListByCreator(context.Background(), "u-1")
	require.NoError(t, err)
	require.Empty(t, articles)
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE articles SET title = \$1, content = \$2 WHERE id = \$3`).
		WithArgs("New", "12345", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	a := &entity.Article{ID: "ghost", Title: "New", Content: "12345"}
	require.ErrorIs(t, repo.Update(context.Background(), a), ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM articles WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "ghost"), ErrNotFound)
}
