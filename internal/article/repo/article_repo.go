package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/quillhub/service-articles-go/internal/article/entity"
)

var ErrNotFound = errors.New("article not found")

// Repository is the article store contract.
type Repository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*entity.Article, error)
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id string) error
}

// ArticleRepo provides data access for the articles table, constructed over
// sqlx.ExtContext so it composes into transactions.
type ArticleRepo struct {
	db sqlx.ExtContext
}

func New(db sqlx.ExtContext) *ArticleRepo { return &ArticleRepo{db: db} }

func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	q := r.db.Rebind(`INSERT INTO articles (id, title, content, creator, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, q, a.ID, a.Title, a.Content, a.Creator, a.CreatedAt); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	q := r.db.Rebind(`SELECT id, title, content, creator, created_at FROM articles WHERE id = ?`)
	a := &entity.Article{}
	if err := sqlx.GetContext(ctx, r.db, a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get article by id: %w", err)
	}
	return a, nil
}

func (r *ArticleRepo) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Article, error) {
	q := r.db.Rebind(`SELECT id, title, content, creator, created_at FROM articles
		WHERE creator = ? ORDER BY created_at`)
	articles := []*entity.Article{}
	if err := sqlx.SelectContext(ctx, r.db, &articles, q, creatorID); err != nil {
		return nil, fmt.Errorf("list articles by creator: %w", err)
	}
	return articles, nil
}

func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	q := r.db.Rebind(`UPDATE articles SET title = ?, content = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, a.Title, a.Content, a.ID)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ArticleRepo) Delete(ctx context.Context, id string) error {
	q := r.db.Rebind(`DELETE FROM articles WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
