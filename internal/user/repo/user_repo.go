package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/quillhub/service-articles-go/internal/user/entity"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Repository is the identity store contract. The Append/Remove membership
// operations exist so the article service can run them inside its
// transactions.
type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	ArticleIDs(ctx context.Context, userID string) ([]string, error)
	AppendArticle(ctx context.Context, userID, articleID string) error
	RemoveArticle(ctx context.Context, userID, articleID string) error
}

// UserRepo provides data access for the users and user_articles tables.
// It is constructed over sqlx.ExtContext so the same code runs against the
// pool or against a transaction handle.
type UserRepo struct {
	db sqlx.ExtContext
}

func New(db sqlx.ExtContext) *UserRepo { return &UserRepo{db: db} }

const uniqueViolation = "23505"

// Create inserts a new user row. A duplicate email comes back as
// ErrEmailTaken; everything else is a transport failure.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	q := r.db.Rebind(`INSERT INTO users (id, name, email, password_hash, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Image, u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	q := r.db.Rebind(`SELECT id, name, email, password_hash, image, created_at FROM users WHERE id = ?`)
	u := &entity.User{}
	if err := sqlx.GetContext(ctx, r.db, u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	q := r.db.Rebind(`SELECT id, name, email, password_hash, image, created_at FROM users WHERE email = ?`)
	u := &entity.User{}
	if err := sqlx.GetContext(ctx, r.db, u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List returns all users with their owned-article sets. The credential
// column is deliberately not selected.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	q := `SELECT id, name, email, image, created_at FROM users ORDER BY created_at`
	users := []*entity.User{}
	if err := sqlx.SelectContext(ctx, r.db, &users, q); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		ids, err := r.ArticleIDs(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		u.ArticleIDs = ids
	}
	return users, nil
}

func (r *UserRepo) ArticleIDs(ctx context.Context, userID string) ([]string, error) {
	q := r.db.Rebind(`SELECT article_id FROM user_articles WHERE user_id = ? ORDER BY article_id`)
	ids := []string{}
	if err := sqlx.SelectContext(ctx, r.db, &ids, q, userID); err != nil {
		return nil, fmt.Errorf("list owned articles: %w", err)
	}
	return ids, nil
}

func (r *UserRepo) AppendArticle(ctx context.Context, userID, articleID string) error {
	q := r.db.Rebind(`INSERT INTO user_articles (user_id, article_id) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, q, userID, articleID); err != nil {
		return fmt.Errorf("append owned article: %w", err)
	}
	return nil
}

func (r *UserRepo) RemoveArticle(ctx context.Context, userID, articleID string) error {
	q := r.db.Rebind(`DELETE FROM user_articles WHERE user_id = ? AND article_id = ?`)
	res, err := r.db.ExecContext(ctx, q, userID, articleID)
	if err != nil {
		return fmt.Errorf("remove owned article: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("remove owned article: membership %s/%s not found", userID, articleID)
	}
	return nil
}
