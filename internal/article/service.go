// Package article implements the article feature: the store, the HTTP
// handlers, and the service that keeps the article table and the owners'
// owned-article sets consistent. An article row and its membership row
// change together inside one transaction or not at all; a failure between
// the two writes would otherwise leave an orphan article or a dangling
// reference.
package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/quillhub/service-articles-go/internal/article/entity"
	articlerepo "github.com/quillhub/service-articles-go/internal/article/repo"
	userrepo "github.com/quillhub/service-articles-go/internal/user/repo"
	"github.com/quillhub/service-articles-go/pkg/database"
	"github.com/quillhub/service-articles-go/pkg/utilities"
)

var (
	ErrNotFound      = articlerepo.ErrNotFound
	ErrOwnerNotFound = errors.New("creator does not exist")
	ErrNoArticles    = errors.New("no articles for user")
	ErrNotOwner      = errors.New("requester does not own article")
)

// Service coordinates article operations. The repo factories take the handle
// to run against, so the same repositories execute inside a transaction when
// a cross-entity write needs one.
type Service struct {
	db       *sqlx.DB
	articles func(sqlx.ExtContext) articlerepo.Repository
	users    func(sqlx.ExtContext) userrepo.Repository
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:       db,
		articles: func(ext sqlx.ExtContext) articlerepo.Repository { return articlerepo.New(ext) },
		users:    func(ext sqlx.ExtContext) userrepo.Repository { return userrepo.New(ext) },
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	return s.articles(s.db).GetByID(ctx, id)
}

// ListByUser returns the user's articles; an empty result is reported as
// ErrNoArticles because the endpoint treats it as not-found.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*entity.Article, error) {
	articles, err := s.articles(s.db).ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	return articles, nil
}

// Create inserts the article and appends its id to the creator's
// owned-article set in one transaction. On any failure neither write is
// visible.
func (s *Service) Create(ctx context.Context, title, content, creatorID string) (*entity.Article, error) {
	if _, err := s.users(s.db).GetByID(ctx, creatorID); err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("lookup creator: %w", err)
	}

	a := &entity.Article{
		ID:        utilities.NewID(),
		Title:     title,
		Content:   content,
		Creator:   creatorID,
		CreatedAt: time.Now().UTC(),
	}
	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.articles(tx).Create(ctx, a); err != nil {
			return err
		}
		return s.users(tx).AppendArticle(ctx, creatorID, a.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("link article: %w", err)
	}
	return a, nil
}

// Update edits title and content. Only the creator may do this; the check
// happens before any write.
func (s *Service) Update(ctx context.Context, id, requesterID, title, content string) (*entity.Article, error) {
	a, err := s.articles(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Creator != requesterID {
		return nil, ErrNotOwner
	}

	a.Title = title
	a.Content = content
	if err := s.articles(s.db).Update(ctx, a); err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}
	return a, nil
}

// Delete removes the article and its id from the owner's set in one
// transaction, after verifying the requester is the owner.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	a, err := s.articles(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Creator != requesterID {
		return ErrNotOwner
	}

	err = database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.articles(tx).Delete(ctx, a.ID); err != nil {
			return err
		}
		return s.users(tx).RemoveArticle(ctx, a.Creator, a.ID)
	})
	if err != nil {
		return fmt.Errorf("unlink article: %w", err)
	}
	return nil
}
