package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/quillhub/service-articles-go/internal/auth"
	"github.com/quillhub/service-articles-go/internal/user/entity"
	userrepo "github.com/quillhub/service-articles-go/internal/user/repo"
	"github.com/quillhub/service-articles-go/pkg/utilities"
)

var (
	ErrEmailTaken     = userrepo.ErrEmailTaken
	ErrBadCredentials = errors.New("invalid credentials")
)

// DefaultImage is stored when signup provides no avatar, so the image field
// is always set.
const DefaultImage = "/static/default-avatar.png"

// Service handles signup, login and user listing. Tokens are minted here
// because both signup and login return one.
type Service struct {
	repo     userrepo.Repository
	hasher   auth.PasswordHasher
	jwtKey   []byte
	tokenTTL time.Duration
}

// NewService wires the service. The hasher comes from the caller so the
// cost factor has a single home in config.
func NewService(db *sqlx.DB, hasher auth.PasswordHasher, jwtKey []byte, tokenTTL time.Duration) *Service {
	return &Service{repo: userrepo.New(db), hasher: hasher, jwtKey: jwtKey, tokenTTL: tokenTTL}
}

// Signup registers a new account and returns it with a fresh token, the same
// way a login would. A taken email is a client error, not a transport one.
func (s *Service) Signup(ctx context.Context, name, email, password, image string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, userrepo.ErrNotFound) {
		return nil, "", fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	if image == "" {
		image = DefaultImage
	}
	u := &entity.User{
		ID:           utilities.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Image:        image,
		CreatedAt:    time.Now().UTC(),
		ArticleIDs:   []string{},
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// the unique index catches the race the lookup above cannot
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := auth.GenerateToken(u.ID, u.Email, s.jwtKey, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// Login verifies the credential and mints a token. Unknown email and wrong
// password both come back as ErrBadCredentials so existence does not leak;
// a hashing-primitive failure is a server error instead.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", fmt.Errorf("login lookup: %w", err)
	}

	ok, err := s.hasher.Verify(u.PasswordHash, password)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, "", ErrBadCredentials
	}

	token, err := auth.GenerateToken(u.ID, u.Email, s.jwtKey, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// List returns every user without credentials.
func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	return s.repo.List(ctx)
}
