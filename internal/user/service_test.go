package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quillhub/service-articles-go/internal/auth"
	"github.com/quillhub/service-articles-go/internal/user/entity"
	userrepo "github.com/quillhub/service-articles-go/internal/user/repo"
)

// ---- fakes ----

type fakeRepo struct {
	byEmail map[string]*entity.User
	created []*entity.User

	createErr   error
	getEmailErr error
	listResp    []*entity.User
	listErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeRepo) Create(ctx context.Context, u *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.getEmailErr != nil {
		return nil, f.getEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, userrepo.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userrepo.ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context) ([]*entity.User, error) { return f.listResp, f.listErr }
func (f *fakeRepo) ArticleIDs(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}
func (f *fakeRepo) AppendArticle(ctx context.Context, userID, articleID string) error { return nil }
func (f *fakeRepo) RemoveArticle(ctx context.Context, userID, articleID string) error { return nil }

// stubHasher lets tests force primitive failures.
type stubHasher struct {
	hashErr   error
	verifyOK  bool
	verifyErr error
}

func (s stubHasher) Hash(pw string) (string, error) { return "hashed:" + pw, s.hashErr }
func (s stubHasher) Verify(hash, pw string) (bool, error) {
	return s.verifyOK, s.verifyErr
}

var testKey = []byte("test-signing-key")

func newTestService(repo userrepo.Repository, hasher auth.PasswordHasher) *Service {
	if hasher == nil {
		hasher = auth.BcryptHasher{Cost: 4}
	}
	return &Service{repo: repo, hasher: hasher, jwtKey: testKey, tokenTTL: time.Hour}
}

// ---- tests ----

func TestSignup_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	u, token, err := svc.Signup(context.Background(), "Ann", "A@X.com", "secret1", "")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", u.Email, "login handle is normalized")
	require.Equal(t, DefaultImage, u.Image)
	require.NotEqual(t, "secret1", u.PasswordHash)

	// the token asserts the new identity
	userID, err := auth.GetUserIDFromToken(token, testKey)
	require.NoError(t, err)
	require.Equal(t, u.ID, userID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	_, _, err := svc.Signup(context.Background(), "Ann", "a@x.com", "secret1", "")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "Ann2", "a@x.com", "secret2", "")
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Len(t, repo.created, 1)
}

func TestSignup_InsertRace(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = userrepo.ErrEmailTaken
	svc := newTestService(repo, nil)

	// duplicate slipped past the lookup; the unique index reports it
	_, _, err := svc.Signup(context.Background(), "Ann", "a@x.com", "secret1", "")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_HashFailure(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, stubHasher{hashErr: errors.New("primitive down")})

	_, _, err := svc.Signup(context.Background(), "Ann", "a@x.com", "secret1", "")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
	require.Empty(t, repo.created)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	created, _, err := svc.Signup(context.Background(), "Ann", "a@x.com", "secret1", "")
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)

	userID, err := auth.GetUserIDFromToken(token, testKey)
	require.NoError(t, err)
	require.Equal(t, created.ID, userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	_, _, err := svc.Signup(context.Background(), "Ann", "a@x.com", "secret1", "")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	// same error as a wrong password so existence does not leak
	_, _, err := svc.Login(context.Background(), "ghost@x.com", "secret1")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogin_PrimitiveFailureIsNotAMismatch(t *testing.T) {
	repo := newFakeRepo()
	repo.byEmail["a@x.com"] = &entity.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h"}
	svc := newTestService(repo, stubHasher{verifyErr: errors.New("primitive down")})

	_, _, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrBadCredentials)
}
