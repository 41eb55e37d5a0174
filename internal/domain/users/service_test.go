package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byID     map[string]User
	createFn func(u User) error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(_ context.Context, u User) error {
	if r.createFn != nil {
		return r.createFn(u)
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(_ context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(h, p string) error {
	if h != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID string) (string, error) { return "token-for-" + userID, nil }

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, plainHasher{}, fakeTokens{})
	svc.now = func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_IssuesTokenForCreatedUser(t *testing.T) {
	svc, repo := newTestService()

	sess, err := svc.Register(context.Background(), RegisterInput{
		Email:    " A@X.com ",
		Password: "secret1",
		UserName: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-"+sess.User.ID, sess.Token)
	assert.Equal(t, "a@x.com", sess.User.Email)
	assert.Equal(t, "hashed:secret1", sess.User.PasswordHash)
	assert.Equal(t, "alice", sess.User.UserName)
	assert.Contains(t, repo.byID, sess.User.ID)
}

func TestService_Register_RejectsDuplicateEmail(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "other1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.byID, 1)
}

func TestService_Register_StoreUniqueViolation(t *testing.T) {
	svc, repo := newTestService()
	repo.createFn = func(User) error { return ErrEmailTaken }

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_RejectsPasswordOverBcryptLimit(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Email: "long@x.com", Password: strings.Repeat("a", MaxPasswordBytes+1)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.byID)

	// 24 runas de 3 bytes = 72 bytes, justo en el límite
	_, err = svc.Register(context.Background(), RegisterInput{Email: "edge@x.com", Password: strings.Repeat("€", 24)})
	assert.NoError(t, err)

	// 25 runas pasan un max por runas pero no caben en bcrypt
	_, err = svc.Register(context.Background(), RegisterInput{Email: "multi@x.com", Password: strings.Repeat("€", 25)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := newTestService()
	reg, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	sess, err := svc.Authenticate(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.User.ID)

	_, err = svc.Authenticate(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_GetByID_EmptyID(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}
