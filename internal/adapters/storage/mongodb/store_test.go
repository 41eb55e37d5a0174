package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
	"pet-vet-reviews/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Estos tests necesitan un replica set real: MONGODB_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0
func newTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, uri)
	require.NoError(t, err)

	dbName := "petvet_test_" + uuid.NewString()[:8]
	s := NewStore(client, dbName)
	require.NoError(t, s.EnsureIndexes(ctx))

	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return s
}

func TestDocuments_PostRoundTrip(t *testing.T) {
	p := posts.Post{
		ID:        "p1",
		UserID:    "u1",
		YelpID:    "biz-1",
		Toggles:   posts.Toggles{}.Clone(),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	p.Toggles[posts.GIStasis] = posts.ToggleList{{ID: "e1", UserID: "u2"}}

	d := toPostDoc(p)
	assert.Len(t, d.Toggles, len(posts.Kinds))
	assert.Equal(t, []toggleDoc{{ID: "e1", User: "u2"}}, d.Toggles["GI_stasis"])
	assert.Equal(t, p, d.toDomain())
}

func TestDocuments_ProfileRoundTrip(t *testing.T) {
	p := profiles.Profile{
		ID:      "p1",
		UserID:  "u1",
		Zipcode: 12345,
		Pets:    []profiles.Pet{{ID: "pet1", Name: "Rex", Breed: "unknown"}},
		History: []profiles.VisitHistory{{ID: "h1", Pet: "Rex", Hospital: "Vet"}},
		Version: 3,
	}
	assert.Equal(t, p, toProfileDoc(p).toDomain())
}

func TestStore_UsersUniqueEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, users.User{ID: "u1", Email: "a@x.com"}))
	err := s.Users().Create(ctx, users.User{ID: "u2", Email: "a@x.com"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestStore_PostToggleCompareAndSwap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	repo := s.Posts()

	require.NoError(t, repo.Create(ctx, posts.Post{ID: "p1", UserID: "u1", YelpID: "biz-1", Toggles: posts.Toggles{}.Clone(), CreatedAt: time.Now().UTC()}))

	a, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	b, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)

	a.Toggles[posts.Useful] = posts.ToggleList{{ID: "e1", UserID: "u2"}}
	require.NoError(t, repo.Update(ctx, a))

	b.Toggles[posts.Useful] = posts.ToggleList{{ID: "e2", UserID: "u3"}}
	assert.ErrorIs(t, repo.Update(ctx, b), posts.ErrVersionConflict)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, got.Toggles[posts.Useful].Users())
}

func TestStore_DeleteAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Users().Create(ctx, users.User{ID: "u1", Email: "a@x.com", CreatedAt: now}))
	require.NoError(t, s.Profiles().Create(ctx, profiles.Profile{ID: "pr1", UserID: "u1", CreatedAt: now}))
	require.NoError(t, s.Posts().Create(ctx, posts.Post{ID: "p1", UserID: "u1", Toggles: posts.Toggles{}.Clone(), CreatedAt: now}))

	require.NoError(t, s.DeleteAccount(ctx, "u1"))

	_, err := s.Users().GetByID(ctx, "u1")
	assert.ErrorIs(t, err, users.ErrNotFound)
	_, err = s.Profiles().GetByUser(ctx, "u1")
	assert.ErrorIs(t, err, profiles.ErrNotFound)
	page, err := s.Posts().List(ctx, posts.ListFilter{UserID: "u1", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, page.Count)
}
