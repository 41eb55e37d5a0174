package posts

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"pet-vet-reviews/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byID      map[string]Post
	conflicts int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Post{}}
}

func (r *testRepo) Create(_ context.Context, p Post) error {
	r.byID[p.ID] = p.Clone()
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p.Clone(), nil
}

func (r *testRepo) Update(_ context.Context, p Post) error {
	if r.conflicts > 0 {
		r.conflicts--
		return ErrVersionConflict
	}
	cur, ok := r.byID[p.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != p.Version {
		return ErrVersionConflict
	}
	p = p.Clone()
	p.Version++
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) List(_ context.Context, f ListFilter) (Page, error) {
	var all []Post
	for _, p := range r.byID {
		if f.UserID == "" || p.UserID == f.UserID {
			all = append(all, p.Clone())
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	out := Page{Count: len(all), Posts: []Post{}}
	if f.Offset < len(all) {
		end := min(f.Offset+f.Limit, len(all))
		out.Posts = all[f.Offset:end]
	}
	return out, nil
}

type fakeUsers map[string]string

func (f fakeUsers) GetByID(_ context.Context, id string) (users.User, error) {
	name, ok := f[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return users.User{ID: id, UserName: name}, nil
}

var baseTime = time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

func newTestService(opts Options) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, fakeUsers{"a": "alice", "b": "bob"}, opts)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return baseTime.Add(time.Duration(tick) * time.Minute)
	}
	return svc, repo
}

func mustCreate(t *testing.T, svc *Service, userID string) Post {
	t.Helper()
	p, err := svc.Create(context.Background(), userID, CreateInput{YelpID: "biz-1", PostTitle: "visit"})
	require.NoError(t, err)
	return p
}

// -------------------------
// Tests
// -------------------------

func TestService_Create(t *testing.T) {
	svc, repo := newTestService(Options{})

	p, err := svc.Create(context.Background(), "a", CreateInput{
		YelpID: "biz-1",
		Flags:  map[ToggleKind]bool{Useful: true, GIStasis: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", p.UserName)
	assert.Equal(t, []string{"a"}, p.Toggles[Useful].Users())
	assert.Equal(t, []string{"a"}, p.Toggles[GIStasis].Users())
	assert.Empty(t, p.Toggles[NailTrim])
	assert.Contains(t, repo.byID, p.ID)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService(Options{})

	_, err := svc.Create(context.Background(), "a", CreateInput{YelpID: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "ghost", CreateInput{YelpID: "biz-1"})
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestService_Create_ClientDate(t *testing.T) {
	svc, _ := newTestService(Options{})
	d := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	p, err := svc.Create(context.Background(), "a", CreateInput{YelpID: "biz-1", Date: &d})
	require.NoError(t, err)
	assert.Equal(t, d, p.CreatedAt)
}

func TestService_Toggle_RoundTripAllKinds(t *testing.T) {
	svc, _ := newTestService(Options{})
	ctx := context.Background()

	for _, k := range Kinds {
		t.Run(k.String(), func(t *testing.T) {
			post := mustCreate(t, svc, "a")
			before := post.Toggles[k]

			set, err := svc.SetToggle(ctx, post.ID, "b", k)
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, set.Toggles[k].Users())

			_, err = svc.SetToggle(ctx, post.ID, "b", k)
			assert.ErrorIs(t, err, ErrConflict)

			cleared, err := svc.ClearToggle(ctx, post.ID, "b", k)
			require.NoError(t, err)
			assert.Equal(t, before, cleared.Toggles[k])

			_, err = svc.ClearToggle(ctx, post.ID, "b", k)
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestService_Toggle_OnlyTouchesOneList(t *testing.T) {
	svc, _ := newTestService(Options{})
	post := mustCreate(t, svc, "a")

	p, err := svc.SetToggle(context.Background(), post.ID, "b", Laboratory)
	require.NoError(t, err)

	for _, k := range Kinds {
		if k == Laboratory {
			continue
		}
		assert.Empty(t, p.Toggles[k], k.String())
	}
}

func TestService_ClearToggle_LegacyCompare(t *testing.T) {
	svc, _ := newTestService(Options{LegacyClearCompare: true})
	ctx := context.Background()
	post := mustCreate(t, svc, "a")

	for _, k := range []ToggleKind{SpayNeutered, GIStasis} {
		_, err := svc.SetToggle(ctx, post.ID, "b", k)
		require.NoError(t, err)

		_, err = svc.ClearToggle(ctx, post.ID, "b", k)
		assert.ErrorIs(t, err, ErrInvalidState, k.String())

		p, err := svc.Get(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, p.Toggles[k].Users(), "el voto sigue presente")
	}

	_, err := svc.SetToggle(ctx, post.ID, "b", Useful)
	require.NoError(t, err)
	_, err = svc.ClearToggle(ctx, post.ID, "b", Useful)
	assert.NoError(t, err)
}

func TestService_ClearToggle_LegacyCompare_MissingPost(t *testing.T) {
	svc, _ := newTestService(Options{LegacyClearCompare: true})

	for _, k := range []ToggleKind{SpayNeutered, GIStasis} {
		_, err := svc.ClearToggle(context.Background(), "missing", "b", k)
		assert.ErrorIs(t, err, ErrNotFound, k.String())
	}
}

func TestService_Toggle_RetriesOnVersionConflict(t *testing.T) {
	svc, repo := newTestService(Options{})
	post := mustCreate(t, svc, "a")

	repo.conflicts = maxAttempts - 1
	p, err := svc.SetToggle(context.Background(), post.ID, "b", Useful)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, p.Toggles[Useful].Users())

	repo.conflicts = maxAttempts
	_, err = svc.SetToggle(context.Background(), post.ID, "a", Useful)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestService_Toggle_MissingPost(t *testing.T) {
	svc, _ := newTestService(Options{})
	_, err := svc.SetToggle(context.Background(), "nope", "b", Useful)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete_NonOwnerForbidden(t *testing.T) {
	svc, repo := newTestService(Options{})
	ctx := context.Background()
	post := mustCreate(t, svc, "a")
	_, err := svc.SetToggle(ctx, post.ID, "b", FleaCheck)
	require.NoError(t, err)
	before := repo.byID[post.ID]

	err = svc.Delete(ctx, post.ID, "b")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, before, repo.byID[post.ID])

	require.NoError(t, svc.Delete(ctx, post.ID, "a"))
	assert.NotContains(t, repo.byID, post.ID)

	assert.ErrorIs(t, svc.Delete(ctx, post.ID, "a"), ErrNotFound)
}

func TestService_List_Pagination(t *testing.T) {
	svc, _ := newTestService(Options{})
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		user := "a"
		if i%3 == 0 {
			user = "b"
		}
		_, err := svc.Create(ctx, user, CreateInput{YelpID: fmt.Sprintf("biz-%d", i)})
		require.NoError(t, err)
	}

	seen := 0
	for page := 1; page <= 4; page++ {
		got, err := svc.List(ctx, page)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got.Posts), AllPageSize)
		assert.Equal(t, 12, got.Count)
		seen += len(got.Posts)
	}
	assert.Equal(t, 12, seen)

	first, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, first.Posts, AllPageSize)
	assert.Equal(t, "biz-11", first.Posts[0].YelpID, "más reciente primero")

	far, err := svc.List(ctx, 1<<62)
	require.NoError(t, err)
	assert.Empty(t, far.Posts)

	byUser, err := svc.ListByUser(ctx, "a", 1)
	require.NoError(t, err)
	assert.Equal(t, 8, byUser.Count)
	assert.Len(t, byUser.Posts, 8)
}

func TestWindow(t *testing.T) {
	assert.Equal(t, ListFilter{Offset: 0, Limit: 5}, window("", 1, 5))
	assert.Equal(t, ListFilter{UserID: "u", Offset: 20, Limit: 10}, window("u", 3, 10))
	assert.Equal(t, ListFilter{Offset: 0, Limit: 5}, window("", -4, 5))
}
